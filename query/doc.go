// Package query extracts parts of a notation.Value with path expressions.
//
// A path starts with "." and continues with field names and brackets:
//
//	.items[].name    every element's name member
//	.matrix[0][1]    one element of a nested array
//	.env[*]          every member value of an Object
//
// Field names use letters, digits, and underscores. A bracket holds an
// index, "*", or nothing; "[]" and "[*]" select every element of an Array
// or every member value of an Object. "." alone selects the input itself.
//
// Execution never fails on shape: a step that does not apply to a value,
// such as a field on an Array or an index out of range, drops that value.
// [Query.ExecuteToSingle] is the only call that reports an empty result, as
// [ErrExecution].
package query
