// Package render presents a notation.Value for people: as a table, CSV, TSV,
// Markdown, HTML, raw lines, ENV pairs, or a Go template.
//
// The central entry points are [Write] and [Marshal], which take a [Style]:
//
//	render.Write(os.Stdout, render.Table, v)
//	render.Write(os.Stdout, render.GoTemplate("{{.name}}"), v)
//
// # Shapes
//
// The tabular styles lay the value out as rows and columns:
//
//   - an Array of Objects gets one column per member key, in first-seen
//     order, and one row per element; missing members are empty cells
//   - any other Array is a single "value" column
//   - an Object is a two-column key/value listing
//   - a scalar is a single cell
//
// Nested containers become compact JSON in their cell, Null becomes an
// empty cell, and columns holding only numbers are right aligned.
//
// Raw writes each element of an Array on its own line using the display
// form, so strings come out unquoted. ENV requires an Object, or an Array
// of Objects written as blocks. GoTemplate executes once per element
// against plain Go values (see notation.Value.Interface).
//
// # Options
//
// Tables default to [BorderRounded]; see [WithBorder], [WithTitle],
// [WithMaxWidth], [WithoutHeader], [WithNumbered], and [WithCaption].
// [WithDelimiter] changes the CSV separator, and [WithExport] and
// [WithQuote] shape ENV lines.
//
// # Errors
//
//   - [ErrUnsupportedStyle]: unknown style name or border
//   - [ErrUnsupportedShape]: the value cannot be shown in the style
//   - [ErrInvalidTemplate]: invalid go-template syntax
package render
