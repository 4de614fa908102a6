package notation

import (
	"io"
	"iter"
)

// WriteIter encodes values from seq and writes them to w as they arrive.
// JSON-Lines and CBOR sequences write one record per value. JSON is
// streamed as the elements of an array. Other formats need the whole
// document, so the values are collected and written with the codec's
// EncodeAll.
func WriteIter(w io.Writer, f Format, seq iter.Seq[Value], opts ...Option) error {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return err
	}
	switch f {
	case JSONL, CBORSeq:
		return streamRecords(w, c, seq)
	case JSON:
		return streamJSON(w, c, seq)
	default:
		var items []Value
		for v := range seq {
			items = append(items, v)
		}
		data, err := c.EncodeAll(items)
		if err != nil {
			return err
		}
		return writeRecord(w, f, data)
	}
}

// streamRecords writes one record per value. EncodeAll is used so an Array
// stays one CBOR item instead of being split into a sequence.
func streamRecords(w io.Writer, c Codec, seq iter.Seq[Value]) error {
	for v := range seq {
		data, err := c.EncodeAll([]Value{v})
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func streamJSON(w io.Writer, c Codec, seq iter.Seq[Value]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	for v := range seq {
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		data, err := c.Encode(v)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
