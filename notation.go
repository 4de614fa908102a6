package notation

import (
	"fmt"
	"io"
)

// Decode parses data in format f.
func Decode(data []byte, f Format, opts ...Option) (Value, error) {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return Value{}, err
	}
	return c.Decode(data)
}

// Encode serializes v in format f.
func Encode(v Value, f Format, opts ...Option) ([]byte, error) {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return nil, err
	}
	return c.Encode(v)
}

// EncodeAll serializes a collection of values in format f. See
// Codec.EncodeAll.
func EncodeAll(vs []Value, f Format, opts ...Option) ([]byte, error) {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return nil, err
	}
	return c.EncodeAll(vs)
}

// EncodeToString serializes v in format f as text. Binary formats are hex
// encoded.
func EncodeToString(v Value, f Format, opts ...Option) (string, error) {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return "", err
	}
	return c.EncodeToString(v)
}

// Read consumes r and decodes it in format f. Use WithMaxInputSize to bound
// the bytes read; the whole input is held in memory.
func Read(r io.Reader, f Format, opts ...Option) (Value, error) {
	c, err := NewCodec(f, opts...)
	if err != nil {
		return Value{}, err
	}
	limit := buildOptions(opts).maxInputSize
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, decodeError(f, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return Value{}, fmt.Errorf("%w: %s: input exceeds %d bytes", ErrDecode, f, limit)
	}
	return c.Decode(data)
}

// Write encodes v in format f and writes it to w. Text output always ends
// with a newline.
func Write(w io.Writer, f Format, v Value, opts ...Option) error {
	data, err := Encode(v, f, opts...)
	if err != nil {
		return err
	}
	return writeRecord(w, f, data)
}

func writeRecord(w io.Writer, f Format, data []byte) error {
	if !f.Binary() && (len(data) == 0 || data[len(data)-1] != '\n') {
		data = append(data, '\n')
	}
	_, err := w.Write(data)
	return err
}

// Marshal converts x with FromAny and encodes it in format f.
func Marshal(x any, f Format, opts ...Option) ([]byte, error) {
	v, err := FromAny(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return Encode(v, f, opts...)
}

// Unmarshal decodes data in format f and stores the result in the value
// pointed to by target, following encoding/json field rules.
func Unmarshal(data []byte, f Format, target any, opts ...Option) error {
	v, err := Decode(data, f, opts...)
	if err != nil {
		return err
	}
	if err := v.Decode(target); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}
	return nil
}
