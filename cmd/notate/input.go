package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/bjaus/notation"
)

// openInput returns a reader over the file at path, or stdin when path is
// empty. In hex mode the input is decoded from hex text, skipping
// whitespace, and maxSize bounds the decoded bytes.
func openInput(path string, stdin io.Reader, hexMode bool, maxSize int64) (io.Reader, func(), error) {
	r := stdin
	closeFn := func() {}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		r = f
		closeFn = func() { _ = f.Close() }
	}
	if !hexMode {
		return r, closeFn, nil
	}
	defer closeFn()
	data, err := readHex(r, maxSize)
	if err != nil {
		return nil, nil, err
	}
	return bytes.NewReader(data), func() {}, nil
}

// readHex decodes hex text such as "a1 63 6b 65 79" or "a1636b6579".
// More than maxSize decoded bytes is an error; maxSize <= 0 means no limit.
func readHex(r io.Reader, maxSize int64) ([]byte, error) {
	dec := hex.NewDecoder(hexText{r})
	if maxSize > 0 && maxSize < math.MaxInt64 {
		dec = io.LimitReader(dec, maxSize+1)
	}
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: hex input exceeds %d bytes", notation.ErrDecode, maxSize)
	}
	if len(data) == 0 {
		return nil, errors.New("hex input is empty")
	}
	return data, nil
}

// hexText drops ASCII whitespace from the text it reads.
type hexText struct {
	r io.Reader
}

func (h hexText) Read(p []byte) (int, error) {
	for {
		n, err := h.r.Read(p)
		k := 0
		for _, c := range p[:n] {
			switch c {
			case ' ', '\t', '\n', '\r', '\v', '\f':
				continue
			}
			p[k] = c
			k++
		}
		if k > 0 || err != nil || n == 0 {
			return k, err
		}
	}
}
