package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

func writeCSV(w io.Writer, g grid, o options) error {
	if len(g.rows) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if o.delimiter != 0 {
		cw.Comma = o.delimiter
	}
	if !o.noHeader {
		if err := cw.Write(g.header); err != nil {
			return err
		}
	}
	for _, row := range g.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTSV writes tab separated rows. Tabs and newlines inside cells are
// replaced by spaces so each row stays on one line.
func writeTSV(w io.Writer, g grid, o options) error {
	if len(g.rows) == 0 {
		return nil
	}
	if !o.noHeader {
		if _, err := fmt.Fprintln(w, tsvLine(g.header)); err != nil {
			return err
		}
	}
	for _, row := range g.rows {
		if _, err := fmt.Fprintln(w, tsvLine(row)); err != nil {
			return err
		}
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func tsvLine(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = tsvEscaper.Replace(c)
	}
	return strings.Join(out, "\t")
}
