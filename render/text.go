package render

import (
	"fmt"
	"io"
	"text/template"

	"github.com/bjaus/notation"
)

// writeRaw writes the display form of v, one line per element when v is an
// Array.
func writeRaw(w io.Writer, v notation.Value) error {
	for _, item := range elements(v) {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	return nil
}

// writeENV writes KEY=value lines for an Object. An Array of Objects is
// written as blocks separated by blank lines.
func writeENV(w io.Writer, v notation.Value, o options) error {
	items := elements(v)
	for _, item := range items {
		if item.Kind() != notation.ObjectKind {
			return fmt.Errorf("%w: style %q requires objects, got %s", ErrUnsupportedShape, ENV, item.Kind())
		}
	}
	prefix := ""
	if o.export {
		prefix = "export "
	}
	for i, item := range items {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for k, m := range item.All() {
			var err error
			if o.quote {
				_, err = fmt.Fprintf(w, "%s%s=%q\n", prefix, k, cell(m))
			} else {
				_, err = fmt.Fprintf(w, "%s%s=%s\n", prefix, k, cell(m))
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// writeGoTemplate executes tmplStr against the plain Go form of each
// element (see notation.Value.Interface), one line per element.
func writeGoTemplate(w io.Writer, tmplStr string, v notation.Value) error {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	for _, item := range elements(v) {
		if err := tmpl.Execute(w, item.Interface()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func elements(v notation.Value) []notation.Value {
	if items, ok := v.Items(); ok {
		return items
	}
	return []notation.Value{v}
}
