package papertrade

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// objectWriter builds a JSON object whose fields keep the order they are written in.
// Its zero value is ready to use. The first error sticks and is returned by MarshalJSON.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

// Field appends 'key' with 'value' marshaled by encoding/json.
func (w *objectWriter) Field(key string, value any) *objectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	return w.Raw(key, raw)
}

// Raw appends 'key' with an already encoded value.
func (w *objectWriter) Raw(key string, raw []byte) *objectWriter {
	if w.err != nil {
		return w
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
	return w
}

// MarshalJSON returns the object built so far.
func (w *objectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}

// Indent returns the object pretty printed with two spaces and a trailing newline.
func (w *objectWriter) Indent() ([]byte, error) {
	compact, err := w.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
