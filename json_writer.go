package tradesim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep their insertion
// order. The first error stops the construction and is returned by
// MarshalJSON. The zero value is an empty object.
type jsonObjectWriter struct {
	fields bytes.Buffer // comma separated "key":value pairs
	err    error
}

// field writes a raw, already encoded, list of fields.
func (w *jsonObjectWriter) field(raw []byte) {
	if len(raw) == 0 {
		return
	}
	if w.fields.Len() > 0 {
		w.fields.WriteByte(',')
	}
	w.fields.Write(raw)
}

// Embed merges the fields of the JSON object rawJSON.
func (w *jsonObjectWriter) Embed(rawJSON []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	inner := bytes.TrimSpace(rawJSON)
	if len(inner) < 2 || inner[0] != '{' || inner[len(inner)-1] != '}' {
		w.err = fmt.Errorf("cannot embed %q: not a JSON object", rawJSON)
		return w
	}
	w.field(bytes.TrimSpace(inner[1 : len(inner)-1]))
	return w
}

// EmbedFrom merges the fields of v, which must marshal to a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	rawJSON, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal for embedding: %w", err)
		return w
	}
	return w.Embed(rawJSON)
}

// Append adds the key, and value as marshaled by json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, _ := json.Marshal(key) // a string always marshals
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	w.field(append(append(k, ':'), v...))
	return w
}

// Optional is Append, unless value is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	obj := make([]byte, 0, w.fields.Len()+2)
	obj = append(obj, '{')
	obj = append(obj, w.fields.Bytes()...)
	return append(obj, '}'), nil
}
