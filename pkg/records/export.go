package records

import (
	"bytes"
	"encoding/json"
)

// Export is an insertion-ordered mapping from field name to decoded
// value. Calendar-time fields are rendered as ISO-8601 strings and byte
// string fields as hex before they are added, so an Export holds only
// values with an obvious textual form.
type Export struct {
	keys   []string
	values map[string]any
}

// NewExport returns an empty export mapping.
func NewExport() *Export {
	return &Export{values: make(map[string]any)}
}

// Set adds a field, keeping insertion order. Setting an existing key
// overwrites the value without changing its position.
func (e *Export) Set(key string, value any) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value for key and whether it is present.
func (e *Export) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (e *Export) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len returns the number of fields.
func (e *Export) Len() int {
	return len(e.keys)
}

// byteStringText renders a fixed-width byte string field whose content
// is NUL-padded text.
func byteStringText(b []byte) string {
	return string(bytes.ReplaceAll(b, []byte{0}, nil))
}

// MarshalJSON renders the export as a JSON object with fields in
// insertion order.
func (e *Export) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
