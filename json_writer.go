package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
//
// Values are encoded without HTML escaping so that links and notes are
// persisted as typed by the user.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// marshal encodes v like json.Marshal, but without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Append adds a new key-value pair to the JSON object.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	return w.AppendRaw(key, valBytes)
}

// AppendRaw adds a key with an already encoded JSON value, compacted.
func (w *jsonObjectWriter) AppendRaw(key string, raw json.RawMessage) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	var value bytes.Buffer
	if err := json.Compact(&value, raw); err != nil {
		w.err = fmt.Errorf("invalid raw JSON for key %q: %w", key, err)
		return w
	}
	keyBytes, _ := marshal(key)
	w.Write(keyBytes)
	w.WriteString(":")
	w.Write(value.Bytes())
	w.WriteString(",")
	return w
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')

	return final, nil
}
