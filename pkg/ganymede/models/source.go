package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

var jsonNull = []byte("null")

// CellSource holds a cell's source value as raw JSON.
// The value is never validated or re-encoded: a string, a list of
// string fragments, or any other JSON value is kept byte-for-byte.
type CellSource struct {
	raw json.RawMessage
}

// NewCellSource wraps raw JSON bytes.
func NewCellSource(raw json.RawMessage) CellSource {
	return CellSource{raw: raw}
}

// Raw returns the source bytes as they appeared in the document.
func (s CellSource) Raw() json.RawMessage {
	if len(s.raw) == 0 {
		return jsonNull
	}
	return s.raw
}

// Value decodes the source. Strings decode to string, fragment lists
// to []interface{}, numbers to json.Number.
func (s CellSource) Value() (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(s.Raw()))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// IsText reports whether the source is a single string.
func (s CellSource) IsText() bool {
	var str string
	return json.Unmarshal(s.Raw(), &str) == nil && firstByte(s.Raw()) == '"'
}

// IsLines reports whether the source is a list of string fragments.
func (s CellSource) IsLines() bool {
	if firstByte(s.Raw()) != '[' {
		return false
	}
	var lines []string
	return json.Unmarshal(s.Raw(), &lines) == nil
}

// Text returns the source as plain text. Fragment lists are joined
// without separators, since nbformat keeps line endings inside each
// fragment. Any other value is returned as its raw JSON.
func (s CellSource) Text() string {
	raw := s.Raw()
	switch firstByte(raw) {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	case '[':
		var lines []string
		if err := json.Unmarshal(raw, &lines); err == nil {
			return strings.Join(lines, "")
		}
	}
	return string(raw)
}

// MarshalJSON returns the raw source bytes.
func (s CellSource) MarshalJSON() ([]byte, error) {
	return s.Raw(), nil
}

// UnmarshalJSON keeps a copy of the raw bytes.
func (s *CellSource) UnmarshalJSON(data []byte) error {
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalYAML returns the decoded value so YAML output shows the
// source in its native shape.
func (s CellSource) MarshalYAML() (interface{}, error) {
	v, err := s.Value()
	if err != nil {
		return nil, err
	}
	return yamlValue(v), nil
}

// yamlValue replaces json.Number, at any depth, with int64 or float64.
// yaml.v3 would otherwise emit numbers as quoted strings.
func yamlValue(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []interface{}:
		for i := range v {
			v[i] = yamlValue(v[i])
		}
		return v
	case map[string]interface{}:
		for k := range v {
			v[k] = yamlValue(v[k])
		}
		return v
	}
	return v
}

func firstByte(b []byte) byte {
	b = bytes.TrimLeft(b, " \t\r\n")
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
