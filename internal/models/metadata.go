package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the loosely typed field bag of an Object. Bucket schemas are
// enforced informally, so every accessor tolerates absent keys and values of
// the wrong shape and reports them as missing instead of failing.
type Metadata map[string]any

// Get returns the raw value stored under key
func (m Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the value under key when it holds a string. Other shapes,
// numbers included, are reported as missing.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Text returns the trimmed string under key, reporting false when the result
// would be empty.
func (m Metadata) Text(key string) (string, bool) {
	s, ok := m.String(key)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Scalar is like Text but also accepts numbers, for configuration fields
// that editors fill in as plain figures.
func (m Metadata) Scalar(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	var s string
	switch n := v.(type) {
	case string:
		s = n
	case json.Number:
		s = n.String()
	case float64:
		s = strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		s = strconv.Itoa(n)
	case int64:
		s = strconv.FormatInt(n, 10)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Bool reports whether key holds true. Switch fields exported as strings are
// accepted as well.
func (m Metadata) Bool(key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

// Image returns the media reference under key. The bool is false when the
// key is missing or does not hold an object.
func (m Metadata) Image(key string) (ImageRef, bool) {
	v, ok := m.Get(key)
	if !ok {
		return ImageRef{}, false
	}
	switch img := v.(type) {
	case ImageRef:
		return img, true
	case *ImageRef:
		if img == nil {
			return ImageRef{}, false
		}
		return *img, true
	case map[string]any:
		ref := ImageRef{}
		ref.URL, _ = img["url"].(string)
		ref.ImgixURL, _ = img["imgix_url"].(string)
		return ref, true
	}
	return ImageRef{}, false
}

// Choice returns the select-style value under key. A bare string is treated
// as a choice whose label is the string itself.
func (m Metadata) Choice(key string) (Choice, bool) {
	v, ok := m.Get(key)
	if !ok {
		return Choice{}, false
	}
	switch c := v.(type) {
	case Choice:
		return c, true
	case *Choice:
		if c == nil {
			return Choice{}, false
		}
		return *c, true
	case string:
		return Choice{Key: c, Value: c}, true
	case map[string]any:
		choice := Choice{}
		choice.Key, _ = c["key"].(string)
		choice.Value, _ = c["value"].(string)
		choice.Title, _ = c["title"].(string)
		return choice, true
	}
	return Choice{}, false
}

// Strings returns the string list under key in its stored order. Anything
// that is not a sequence yields an empty, non-nil slice; non-string elements
// are skipped.
func (m Metadata) Strings(key string) []string {
	out := []string{}
	v, ok := m.Get(key)
	if !ok {
		return out
	}
	switch list := v.(type) {
	case []string:
		return append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// Object returns the nested object under key. Buckets expand references into
// full objects when queried with depth 1; an unexpanded reference (a bare id)
// reports false.
func (m Metadata) Object(key string) (*Object, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	switch obj := v.(type) {
	case Object:
		return &obj, true
	case *Object:
		return obj, obj != nil
	case map[string]any:
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, false
		}
		var nested Object
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, false
		}
		return &nested, true
	}
	return nil, false
}

// Value implements driver.Valuer for JSONB columns
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB columns
func (m *Metadata) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("metadata: unsupported scan type %T", src)
	}

	out := Metadata{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	*m = out
	return nil
}
