package resolver

import (
	"encoding/json"
	"strings"
)

// Text is a resolved block of copy. The zero value is NoText, which callers
// use to skip the block entirely rather than render it empty.
type Text struct {
	value string
	ok    bool
}

// NoText marks copy that is absent
var NoText = Text{}

// NewText trims s and returns NoText when nothing is left
func NewText(s string) Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoText
	}
	return Text{value: s, ok: true}
}

// Present reports whether there is copy to show
func (t Text) Present() bool { return t.ok }

// String returns the copy, or "" when absent
func (t Text) String() string { return t.value }

// Or returns the copy, or fallback when absent
func (t Text) Or(fallback string) string {
	if t.ok {
		return t.value
	}
	return fallback
}

// MarshalJSON encodes absent copy as null
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.ok {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// Image is a resolved rendition URL. The zero value is NoImage.
type Image struct {
	url string
}

// NoImage marks an image slot with nothing to show
var NoImage = Image{}

// Present reports whether there is an image to show
func (i Image) Present() bool { return i.url != "" }

// URL returns the rendition URL, or "" when absent
func (i Image) URL() string { return i.url }

// String implements fmt.Stringer for templates
func (i Image) String() string { return i.url }

// MarshalJSON encodes an absent image as null
func (i Image) MarshalJSON() ([]byte, error) {
	if i.url == "" {
		return []byte("null"), nil
	}
	return json.Marshal(i.url)
}

// Tone classifies a label for styling
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneNeutral Tone = "neutral"
)

// Label is a resolved select-style value
type Label struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Present reports whether the label has anything to show
func (l Label) Present() bool { return l.Text != "" }
