package resolver

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ai-picks-site/internal/imgix"
	"github.com/ai-picks-site/internal/models"
)

// CharsPerMinute is the reading-time divisor
const CharsPerMinute = 1000

// untitled is shown only for records without a title or slug
const untitled = "Untitled"

// title returns the first non-blank headline field, falling back to the
// record's own title.
func title(obj *models.Object, keys ...string) string {
	if text, _ := firstText(obj.Metadata, keys...); text.Present() {
		return text.String()
	}
	if t := strings.TrimSpace(obj.Title); t != "" {
		return t
	}
	if s := strings.TrimSpace(obj.Slug); s != "" {
		return s
	}
	return untitled
}

// firstText returns the first candidate holding non-blank text, along with
// the key it came from.
func firstText(meta models.Metadata, keys ...string) (Text, string) {
	for _, key := range keys {
		if s, ok := meta.Text(key); ok {
			return NewText(s), key
		}
	}
	return NoText, ""
}

// firstImage returns the rendition of the first candidate with a processable
// URL.
func firstImage(meta models.Metadata, size imgix.Size, keys ...string) Image {
	for _, key := range keys {
		ref, ok := meta.Image(key)
		if !ok {
			continue
		}
		if u := imgix.Transform(ref.ImgixURL, size); u != "" {
			return Image{url: u}
		}
	}
	return NoImage
}

// label resolves a string-or-choice field to its display label
func label(meta models.Metadata, key string) string {
	choice, ok := meta.Choice(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(choice.Label())
}

// tags returns the tag list, never nil
func tags(meta models.Metadata, key string) []string {
	return meta.Strings(key)
}

// readingTime estimates whole minutes from the combined length of texts,
// rounding up, with a floor of one minute.
func readingTime(texts ...string) int {
	chars := 0
	for _, t := range texts {
		chars += utf8.RuneCountInString(t)
	}
	minutes := (chars + CharsPerMinute - 1) / CharsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// tone maps a choice onto a style using the given lookup, trying the label
// first and the key second.
func tone(choice models.Choice, lookup map[string]Tone, fallback Tone) Tone {
	for _, candidate := range []string{choice.Label(), choice.Key} {
		if t, ok := lookup[strings.ToLower(strings.TrimSpace(candidate))]; ok {
			return t
		}
	}
	return fallback
}

// formatDate renders t with layout, or fallback for the zero time
func formatDate(t time.Time, layout, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format(layout)
}
