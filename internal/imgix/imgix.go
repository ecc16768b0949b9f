// Package imgix builds rendition URLs for images served by the bucket's
// processable media host.
package imgix

import (
	"net/url"
	"strconv"
	"strings"
)

// Fixed directives applied to every rendition
const (
	Fit  = "crop"
	Auto = "format,compress"
)

// Size is the box an image is rendered into
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Placement presets
var (
	Card         = Size{Width: 800, Height: 400}
	FeaturedCard = Size{Width: 1200, Height: 600}
	Hero         = Size{Width: 1200, Height: 600}
	Social       = Size{Width: 1200, Height: 630}
	Avatar       = Size{Width: 80, Height: 80}
)

// reserved are the parameters Transform owns; stale values on the base URL
// are dropped so the rendition matches the requested placement.
var reserved = []string{"w", "h", "fit", "auto"}

// Transform returns base with the rendition parameters for size appended.
// It returns "" when base is blank or not a valid absolute URL.
func Transform(base string, size Size) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}

	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return ""
	}

	params := make([]string, 0, 4)
	if size.Width > 0 {
		params = append(params, "w="+strconv.Itoa(size.Width))
	}
	if size.Height > 0 {
		params = append(params, "h="+strconv.Itoa(size.Height))
	}
	params = append(params, "fit="+Fit, "auto="+Auto)

	existing := u.Query()
	for _, key := range reserved {
		existing.Del(key)
	}

	query := strings.Join(params, "&")
	if len(existing) > 0 {
		query = existing.Encode() + "&" + query
	}
	u.RawQuery = query

	return u.String()
}
