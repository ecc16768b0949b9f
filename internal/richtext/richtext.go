// Package richtext converts article bodies between the forms the site needs:
// HTML for the article page and plain text for excerpts.
package richtext

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Ellipsis is appended to truncated text
const Ellipsis = "…"

// Editors paste HTML from the rich text field and Markdown from the markdown
// field; both are trusted bucket content.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// IsHTML reports whether src is already markup rather than Markdown
func IsHTML(src string) bool {
	return strings.HasPrefix(strings.TrimSpace(src), "<")
}

// ToHTML renders src as HTML. Markup passes through untouched; anything else
// is treated as Markdown.
func ToHTML(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	if IsHTML(src) {
		return template.HTML(src), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PlainText strips markup from src and collapses whitespace
func PlainText(src string) string {
	rendered, err := ToHTML(src)
	if err != nil {
		return collapse(src)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rendered)))
	if err != nil {
		return collapse(src)
	}
	doc.Find("script, style").Remove()

	return collapse(doc.Text())
}

// FirstParagraph returns the outer HTML of the first non-empty <p> in src,
// or "" when there is none.
func FirstParagraph(src template.HTML) template.HTML {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(src)))
	if err != nil {
		return ""
	}

	var first template.HTML
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if strings.TrimSpace(p.Text()) == "" {
			return true
		}
		if html, err := goquery.OuterHtml(p); err == nil {
			first = template.HTML(html)
		}
		return false
	})
	return first
}

// Truncate shortens s to at most max characters plus Ellipsis, cutting at
// the last word boundary. Strings within the limit are returned
// unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:.-") + Ellipsis
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
