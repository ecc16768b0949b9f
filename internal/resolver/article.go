package resolver

import (
	"strings"
	"time"

	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/richtext"
)

// ExcerptLength caps excerpts derived from an article body
const ExcerptLength = 240

// DefaultCTA is the subscription prompt when neither the article nor the
// site settings provide one
const DefaultCTA = "Subscribe to Read More"

// Article field priority orders
var (
	articleHeadline  = []string{"headline"}
	articleShortForm = []string{"intro_preview", "excerpt"}
	articleBody      = []string{"full_content", "content", "body"}
	articleImage     = []string{"cover_image", "featured_image"}
)

// Article is a display-ready blog post
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Excerpt     Text      `json:"excerpt"`
	Body        Text      `json:"body"`
	Image       Image     `json:"image"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ReadingTime int       `json:"reading_time_minutes"`
	Featured    bool      `json:"featured"`
	CTAText     Text      `json:"cta_text"`
	Author      Author    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	PublishedOn string    `json:"published_on"`
}

// Author is a display-ready article author
type Author struct {
	Name   Text  `json:"name"`
	Avatar Image `json:"avatar"`
	Bio    Text  `json:"bio"`
}

// Present reports whether the article names an author
func (a Author) Present() bool { return a.Name.Present() }

// ResolveArticle resolves a blog post record for the given placement
func ResolveArticle(obj *models.Object, ctx RenderContext) Article {
	meta := obj.Metadata

	shortForm, _ := firstText(meta, articleShortForm...)
	body := articleBodyText(obj)

	excerpt := shortForm
	if !excerpt.Present() && body.Present() {
		excerpt = NewText(richtext.Truncate(richtext.PlainText(body.String()), ExcerptLength))
	}

	cta, _ := firstText(meta, "cta_text")

	var author Author
	if nested, ok := meta.Object("author"); ok {
		author = ResolveAuthor(nested, ctx)
	}

	return Article{
		ID:          obj.ID,
		Slug:        obj.Slug,
		Path:        ArticlePath(obj.Slug),
		Title:       title(obj, articleHeadline...),
		Excerpt:     excerpt,
		Body:        body,
		Image:       firstImage(meta, ctx.Image, articleImage...),
		Category:    label(meta, "category"),
		Tags:        tags(meta, "tags"),
		ReadingTime: readingTime(shortForm.String(), body.String()),
		Featured:    meta.Bool("featured"),
		CTAText:     cta,
		Author:      author,
		PublishedAt: obj.CreatedAt,
		PublishedOn: formatDate(obj.CreatedAt, "January 2, 2006", "Recent"),
	}
}

// ResolveAuthor resolves an author record
func ResolveAuthor(obj *models.Object, ctx RenderContext) Author {
	bio, _ := firstText(obj.Metadata, "bio")
	return Author{
		Name:   NewText(obj.Title),
		Avatar: firstImage(obj.Metadata, ctx.Avatar, "avatar"),
		Bio:    bio,
	}
}

// ArticlePath returns the site path of an article
func ArticlePath(slug string) string {
	return "/blog/" + strings.TrimSpace(slug)
}

// CallToAction picks the subscription prompt for an article page
func CallToAction(article Article, settings Settings) string {
	if article.CTAText.Present() {
		return article.CTAText.String()
	}
	if s := strings.TrimSpace(settings.BlogCTA); s != "" {
		return s
	}
	return DefaultCTA
}

func articleBodyText(obj *models.Object) Text {
	if text, _ := firstText(obj.Metadata, articleBody...); text.Present() {
		return text
	}
	return NewText(obj.Content)
}
