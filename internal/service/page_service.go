package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/repository"
	"github.com/ai-picks-site/internal/resolver"
	"github.com/ai-picks-site/internal/richtext"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrPostNotFound is returned when no article has the requested slug
var ErrPostNotFound = errors.New("blog post not found")

// Site-wide copy used in page metadata
const (
	SiteName           = "AI Sports Betting"
	DefaultDescription = "Read our latest insights on AI sports betting."
	HomeDescription    = "AI-powered sports betting picks with a transparent, winning track record."
	SignupDescription  = "Get access to our AI-powered sports betting picks and start winning today."
	BlogDescription    = "Expert insights, strategies, and analysis to improve your betting game"
)

// PreviewSize is the number of posts shown in the home page blog preview
const PreviewSize = 3

// PageMeta describes a page for the document head and social cards
type PageMeta struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url,omitempty"`
	Type        string         `json:"type"`
	Image       resolver.Image `json:"image"`
}

// HomePage is the landing page
type HomePage struct {
	Meta         PageMeta               `json:"meta"`
	Settings     resolver.Settings      `json:"settings"`
	Picks        []resolver.Pick        `json:"picks"`
	Posts        []resolver.Article     `json:"posts"`
	Testimonials []resolver.Testimonial `json:"testimonials"`
}

// BlogIndexPage lists recent articles
type BlogIndexPage struct {
	Meta  PageMeta           `json:"meta"`
	Posts []resolver.Article `json:"posts"`
}

// BlogPostPage is a single article behind the subscription gate
type BlogPostPage struct {
	Meta     PageMeta          `json:"meta"`
	Article  resolver.Article  `json:"article"`
	Settings resolver.Settings `json:"settings"`
	// Preview is the first paragraph of the body, shown above the gate
	Preview  template.HTML `json:"preview_html"`
	BodyHTML template.HTML `json:"body_html"`
	CTA      string        `json:"cta_text"`
}

// SignupPage is the checkout form with member reviews alongside it
type SignupPage struct {
	Meta         PageMeta               `json:"meta"`
	Settings     resolver.Settings      `json:"settings"`
	Testimonials []resolver.Testimonial `json:"testimonials"`
}

// EmptyHomePage is the landing page rendered when the bucket is unreachable
func EmptyHomePage() *HomePage {
	return &HomePage{
		Meta:         PageMeta{Title: SiteName, Description: HomeDescription, Type: "website"},
		Settings:     resolver.DefaultSettings(),
		Picks:        []resolver.Pick{},
		Posts:        []resolver.Article{},
		Testimonials: []resolver.Testimonial{},
	}
}

// EmptyBlogIndexPage is the blog index rendered when no posts can be shown
func EmptyBlogIndexPage() *BlogIndexPage {
	return &BlogIndexPage{
		Meta:  PageMeta{Title: pageTitle("Blog"), Description: BlogDescription, Type: "website"},
		Posts: []resolver.Article{},
	}
}

// pageService is the concrete implementation of PageService
type pageService struct {
	content repository.ContentRepository
	limits  config.PagesConfig
	siteURL string
	log     zerolog.Logger
}

func newPageService(content repository.ContentRepository, limits config.PagesConfig, siteURL string, log zerolog.Logger) *pageService {
	return &pageService{
		content: content,
		limits:  limits,
		siteURL: strings.TrimRight(siteURL, "/"),
		log:     log.With().Str("service", "pages").Logger(),
	}
}

// Home fetches settings, posts, picks and featured testimonials concurrently
func (s *pageService) Home(ctx context.Context) (*HomePage, error) {
	start := time.Now()

	var (
		settingsObj  *models.Object
		posts        []models.Object
		picks        []models.Object
		testimonials []models.Object
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settingsObj, err = s.content.GetSiteSettings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.content.GetBlogPosts(gctx, s.limits.HomePosts)
		return err
	})
	g.Go(func() error {
		var err error
		picks, err = s.content.GetBettingPicks(gctx, s.limits.HomePicks)
		return err
	})
	g.Go(func() error {
		var err error
		testimonials, err = s.content.GetFeaturedTestimonials(gctx, s.limits.HomeTestimonials)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load home page: %w", err)
	}

	page := &HomePage{
		Meta:         s.meta(SiteName, HomeDescription, "/", "website", resolver.NoImage),
		Settings:     resolver.ResolveSettings(settingsObj),
		Picks:        make([]resolver.Pick, 0, len(picks)),
		Posts:        previewPosts(resolveArticles(posts, resolver.CardContext)),
		Testimonials: make([]resolver.Testimonial, 0, len(testimonials)),
	}
	for i := range picks {
		page.Picks = append(page.Picks, resolver.ResolvePick(&picks[i], resolver.CardContext))
	}
	for i := range testimonials {
		page.Testimonials = append(page.Testimonials, resolver.ResolveTestimonial(&testimonials[i], resolver.CardContext))
	}

	s.log.Debug().
		Int("posts", len(page.Posts)).
		Int("picks", len(page.Picks)).
		Int("testimonials", len(page.Testimonials)).
		Dur("duration", time.Since(start)).
		Msg("Home page composed")

	return page, nil
}

// BlogIndex lists the newest articles
func (s *pageService) BlogIndex(ctx context.Context) (*BlogIndexPage, error) {
	posts, err := s.content.GetBlogPosts(ctx, s.limits.BlogPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog index: %w", err)
	}

	return &BlogIndexPage{
		Meta:  s.meta(pageTitle("Blog"), BlogDescription, "/blog", "website", resolver.NoImage),
		Posts: resolveArticles(posts, resolver.CardContext),
	}, nil
}

// BlogPost fetches an article and the settings that supply its default CTA
func (s *pageService) BlogPost(ctx context.Context, slug string) (*BlogPostPage, error) {
	var (
		post        *models.Object
		settingsObj *models.Object
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = s.content.GetBlogPost(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		settingsObj, err = s.content.GetSiteSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load blog post %q: %w", slug, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	article := resolver.ResolveArticle(post, resolver.ArticleContext)
	settings := resolver.ResolveSettings(settingsObj)

	body, err := richtext.ToHTML(article.Body.String())
	if err != nil {
		// Rendering failures fall back to escaped text rather than an error page
		s.log.Warn().Err(err).Str("slug", slug).Msg("Failed to render article body")
		body = template.HTML(template.HTMLEscapeString(article.Body.String()))
	}

	social := resolver.ResolveArticle(post, resolver.SocialContext).Image

	return &BlogPostPage{
		Meta:     s.meta(pageTitle(article.Title), article.Excerpt.Or(DefaultDescription), article.Path, "article", social),
		Article:  article,
		Settings: settings,
		Preview:  richtext.FirstParagraph(body),
		BodyHTML: body,
		CTA:      resolver.CallToAction(article, settings),
	}, nil
}

// Signup resolves the pricing and member reviews shown on the checkout form.
// Fetch failures fall back to the default settings and no reviews so the
// form is always available.
func (s *pageService) Signup(ctx context.Context) *SignupPage {
	page := &SignupPage{
		Meta:         s.meta(pageTitle("Sign Up"), SignupDescription, "/signup", "website", resolver.NoImage),
		Settings:     resolver.DefaultSettings(),
		Testimonials: []resolver.Testimonial{},
	}

	var (
		settingsObj  *models.Object
		testimonials []models.Object
	)

	// Each fetch degrades on its own, so neither returns an error to the group
	var g errgroup.Group
	g.Go(func() error {
		obj, err := s.content.GetSiteSettings(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to fetch site settings for signup page")
			return nil
		}
		settingsObj = obj
		return nil
	})
	g.Go(func() error {
		objs, err := s.content.GetTestimonials(ctx, s.limits.SignupTestimonials)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to fetch testimonials for signup page")
			return nil
		}
		testimonials = objs
		return nil
	})
	_ = g.Wait()

	if settingsObj != nil {
		page.Settings = resolver.ResolveSettings(settingsObj)
	}
	for i := range testimonials {
		page.Testimonials = append(page.Testimonials, resolver.ResolveTestimonial(&testimonials[i], resolver.CardContext))
	}
	return page
}

func (s *pageService) meta(title, description, path, kind string, image resolver.Image) PageMeta {
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         s.siteURL + path,
		Type:        kind,
		Image:       image,
	}
}

func pageTitle(title string) string {
	return fmt.Sprintf("%s | %s", title, SiteName)
}

func resolveArticles(objects []models.Object, ctx resolver.RenderContext) []resolver.Article {
	articles := make([]resolver.Article, 0, len(objects))
	for i := range objects {
		articles = append(articles, resolver.ResolveArticle(&objects[i], ctx))
	}
	return articles
}

// previewPosts picks at most one featured article followed by up to two
// regular ones, preserving fetch order within each group.
func previewPosts(articles []resolver.Article) []resolver.Article {
	out := make([]resolver.Article, 0, PreviewSize)
	for _, a := range articles {
		if a.Featured {
			out = append(out, a)
			break
		}
	}

	regular := 0
	for _, a := range articles {
		if a.Featured || regular == PreviewSize-1 {
			continue
		}
		out = append(out, a)
		regular++
	}
	return out
}
