package api

import (
	"errors"
	"net/http"

	"github.com/ai-picks-site/internal/service"
	"github.com/ai-picks-site/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const postNotFoundMessage = "The requested blog post could not be found."

// PageHandler serves the site pages as HTML and as JSON
type PageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		log:      log.With().Str("handler", "pages").Logger(),
	}
}

// Home handles GET /
// Upstream failures render the landing page with default copy and empty sections.
func (h *PageHandler) Home(c *gin.Context) {
	page, err := h.services.Pages.Home(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Failed to load home page")
		page = service.EmptyHomePage()
	}
	c.HTML(http.StatusOK, "home.html", page)
}

// BlogIndex handles GET /blog
func (h *PageHandler) BlogIndex(c *gin.Context) {
	page, err := h.services.Pages.BlogIndex(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Failed to load blog index")
		page = service.EmptyBlogIndexPage()
	}
	c.HTML(http.StatusOK, "blog_index.html", page)
}

// BlogPost handles GET /blog/:slug
// Missing posts and upstream failures both render the not-found page.
func (h *PageHandler) BlogPost(c *gin.Context) {
	slug := c.Param("slug")
	if !validation.ValidSlug(slug) {
		c.HTML(http.StatusNotFound, "not_found.html", notFoundView(postNotFoundMessage))
		return
	}

	page, err := h.services.Pages.BlogPost(c.Request.Context(), slug)
	if err != nil {
		if !errors.Is(err, service.ErrPostNotFound) {
			h.log.Error().Err(err).Str("slug", slug).Str("request_id", c.GetString(requestIDKey)).Msg("Failed to load blog post")
		}
		c.HTML(http.StatusNotFound, "not_found.html", notFoundView(postNotFoundMessage))
		return
	}
	c.HTML(http.StatusOK, "blog_post.html", page)
}

// Signup handles GET /signup
func (h *PageHandler) Signup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", h.services.Pages.Signup(c.Request.Context()))
}

// HomeJSON handles GET /v1/pages/home
func (h *PageHandler) HomeJSON(c *gin.Context) {
	page, err := h.services.Pages.Home(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load home page")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load content"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// BlogIndexJSON handles GET /v1/blog
func (h *PageHandler) BlogIndexJSON(c *gin.Context) {
	page, err := h.services.Pages.BlogIndex(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load blog index")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load content"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// BlogPostJSON handles GET /v1/blog/:slug
func (h *PageHandler) BlogPostJSON(c *gin.Context) {
	slug := c.Param("slug")
	if !validation.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug", "slug": slug})
		return
	}

	page, err := h.services.Pages.BlogPost(c.Request.Context(), slug)
	if errors.Is(err, service.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": postNotFoundMessage})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to load blog post")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load content"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// SignupJSON handles GET /v1/signup
func (h *PageHandler) SignupJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Pages.Signup(c.Request.Context()))
}
