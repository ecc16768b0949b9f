package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/metrics"
	"github.com/ai-picks-site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const serviceName = "ai-picks-site"

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. health may be nil when
// the site has no local dependency to check.
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, health HealthChecker) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware())

	// Handlers
	pageHandler := NewPageHandler(services, log)
	formHandler := NewFormHandler(services, log)
	newsletterLimiter := newIPRateLimiter(cfg.Newsletter.RatePerMinute, cfg.Newsletter.Burst)

	// Health check
	router.GET("/health", healthCheck(health))
	router.GET("/metrics", metrics.Handler())

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/blog", pageHandler.BlogIndex)
	router.GET("/blog/:slug", pageHandler.BlogPost)
	router.GET("/signup", pageHandler.Signup)

	// API v1
	v1 := router.Group("/v1")
	{
		pages := v1.Group("/pages")
		{
			pages.GET("/home", pageHandler.HomeJSON)
		}

		blog := v1.Group("/blog")
		{
			blog.GET("", pageHandler.BlogIndexJSON)
			blog.GET("/:slug", pageHandler.BlogPostJSON)
		}

		v1.GET("/signup", pageHandler.SignupJSON)
		v1.POST("/signup", formHandler.SubmitSignup)
		v1.POST("/newsletter", newsletterLimiter.Middleware(func() {
			metrics.NewsletterSubscriptions.WithLabelValues(metrics.OutcomeLimited).Inc()
		}), formHandler.Subscribe)
	}

	router.NoRoute(notFound)

	return router
}

// healthCheck returns the health status
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		body := gin.H{
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		}

		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
				body["error"] = err.Error()
			}
		}

		body["status"] = status
		c.JSON(code, body)
	}
}

// notFound answers unknown paths in the format of the surface they hit
func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", notFoundView("The page you're looking for doesn't exist."))
}
