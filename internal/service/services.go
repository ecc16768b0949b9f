package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/repository"
	"github.com/ai-picks-site/internal/validation"
	"github.com/rs/zerolog"
)

// PageService defines the page composition operations. Each page is built from
// records fetched per request and resolved for display.
type PageService interface {
	Home(ctx context.Context) (*HomePage, error)
	BlogIndex(ctx context.Context) (*BlogIndexPage, error)
	BlogPost(ctx context.Context, slug string) (*BlogPostPage, error)
	Signup(ctx context.Context) *SignupPage
}

// NewsletterService defines the newsletter signup operation
type NewsletterService interface {
	Subscribe(ctx context.Context, req *models.SubscriptionRequest) (*models.Subscription, error)
}

// SignupService defines the checkout form operation. No payment is processed.
type SignupService interface {
	Submit(ctx context.Context, req *models.SignupRequest) (*models.SignupReceipt, error)
}

// Services holds all service interfaces
type Services struct {
	Pages      PageService
	Newsletter NewsletterService
	Signup     SignupService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Pages:      newPageService(repos.Content, cfg.Pages, cfg.Server.SiteURL, log),
		Newsletter: newNewsletterService(repos.Subscription, log),
		Signup:     newSignupService(cfg.Signup, log),
	}
}

// InvalidInputError carries the field errors of a rejected form submission
type InvalidInputError struct {
	Errors []validation.ValidationError
}

func (e *InvalidInputError) Error() string {
	fields := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		fields[i] = ve.Field
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(fields, ", "))
}
