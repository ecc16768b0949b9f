package repository

import (
	"context"

	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/models"
)

// ContentRepository defines the read operations the pages need from the bucket.
// A missing record is reported as nil (or an empty list), never as an error.
type ContentRepository interface {
	GetSiteSettings(ctx context.Context) (*models.Object, error)
	GetBlogPosts(ctx context.Context, limit int) ([]models.Object, error)
	GetBlogPost(ctx context.Context, slug string) (*models.Object, error)
	GetBettingPicks(ctx context.Context, limit int) ([]models.Object, error)
	GetFeaturedTestimonials(ctx context.Context, limit int) ([]models.Object, error)
	GetTestimonials(ctx context.Context, limit int) ([]models.Object, error)
}

// SubscriptionRepository defines the newsletter write operation
type SubscriptionRepository interface {
	AddNewsletterSubscription(ctx context.Context, sub *models.Subscription) (*models.Object, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content      ContentRepository
	Subscription SubscriptionRepository
}

// New creates all repositories over the given bucket
func New(bucket cms.Bucket, settingsSlug string) *Repositories {
	return &Repositories{
		Content:      NewContentRepo(bucket, settingsSlug),
		Subscription: NewSubscriptionRepo(bucket),
	}
}
