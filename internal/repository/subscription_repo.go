package repository

import (
	"context"
	"fmt"

	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/models"
	"github.com/google/uuid"
)

// subscriptionRepo is the concrete implementation of SubscriptionRepository
type subscriptionRepo struct {
	bucket cms.Bucket
}

// NewSubscriptionRepo creates a new subscription repository
func NewSubscriptionRepo(bucket cms.Bucket) SubscriptionRepository {
	return &subscriptionRepo{bucket: bucket}
}

// AddNewsletterSubscription writes the subscription as a bucket object
func (r *subscriptionRepo) AddNewsletterSubscription(ctx context.Context, sub *models.Subscription) (*models.Object, error) {
	obj := &models.Object{
		Type:     models.KindSubscription,
		Slug:     "newsletter-" + uuid.New().String(),
		Title:    sub.Email,
		Status:   models.StatusPublished,
		Metadata: sub.Metadata(),
	}

	created, err := r.bucket.InsertOne(ctx, obj)
	if err != nil {
		return nil, fmt.Errorf("failed to add newsletter subscription: %w", err)
	}
	return created, nil
}
