package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/metrics"
	"github.com/ai-picks-site/internal/models"
)

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	bucket       cms.Bucket
	settingsSlug string
}

// NewContentRepo creates a new content repository
func NewContentRepo(bucket cms.Bucket, settingsSlug string) ContentRepository {
	return &contentRepo{bucket: bucket, settingsSlug: settingsSlug}
}

// GetSiteSettings retrieves the singleton settings record
func (r *contentRepo) GetSiteSettings(ctx context.Context) (*models.Object, error) {
	return r.findOne(ctx, models.KindSettings, r.settingsSlug)
}

// GetBlogPosts retrieves the newest articles
func (r *contentRepo) GetBlogPosts(ctx context.Context, limit int) ([]models.Object, error) {
	return r.find(ctx, cms.Query{Type: models.KindArticle, Limit: limit, Depth: 1})
}

// GetBlogPost retrieves one article by slug
func (r *contentRepo) GetBlogPost(ctx context.Context, slug string) (*models.Object, error) {
	return r.findOne(ctx, models.KindArticle, slug)
}

// GetBettingPicks retrieves the newest picks
func (r *contentRepo) GetBettingPicks(ctx context.Context, limit int) ([]models.Object, error) {
	return r.find(ctx, cms.Query{Type: models.KindPick, Limit: limit})
}

// GetFeaturedTestimonials retrieves testimonials flagged as featured
func (r *contentRepo) GetFeaturedTestimonials(ctx context.Context, limit int) ([]models.Object, error) {
	return r.find(ctx, cms.Query{
		Type:    models.KindTestimonial,
		Filters: map[string]any{"featured": true},
		Limit:   limit,
	})
}

// GetTestimonials retrieves the newest testimonials
func (r *contentRepo) GetTestimonials(ctx context.Context, limit int) ([]models.Object, error) {
	return r.find(ctx, cms.Query{Type: models.KindTestimonial, Limit: limit})
}

func (r *contentRepo) findOne(ctx context.Context, kind models.Kind, slug string) (*models.Object, error) {
	start := time.Now()
	obj, err := r.bucket.FindOne(ctx, kind, slug)
	if errors.Is(err, cms.ErrNotFound) {
		metrics.ObserveFetch(string(kind), start, nil)
		return nil, nil
	}
	metrics.ObserveFetch(string(kind), start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %q: %w", kind, slug, err)
	}
	return obj, nil
}

func (r *contentRepo) find(ctx context.Context, q cms.Query) ([]models.Object, error) {
	start := time.Now()
	objects, err := r.bucket.Find(ctx, q)
	if errors.Is(err, cms.ErrNotFound) {
		metrics.ObserveFetch(string(q.Type), start, nil)
		return []models.Object{}, nil
	}
	metrics.ObserveFetch(string(q.Type), start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", q.Type, err)
	}
	if objects == nil {
		objects = []models.Object{}
	}
	return objects, nil
}
