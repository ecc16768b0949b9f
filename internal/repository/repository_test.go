package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/mocks"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/repository"
)

func object(kind models.Kind, slug string, age time.Duration, meta models.Metadata) models.Object {
	if meta == nil {
		meta = models.Metadata{}
	}
	return models.Object{
		ID:        slug,
		Type:      kind,
		Slug:      slug,
		Title:     strings.ToUpper(slug),
		Metadata:  meta,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestContentRepo_GetBlogPosts(t *testing.T) {
	bucket := mocks.NewMockBucket(
		object(models.KindArticle, "older", 2*time.Hour, nil),
		object(models.KindArticle, "newest", time.Minute, nil),
		object(models.KindPick, "pick", 0, nil),
	)
	repos := repository.New(bucket, "site-configuration")

	posts, err := repos.Content.GetBlogPosts(context.Background(), 20)
	if err != nil {
		t.Fatalf("GetBlogPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newest" {
		t.Errorf("Expected newest first, got %s", posts[0].Slug)
	}
	if bucket.Queries[0].Depth != 1 {
		t.Error("Expected articles fetched with references expanded")
	}
}

func TestContentRepo_NotFoundIsEmpty(t *testing.T) {
	bucket := mocks.NewMockBucket()
	bucket.EmptyAsNotFound = true
	repo := repository.NewContentRepo(bucket, "site-configuration")
	ctx := context.Background()

	posts, err := repo.GetBlogPosts(ctx, 10)
	if err != nil {
		t.Fatalf("Expected no error for empty collection, got %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", posts)
	}

	post, err := repo.GetBlogPost(ctx, "missing")
	if err != nil {
		t.Fatalf("Expected no error for missing post, got %v", err)
	}
	if post != nil {
		t.Errorf("Expected nil post, got %+v", post)
	}

	settings, err := repo.GetSiteSettings(ctx)
	if err != nil || settings != nil {
		t.Errorf("Expected nil settings without error, got %+v, %v", settings, err)
	}
}

func TestContentRepo_UpstreamErrorWrapped(t *testing.T) {
	bucket := mocks.NewMockBucket()
	bucket.FindError = &cms.APIError{Status: 500, Message: "upstream down"}
	repo := repository.NewContentRepo(bucket, "site-configuration")

	_, err := repo.GetBettingPicks(context.Background(), 5)
	if err == nil {
		t.Fatal("Expected error")
	}
	var apiErr *cms.APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("Expected wrapped APIError, got %v", err)
	}
	if !strings.Contains(err.Error(), string(models.KindPick)) {
		t.Errorf("Expected collection in error, got %v", err)
	}
}

func TestContentRepo_FeaturedTestimonials(t *testing.T) {
	bucket := mocks.NewMockBucket(
		object(models.KindTestimonial, "featured", time.Hour, models.Metadata{"featured": true}),
		object(models.KindTestimonial, "regular", time.Minute, models.Metadata{"featured": false}),
		object(models.KindTestimonial, "unset", time.Second, nil),
	)
	repo := repository.NewContentRepo(bucket, "site-configuration")

	got, err := repo.GetFeaturedTestimonials(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetFeaturedTestimonials failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "featured" {
		t.Errorf("Expected only the featured testimonial, got %+v", got)
	}

	all, err := repo.GetTestimonials(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetTestimonials failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected limit to apply, got %d", len(all))
	}
}

func TestContentRepo_GetSiteSettings_UsesConfiguredSlug(t *testing.T) {
	bucket := mocks.NewMockBucket(
		object(models.KindSettings, "custom-settings", 0, models.Metadata{"hero_headline": "Win more"}),
	)
	repo := repository.NewContentRepo(bucket, "custom-settings")

	settings, err := repo.GetSiteSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSiteSettings failed: %v", err)
	}
	if settings == nil {
		t.Fatal("Expected settings record")
	}
	if v, _ := settings.Metadata.Text("hero_headline"); v != "Win more" {
		t.Errorf("Unexpected hero headline %q", v)
	}
}

func TestSubscriptionRepo_AddNewsletterSubscription(t *testing.T) {
	bucket := mocks.NewMockBucket()
	repo := repository.NewSubscriptionRepo(bucket)
	at := time.Date(2024, 11, 26, 14, 5, 0, 0, time.UTC)

	created, err := repo.AddNewsletterSubscription(context.Background(), &models.Subscription{
		Email:        "fan@example.com",
		Name:         "Sam",
		SubscribedAt: at,
		Status:       models.SubscriptionActive,
	})
	if err != nil {
		t.Fatalf("AddNewsletterSubscription failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected ID assigned")
	}
	if len(bucket.Inserted) != 1 {
		t.Fatalf("Expected 1 insert, got %d", len(bucket.Inserted))
	}

	stored := bucket.Inserted[0]
	if stored.Type != models.KindSubscription {
		t.Errorf("Unexpected type %s", stored.Type)
	}
	if !strings.HasPrefix(stored.Slug, "newsletter-") {
		t.Errorf("Unexpected slug %s", stored.Slug)
	}
	if v, _ := stored.Metadata.Text("subscribed_at"); v != "2024-11-26T14:05:00Z" {
		t.Errorf("Unexpected subscribed_at %q", v)
	}
	if v, _ := stored.Metadata.Text("status"); v != models.SubscriptionActive {
		t.Errorf("Unexpected status %q", v)
	}
}

func TestSubscriptionRepo_InsertError(t *testing.T) {
	bucket := mocks.NewMockBucket()
	bucket.InsertError = errors.New("write key rejected")
	repo := repository.NewSubscriptionRepo(bucket)

	if _, err := repo.AddNewsletterSubscription(context.Background(), &models.Subscription{Email: "a@b.co"}); err == nil {
		t.Error("Expected error")
	}
}
