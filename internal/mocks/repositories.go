package mocks

import (
	"context"
	"sync"

	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/repository"
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mu sync.Mutex

	Settings            *models.Object
	Posts               []models.Object
	Picks               []models.Object
	Testimonials        []models.Object
	FeaturedTestimonial []models.Object

	// Err is returned by every read when set
	Err   error
	Calls []string
}

// Verify interface compliance
var _ repository.ContentRepository = (*MockContentRepository)(nil)

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{}
}

func (m *MockContentRepository) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	return m.Err
}

func (m *MockContentRepository) GetSiteSettings(ctx context.Context) (*models.Object, error) {
	if err := m.record("GetSiteSettings"); err != nil {
		return nil, err
	}
	return m.Settings, nil
}

func (m *MockContentRepository) GetBlogPosts(ctx context.Context, limit int) ([]models.Object, error) {
	if err := m.record("GetBlogPosts"); err != nil {
		return nil, err
	}
	return limited(m.Posts, limit), nil
}

func (m *MockContentRepository) GetBlogPost(ctx context.Context, slug string) (*models.Object, error) {
	if err := m.record("GetBlogPost"); err != nil {
		return nil, err
	}
	for i := range m.Posts {
		if m.Posts[i].Slug == slug {
			post := m.Posts[i]
			return &post, nil
		}
	}
	return nil, nil
}

func (m *MockContentRepository) GetBettingPicks(ctx context.Context, limit int) ([]models.Object, error) {
	if err := m.record("GetBettingPicks"); err != nil {
		return nil, err
	}
	return limited(m.Picks, limit), nil
}

func (m *MockContentRepository) GetFeaturedTestimonials(ctx context.Context, limit int) ([]models.Object, error) {
	if err := m.record("GetFeaturedTestimonials"); err != nil {
		return nil, err
	}
	return limited(m.FeaturedTestimonial, limit), nil
}

func (m *MockContentRepository) GetTestimonials(ctx context.Context, limit int) ([]models.Object, error) {
	if err := m.record("GetTestimonials"); err != nil {
		return nil, err
	}
	return limited(m.Testimonials, limit), nil
}

func limited(objects []models.Object, limit int) []models.Object {
	out := make([]models.Object, 0, len(objects))
	out = append(out, objects...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mu            sync.Mutex
	Subscriptions []*models.Subscription
	InsertError   error
}

// Verify interface compliance
var _ repository.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{}
}

func (m *MockSubscriptionRepository) AddNewsletterSubscription(ctx context.Context, sub *models.Subscription) (*models.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return nil, m.InsertError
	}
	m.Subscriptions = append(m.Subscriptions, sub)
	return &models.Object{
		ID:       "sub-1",
		Type:     models.KindSubscription,
		Title:    sub.Email,
		Metadata: sub.Metadata(),
	}, nil
}
