package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/resolver"
	"github.com/ai-picks-site/internal/service"
)

// MockPageService is a mock implementation of PageService
type MockPageService struct {
	HomeFunc      func(ctx context.Context) (*service.HomePage, error)
	BlogIndexFunc func(ctx context.Context) (*service.BlogIndexPage, error)
	BlogPostFunc  func(ctx context.Context, slug string) (*service.BlogPostPage, error)
	SignupFunc    func(ctx context.Context) *service.SignupPage
}

// Verify interface compliance
var _ service.PageService = (*MockPageService)(nil)

func NewMockPageService() *MockPageService {
	return &MockPageService{}
}

func (m *MockPageService) Home(ctx context.Context) (*service.HomePage, error) {
	if m.HomeFunc != nil {
		return m.HomeFunc(ctx)
	}
	return service.EmptyHomePage(), nil
}

func (m *MockPageService) BlogIndex(ctx context.Context) (*service.BlogIndexPage, error) {
	if m.BlogIndexFunc != nil {
		return m.BlogIndexFunc(ctx)
	}
	return service.EmptyBlogIndexPage(), nil
}

func (m *MockPageService) BlogPost(ctx context.Context, slug string) (*service.BlogPostPage, error) {
	if m.BlogPostFunc != nil {
		return m.BlogPostFunc(ctx, slug)
	}
	return nil, service.ErrPostNotFound
}

func (m *MockPageService) Signup(ctx context.Context) *service.SignupPage {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx)
	}
	return &service.SignupPage{Settings: resolver.DefaultSettings(), Testimonials: []resolver.Testimonial{}}
}

// MockNewsletterService is a mock implementation of NewsletterService
type MockNewsletterService struct {
	mu            sync.Mutex
	SubscribeFunc func(ctx context.Context, req *models.SubscriptionRequest) (*models.Subscription, error)
	Requests      []*models.SubscriptionRequest
}

// Verify interface compliance
var _ service.NewsletterService = (*MockNewsletterService)(nil)

func NewMockNewsletterService() *MockNewsletterService {
	return &MockNewsletterService{}
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, req *models.SubscriptionRequest) (*models.Subscription, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, req)
	}
	return &models.Subscription{
		Email:        req.Email,
		Name:         req.Name,
		SubscribedAt: time.Now().UTC(),
		Status:       models.SubscriptionActive,
	}, nil
}

// MockSignupService is a mock implementation of SignupService
type MockSignupService struct {
	SubmitFunc func(ctx context.Context, req *models.SignupRequest) (*models.SignupReceipt, error)
	Requests   []*models.SignupRequest
}

// Verify interface compliance
var _ service.SignupService = (*MockSignupService)(nil)

func NewMockSignupService() *MockSignupService {
	return &MockSignupService{}
}

func (m *MockSignupService) Submit(ctx context.Context, req *models.SignupRequest) (*models.SignupReceipt, error) {
	m.Requests = append(m.Requests, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &models.SignupReceipt{ID: "signup-1", Status: service.SignupStatusReceived, ReceivedAt: time.Now().UTC()}, nil
}
