package service

import (
	"context"
	"strings"
	"time"

	"github.com/ai-picks-site/internal/metrics"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/repository"
	"github.com/ai-picks-site/internal/validation"
	"github.com/rs/zerolog"
)

// newsletterService is the concrete implementation of NewsletterService
type newsletterService struct {
	subscriptions repository.SubscriptionRepository
	log           zerolog.Logger
	now           func() time.Time
}

func newNewsletterService(subscriptions repository.SubscriptionRepository, log zerolog.Logger) *newsletterService {
	return &newsletterService{
		subscriptions: subscriptions,
		log:           log.With().Str("service", "newsletter").Logger(),
		now:           time.Now,
	}
}

// Subscribe validates the request and records an active subscription
func (s *newsletterService) Subscribe(ctx context.Context, req *models.SubscriptionRequest) (*models.Subscription, error) {
	normalized := &models.SubscriptionRequest{
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:  strings.TrimSpace(req.Name),
	}

	if errs := validation.ValidateSubscription(normalized); len(errs) > 0 {
		metrics.NewsletterSubscriptions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, &InvalidInputError{Errors: errs}
	}

	sub := &models.Subscription{
		Email:        normalized.Email,
		Name:         normalized.Name,
		SubscribedAt: s.now().UTC(),
		Status:       models.SubscriptionActive,
	}

	if _, err := s.subscriptions.AddNewsletterSubscription(ctx, sub); err != nil {
		metrics.NewsletterSubscriptions.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.log.Error().Err(err).Msg("Failed to store newsletter subscription")
		return nil, err
	}

	metrics.NewsletterSubscriptions.WithLabelValues(metrics.OutcomeAccepted).Inc()
	s.log.Info().Str("email_domain", emailDomain(sub.Email)).Msg("Newsletter subscription added")

	return sub, nil
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
