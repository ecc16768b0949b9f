package service

import (
	"context"
	"strings"
	"time"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/metrics"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SignupStatusReceived marks a signup that was accepted for follow-up
const SignupStatusReceived = "received"

// signupService is the concrete implementation of SignupService
type signupService struct {
	delay time.Duration
	log   zerolog.Logger
}

func newSignupService(cfg config.SignupConfig, log zerolog.Logger) *signupService {
	return &signupService{
		delay: cfg.ProcessingDelay,
		log:   log.With().Str("service", "signup").Logger(),
	}
}

// Submit validates the form, waits out the simulated processing delay and
// acknowledges the signup. Nothing is charged or stored.
func (s *signupService) Submit(ctx context.Context, req *models.SignupRequest) (*models.SignupReceipt, error) {
	normalized := &models.SignupRequest{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		SaveInfo:      req.SaveInfo,
	}

	if errs := validation.ValidateSignup(normalized); len(errs) > 0 {
		metrics.SignupSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, &InvalidInputError{Errors: errs}
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			metrics.SignupSubmissions.WithLabelValues(metrics.OutcomeFailed).Inc()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := &models.SignupReceipt{
		ID:         uuid.New().String(),
		Status:     SignupStatusReceived,
		ReceivedAt: time.Now().UTC(),
	}

	metrics.SignupSubmissions.WithLabelValues(metrics.OutcomeAccepted).Inc()
	s.log.Info().
		Str("signup_id", receipt.ID).
		Str("email_domain", emailDomain(normalized.Email)).
		Str("payment_method", normalized.PaymentMethod).
		Bool("save_info", normalized.SaveInfo).
		Msg("Signup submitted")

	return receipt, nil
}
