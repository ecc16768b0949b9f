package validation

import (
	"strings"
	"testing"

	"github.com/ai-picks-site/internal/models"
)

func TestValidateSubscription(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.SubscriptionRequest
		wantFields []string
	}{
		{
			name: "valid with name",
			req:  &models.SubscriptionRequest{Email: "fan@example.com", Name: "Sam"},
		},
		{
			name: "valid without name",
			req:  &models.SubscriptionRequest{Email: "fan@example.com"},
		},
		{
			name:       "missing email",
			req:        &models.SubscriptionRequest{Name: "Sam"},
			wantFields: []string{"email"},
		},
		{
			name:       "invalid email format",
			req:        &models.SubscriptionRequest{Email: "not-an-email"},
			wantFields: []string{"email"},
		},
		{
			name:       "name too long",
			req:        &models.SubscriptionRequest{Email: "fan@example.com", Name: strings.Repeat("a", MaxNameLength+1)},
			wantFields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSubscription(tt.req)
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	valid := func() *models.SignupRequest {
		return &models.SignupRequest{
			Email:         "fan@example.com",
			Name:          "Sam Rivera",
			Phone:         "+1 (555) 010-2030",
			PaymentMethod: "card",
		}
	}

	tests := []struct {
		name       string
		mutate     func(*models.SignupRequest)
		wantFields []string
	}{
		{name: "valid card", mutate: func(*models.SignupRequest) {}},
		{name: "valid paypal without phone", mutate: func(r *models.SignupRequest) {
			r.PaymentMethod = "paypal"
			r.Phone = ""
		}},
		{name: "missing name", mutate: func(r *models.SignupRequest) { r.Name = "" }, wantFields: []string{"name"}},
		{name: "bad phone", mutate: func(r *models.SignupRequest) { r.Phone = "call me" }, wantFields: []string{"phone"}},
		{name: "unknown payment method", mutate: func(r *models.SignupRequest) { r.PaymentMethod = "crypto" }, wantFields: []string{"payment_method"}},
		{name: "multiple errors sorted", mutate: func(r *models.SignupRequest) {
			r.Email = "nope"
			r.Name = ""
			r.PaymentMethod = ""
		}, wantFields: []string{"email", "name", "payment_method"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assertFields(t, ValidateSignup(req), tt.wantFields)
		})
	}
}

func TestValidateSignup_ErrorCarriesValue(t *testing.T) {
	errs := ValidateSignup(&models.SignupRequest{Email: "nope", Name: "Sam", PaymentMethod: "card"})
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Value != "nope" {
		t.Errorf("Expected offending value, got %v", errs[0].Value)
	}

	errs = ValidateSignup(&models.SignupRequest{Email: "fan@example.com", PaymentMethod: "card"})
	if len(errs) != 1 || errs[0].Value != nil {
		t.Errorf("Expected missing name without value, got %+v", errs)
	}
	if errs[0].Message != "name is required" {
		t.Errorf("Unexpected message %q", errs[0].Message)
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"week-12-nfl-model-review", true},
		{"bankroll", true},
		{"Upper-Case", false},
		{"trailing-", false},
		{"double--dash", false},
		{"../etc/passwd", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidSlug(tt.slug); got != tt.valid {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.valid)
		}
	}
}

func assertFields(t *testing.T, errs []ValidationError, want []string) {
	t.Helper()
	if len(errs) != len(want) {
		t.Fatalf("Expected %d errors, got %d: %+v", len(want), len(errs), errs)
	}
	for i, field := range want {
		if errs[i].Field != field {
			t.Errorf("Expected error on %q, got %q", field, errs[i].Field)
		}
	}
}
