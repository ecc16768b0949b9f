package validation

import (
	"errors"
	"regexp"
	"sort"

	"github.com/ai-picks-site/internal/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)
)

// Field length limits
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidSlug reports whether s is a lowercase, hyphen-separated slug
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// ValidateSubscription validates a newsletter form submission
func ValidateSubscription(req *models.SubscriptionRequest) []ValidationError {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required.Error("email is required"), is.EmailFormat, validation.Length(0, MaxEmailLength)),
		validation.Field(&req.Name, validation.Length(0, MaxNameLength)),
	)
	return collect(err, map[string]interface{}{
		"email": req.Email,
		"name":  req.Name,
	})
}

// ValidateSignup validates a signup form submission. Payment card fields are
// never part of the request and are not checked here.
func ValidateSignup(req *models.SignupRequest) []ValidationError {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required.Error("email is required"), is.EmailFormat, validation.Length(0, MaxEmailLength)),
		validation.Field(&req.Name, validation.Required.Error("name is required"), validation.Length(1, MaxNameLength)),
		validation.Field(&req.Phone, validation.Match(phoneRegex).Error("invalid phone number")),
		validation.Field(&req.PaymentMethod,
			validation.Required.Error("payment_method is required"),
			validation.By(func(value interface{}) error {
				method, _ := value.(string)
				if !models.ValidPaymentMethods[method] {
					return errors.New("invalid payment method, must be one of: card, paypal")
				}
				return nil
			}),
		),
	)
	return collect(err, map[string]interface{}{
		"email":          req.Email,
		"name":           req.Name,
		"phone":          req.Phone,
		"payment_method": req.PaymentMethod,
	})
}

// collect flattens ozzo's per-field errors into a list ordered by field name.
// Empty values are left out of the result.
func collect(err error, values map[string]interface{}) []ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "request", Message: err.Error()}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]ValidationError, 0, len(fields))
	for _, field := range fields {
		ve := ValidationError{Field: field, Message: fieldErrs[field].Error()}
		if v, ok := values[field]; ok && v != "" {
			ve.Value = v
		}
		out = append(out, ve)
	}
	return out
}
