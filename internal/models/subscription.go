package models

import (
	"time"
)

// SubscriptionRequest is the newsletter form payload
type SubscriptionRequest struct {
	Email string `json:"email" form:"email"`
	Name  string `json:"name,omitempty" form:"name"`
}

// Subscription status values
const (
	SubscriptionActive = "active"
)

// Subscription is a newsletter signup as written to the bucket
type Subscription struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
}

// Metadata returns the bucket metadata for the subscription object
func (s *Subscription) Metadata() Metadata {
	return Metadata{
		"email":         s.Email,
		"name":          s.Name,
		"subscribed_at": s.SubscribedAt.UTC().Format(time.RFC3339),
		"status":        s.Status,
	}
}

// SignupRequest is the checkout form payload. Payment details are collected
// by the payment provider's widget and never reach this service.
type SignupRequest struct {
	Email         string `json:"email" form:"email"`
	Name          string `json:"name" form:"name"`
	Phone         string `json:"phone,omitempty" form:"phone"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
	SaveInfo      bool   `json:"save_info,omitempty" form:"save_info"`
}

// ValidPaymentMethods defines the payment options offered on the signup page
var ValidPaymentMethods = map[string]bool{
	"card":   true,
	"paypal": true,
}

// SignupReceipt acknowledges a signup submission
type SignupReceipt struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}
