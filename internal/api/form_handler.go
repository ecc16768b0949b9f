package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/service"
	"github.com/ai-picks-site/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FormHandler handles the newsletter and signup submissions. Responses are
// JSON unless the client prefers HTML, as a plain form post does.
type FormHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(services *service.Services, log zerolog.Logger) *FormHandler {
	return &FormHandler{
		services: services,
		log:      log.With().Str("handler", "forms").Logger(),
	}
}

// Subscribe handles POST /v1/newsletter
func (h *FormHandler) Subscribe(c *gin.Context) {
	var req models.SubscriptionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil, "/")
		return
	}

	sub, err := h.services.Newsletter.Subscribe(c.Request.Context(), &req)
	if err != nil {
		var invalid *service.InvalidInputError
		if errors.As(err, &invalid) {
			h.respondError(c, http.StatusBadRequest, "Validation failed", invalid.Errors, "/")
			return
		}
		h.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Newsletter subscription failed")
		h.respondError(c, http.StatusBadGateway, "Failed to subscribe, please try again", nil, "/")
		return
	}

	if wantsHTML(c) {
		c.HTML(http.StatusCreated, "form_result.html", resultView("You're In!", "Check your inbox for this week's free picks.", "/"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":        "subscribed",
		"email":         sub.Email,
		"subscribed_at": sub.SubscribedAt,
	})
}

// SubmitSignup handles POST /v1/signup
func (h *FormHandler) SubmitSignup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil, "/signup")
		return
	}

	receipt, err := h.services.Signup.Submit(c.Request.Context(), &req)
	if err != nil {
		var invalid *service.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			h.respondError(c, http.StatusBadRequest, "Validation failed", invalid.Errors, "/signup")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			h.respondError(c, http.StatusServiceUnavailable, "Signup timed out, please try again", nil, "/signup")
		default:
			h.log.Error().Err(err).Msg("Signup failed")
			h.respondError(c, http.StatusInternalServerError, "Signup failed", nil, "/signup")
		}
		return
	}

	if wantsHTML(c) {
		c.HTML(http.StatusAccepted, "form_result.html", resultView("Welcome Aboard!", "We've received your signup. Watch your inbox for next steps.", "/"))
		return
	}
	c.JSON(http.StatusAccepted, receipt)
}

func (h *FormHandler) respondError(c *gin.Context, status int, message string, details []validation.ValidationError, back string) {
	if wantsHTML(c) {
		view := resultView("Something Went Wrong", message, back)
		view.Errors = details
		c.HTML(status, "form_result.html", view)
		return
	}

	body := gin.H{"error": message}
	if len(details) > 0 {
		body["details"] = details
	}
	c.JSON(status, body)
}

func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

func resultView(heading, message, back string) messageView {
	return messageView{
		Meta:    service.PageMeta{Title: heading + " | " + service.SiteName, Description: message, Type: "website"},
		Heading: heading,
		Message: message,
		Back:    back,
	}
}
