package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ai-picks-site/internal/api"
	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/mocks"
	"github.com/ai-picks-site/internal/models"
	"github.com/ai-picks-site/internal/resolver"
	"github.com/ai-picks-site/internal/service"
	"github.com/ai-picks-site/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testRouter struct {
	router     *gin.Engine
	pages      *mocks.MockPageService
	newsletter *mocks.MockNewsletterService
	signup     *mocks.MockSignupService
}

type fakeHealth struct{ err error }

func (f fakeHealth) HealthCheck(ctx context.Context) error { return f.err }

func setupTestRouter(health api.HealthChecker) *testRouter {
	gin.SetMode(gin.TestMode)

	tr := &testRouter{
		pages:      mocks.NewMockPageService(),
		newsletter: mocks.NewMockNewsletterService(),
		signup:     mocks.NewMockSignupService(),
	}

	services := &service.Services{
		Pages:      tr.pages,
		Newsletter: tr.newsletter,
		Signup:     tr.signup,
	}

	cfg := &config.Config{
		Server:     config.ServerConfig{Port: "8080"},
		Newsletter: config.NewsletterConfig{RatePerMinute: 6, Burst: 2},
	}

	tr.router = api.NewRouter(services, cfg, zerolog.Nop(), health)
	return tr
}

func (tr *testRouter) do(method, target, contentType, body, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("GET", "/health", "", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "ai-picks-site" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected request id header")
	}
}

func TestHealthEndpoint_Unhealthy(t *testing.T) {
	tr := setupTestRouter(fakeHealth{err: errors.New("connection refused")})

	w := tr.do("GET", "/health", "", "", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.do("GET", "/", "", "", "")

	w := tr.do("GET", "/metrics", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_request_duration_seconds") {
		t.Error("Expected request duration metric")
	}
}

func TestHomePage(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.HomeFunc = func(ctx context.Context) (*service.HomePage, error) {
		page := service.EmptyHomePage()
		page.Picks = []resolver.Pick{{
			Title:          "Chiefs vs Bills",
			RecommendedBet: "Chiefs -2.5",
			Odds:           "-110",
			Confidence:     resolver.Label{Text: "High", Tone: resolver.ToneSuccess},
			GameDate:       "Jan 26, 2025",
		}}
		page.Testimonials = []resolver.Testimonial{{CustomerName: "Sam", Initial: "S", Stars: 4}}
		return page, nil
	}

	w := tr.do("GET", "/", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		resolver.DefaultSettings().HeroHeadline,
		"Chiefs -2.5",
		"High confidence",
		"Expert analysis and betting strategies coming soon",
		"4 out of 5 stars",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in home page", want)
		}
	}
}

func TestHomePage_UpstreamErrorRendersEmptyState(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.HomeFunc = func(ctx context.Context) (*service.HomePage, error) {
		return nil, errors.New("bucket unreachable")
	}

	w := tr.do("GET", "/", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "New picks are on the way") {
		t.Error("Expected empty picks state")
	}

	w = tr.do("GET", "/v1/pages/home", "", "", "")
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502 from JSON surface, got %d", w.Code)
	}
}

func TestBlogIndex_EmptyState(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.BlogIndexFunc = func(ctx context.Context) (*service.BlogIndexPage, error) {
		return nil, errors.New("bucket unreachable")
	}

	w := tr.do("GET", "/blog", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No blog posts yet") {
		t.Error("Expected empty state")
	}
}

func TestBlogIndexJSON(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.BlogIndexFunc = func(ctx context.Context) (*service.BlogIndexPage, error) {
		page := service.EmptyBlogIndexPage()
		page.Posts = []resolver.Article{{Slug: "bankroll-basics", Title: "Bankroll Basics", Tags: []string{}}}
		return page, nil
	}

	w := tr.do("GET", "/v1/blog", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Posts []map[string]interface{} `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(response.Posts))
	}
	post := response.Posts[0]
	if post["excerpt"] != nil || post["image"] != nil {
		t.Errorf("Expected absent excerpt and image as null, got %v and %v", post["excerpt"], post["image"])
	}
}

func TestBlogPost(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.BlogPostFunc = func(ctx context.Context, slug string) (*service.BlogPostPage, error) {
		if slug != "bankroll-basics" {
			return nil, service.ErrPostNotFound
		}
		return &service.BlogPostPage{
			Meta:     service.PageMeta{Title: "Bankroll Basics | AI Sports Betting"},
			Article:  resolver.Article{Slug: slug, Title: "Bankroll Basics", Excerpt: resolver.NewText("Size every play.")},
			Settings: resolver.DefaultSettings(),
			Preview:  "<p>Size every play.</p>",
			BodyHTML: "<p>Size every play.</p><p>Never chase.</p>",
			CTA:      "Unlock This Pick",
		}, nil
	}

	w := tr.do("GET", "/blog/bankroll-basics", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<p>Never chase.</p>") {
		t.Error("Expected body HTML rendered unescaped")
	}
	if !strings.Contains(body, "Unlock This Pick") {
		t.Error("Expected CTA")
	}

	w = tr.do("GET", "/blog/missing-post", "", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	w = tr.do("GET", "/v1/blog/missing-post", "", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected JSON 404, got %d", w.Code)
	}
}

func TestBlogPost_InvalidSlug(t *testing.T) {
	tr := setupTestRouter(nil)
	called := false
	tr.pages.BlogPostFunc = func(ctx context.Context, slug string) (*service.BlogPostPage, error) {
		called = true
		return nil, service.ErrPostNotFound
	}

	w := tr.do("GET", "/blog/Not_A_Slug", "", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	w = tr.do("GET", "/v1/blog/Not_A_Slug", "", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if called {
		t.Error("Invalid slugs should not reach the bucket")
	}
}

func TestBlogPost_UpstreamErrorRendersNotFound(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.BlogPostFunc = func(ctx context.Context, slug string) (*service.BlogPostPage, error) {
		return nil, errors.New("bucket unreachable")
	}

	if w := tr.do("GET", "/blog/some-post", "", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := tr.do("GET", "/v1/blog/some-post", "", "", ""); w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}

func TestSignupPage(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("GET", "/signup", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), resolver.DefaultSettings().SubscriptionPrice) {
		t.Error("Expected subscription price on signup page")
	}

	w = tr.do("GET", "/v1/signup", "", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestSignupPage_Testimonials(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.pages.SignupFunc = func(ctx context.Context) *service.SignupPage {
		return &service.SignupPage{
			Settings: resolver.DefaultSettings(),
			Testimonials: []resolver.Testimonial{
				{CustomerName: "Sam", Initial: "S", Stars: 5, Review: resolver.NewText("Paid for itself in a week.")},
			},
		}
	}

	w := tr.do("GET", "/signup", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Paid for itself in a week.") {
		t.Error("Expected testimonial review on signup page")
	}
}

func TestNewsletterSubscribe(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("POST", "/v1/newsletter", "application/json", `{"email":"fan@example.com","name":"Sam"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "subscribed" {
		t.Errorf("Unexpected response %v", response)
	}
	if len(tr.newsletter.Requests) != 1 || tr.newsletter.Requests[0].Name != "Sam" {
		t.Errorf("Expected request forwarded, got %+v", tr.newsletter.Requests)
	}
}

func TestNewsletterSubscribe_FormPost(t *testing.T) {
	tr := setupTestRouter(nil)

	form := url.Values{"email": {"fan@example.com"}}
	w := tr.do("POST", "/v1/newsletter", "application/x-www-form-urlencoded", form.Encode(), "text/html,application/xhtml+xml")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML response, got %s", w.Header().Get("Content-Type"))
	}
}

func TestNewsletterSubscribe_ValidationError(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.newsletter.SubscribeFunc = func(ctx context.Context, req *models.SubscriptionRequest) (*models.Subscription, error) {
		return nil, &service.InvalidInputError{Errors: []validation.ValidationError{
			{Field: "email", Message: "must be a valid email address", Value: req.Email},
		}}
	}

	w := tr.do("POST", "/v1/newsletter", "application/json", `{"email":"nope"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var response struct {
		Error   string                       `json:"error"`
		Details []validation.ValidationError `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Details) != 1 || response.Details[0].Field != "email" {
		t.Errorf("Expected email detail, got %+v", response)
	}
}

func TestNewsletterSubscribe_RateLimited(t *testing.T) {
	tr := setupTestRouter(nil)

	var last int
	for i := 0; i < 3; i++ {
		w := tr.do("POST", "/v1/newsletter", "application/json", `{"email":"fan@example.com"}`, "")
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("Expected third request within burst of 2 to be limited, got %d", last)
	}
	if len(tr.newsletter.Requests) != 2 {
		t.Errorf("Expected 2 requests to reach the service, got %d", len(tr.newsletter.Requests))
	}
}

func TestNewsletterSubscribe_InvalidBody(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("POST", "/v1/newsletter", "application/json", `{"email":`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestSignupSubmit(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("POST", "/v1/signup", "application/json",
		`{"email":"fan@example.com","name":"Sam Rivera","payment_method":"card","save_info":true}`, "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", w.Code)
	}

	var receipt models.SignupReceipt
	json.Unmarshal(w.Body.Bytes(), &receipt)
	if receipt.Status != service.SignupStatusReceived {
		t.Errorf("Unexpected receipt %+v", receipt)
	}
	if !tr.signup.Requests[0].SaveInfo {
		t.Error("Expected save_info forwarded")
	}
}

func TestSignupSubmit_Timeout(t *testing.T) {
	tr := setupTestRouter(nil)
	tr.signup.SubmitFunc = func(ctx context.Context, req *models.SignupRequest) (*models.SignupReceipt, error) {
		return nil, context.DeadlineExceeded
	}

	w := tr.do("POST", "/v1/signup", "application/json", `{"email":"fan@example.com"}`, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("GET", "/pricing/old", "", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Error("Expected HTML not-found page")
	}

	w = tr.do("GET", "/v1/unknown", "", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		t.Error("Expected JSON not-found body")
	}
}

func TestCORSPreflight(t *testing.T) {
	tr := setupTestRouter(nil)

	w := tr.do("OPTIONS", "/v1/newsletter", "", "", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}
