package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/models"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 4 << 10

// CosmicBucket reads and writes objects through the Cosmic REST API
type CosmicBucket struct {
	baseURL    string
	bucketSlug string
	readKey    string
	writeKey   string
	client     *http.Client
	log        zerolog.Logger
}

var _ Bucket = (*CosmicBucket)(nil)

// NewCosmicBucket creates a bucket client from configuration
func NewCosmicBucket(cfg config.CMSConfig, log zerolog.Logger) *CosmicBucket {
	return &CosmicBucket{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		bucketSlug: cfg.BucketSlug,
		readKey:    cfg.ReadKey,
		writeKey:   cfg.WriteKey,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.With().Str("component", "cosmic").Str("bucket", cfg.BucketSlug).Logger(),
	}
}

// FindOne returns the published object of the given type and slug
func (b *CosmicBucket) FindOne(ctx context.Context, kind models.Kind, slug string) (*models.Object, error) {
	objects, err := b.Find(ctx, Query{Type: kind, Slug: slug, Limit: 1, Depth: 1})
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, ErrNotFound
	}
	return &objects[0], nil
}

// Find lists objects matching q
func (b *CosmicBucket) Find(ctx context.Context, q Query) ([]models.Object, error) {
	filter := map[string]any{"type": q.Type}
	if q.Slug != "" {
		filter["slug"] = q.Slug
	}
	for key, value := range q.Filters {
		filter["metadata."+key] = value
	}

	rawFilter, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	props := q.Props
	if len(props) == 0 {
		props = DefaultProps
	}

	params := url.Values{}
	params.Set("query", string(rawFilter))
	params.Set("read_key", b.readKey)
	params.Set("props", strings.Join(props, ","))
	params.Set("sort", "-created_at")
	if q.Depth > 0 {
		params.Set("depth", strconv.Itoa(q.Depth))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var list models.ObjectList
	if err := b.do(ctx, http.MethodGet, b.objectsURL()+"?"+params.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list.Objects, nil
}

// InsertOne creates an object with the bucket's write key
func (b *CosmicBucket) InsertOne(ctx context.Context, obj *models.Object) (*models.Object, error) {
	if b.writeKey == "" {
		return nil, errors.New("cms: write key not configured")
	}

	payload := map[string]any{
		"type":     obj.Type,
		"title":    obj.Title,
		"slug":     obj.Slug,
		"metadata": obj.Metadata,
	}
	if obj.Content != "" {
		payload["content"] = obj.Content
	}
	if obj.Status != "" {
		payload["status"] = obj.Status
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}

	var resp struct {
		Object models.Object `json:"object"`
	}
	if err := b.do(ctx, http.MethodPost, b.objectsURL(), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Object, nil
}

func (b *CosmicBucket) objectsURL() string {
	return fmt.Sprintf("%s/buckets/%s/objects", b.baseURL, url.PathEscape(b.bucketSlug))
}

func (b *CosmicBucket) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+b.writeKey)
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	b.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("CMS request completed")

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode cms response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		message = payload.Message
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}
