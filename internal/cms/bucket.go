// Package cms talks to the content bucket that owns every record the site
// renders.
package cms

import (
	"context"
	"errors"
	"fmt"

	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/database"
	"github.com/ai-picks-site/internal/models"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the bucket has no record matching a query
var ErrNotFound = errors.New("cms: not found")

// APIError is a non-404 failure reported by the bucket
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cms: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("cms: request failed with status %d: %s", e.Status, e.Message)
}

// Default props requested for list queries
var DefaultProps = []string{"id", "slug", "title", "content", "type", "status", "metadata", "created_at", "modified_at"}

// Query selects objects of one collection
type Query struct {
	Type models.Kind
	Slug string
	// Filters match metadata values, keyed by field name without the
	// "metadata." prefix.
	Filters map[string]any
	Limit   int
	Props   []string
	// Depth 1 expands object references (authors) into full objects.
	Depth int
}

// Bucket is the read/write surface of the content bucket
type Bucket interface {
	// FindOne returns the object of the given type and slug, or ErrNotFound.
	FindOne(ctx context.Context, kind models.Kind, slug string) (*models.Object, error)
	// Find returns the objects matching q, newest first. Buckets may report
	// an empty match either as an empty slice or as ErrNotFound.
	Find(ctx context.Context, q Query) ([]models.Object, error)
	// InsertOne stores a new object and returns it as persisted.
	InsertOne(ctx context.Context, obj *models.Object) (*models.Object, error)
}

// New returns the bucket selected by cfg.Driver. db is only used by the
// postgres driver and may be nil otherwise.
func New(cfg config.CMSConfig, db *database.DB, log zerolog.Logger) (Bucket, error) {
	switch cfg.Driver {
	case config.DriverCosmic:
		return NewCosmicBucket(cfg, log), nil
	case config.DriverPostgres:
		if db == nil {
			return nil, errors.New("cms: postgres driver requires a database connection")
		}
		return NewPostgresBucket(db), nil
	}
	return nil, fmt.Errorf("cms: unknown driver %q", cfg.Driver)
}
