package mocks

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/models"
	"github.com/google/uuid"
)

// MockBucket is an in-memory implementation of cms.Bucket
type MockBucket struct {
	mu       sync.Mutex
	Objects  []models.Object
	Inserted []models.Object
	Queries  []cms.Query

	// EmptyAsNotFound reports empty list results as cms.ErrNotFound, the way
	// the hosted API does.
	EmptyAsNotFound bool
	FindError       error
	InsertError     error
}

// Verify interface compliance
var _ cms.Bucket = (*MockBucket)(nil)

func NewMockBucket(objects ...models.Object) *MockBucket {
	return &MockBucket{Objects: objects}
}

func (m *MockBucket) FindOne(ctx context.Context, kind models.Kind, slug string) (*models.Object, error) {
	objects, err := m.Find(ctx, cms.Query{Type: kind, Slug: slug, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, cms.ErrNotFound
	}
	return &objects[0], nil
}

func (m *MockBucket) Find(ctx context.Context, q cms.Query) ([]models.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, q)
	if m.FindError != nil {
		return nil, m.FindError
	}

	matched := make([]models.Object, 0)
	for _, obj := range m.Objects {
		if obj.Type != q.Type {
			continue
		}
		if q.Slug != "" && obj.Slug != q.Slug {
			continue
		}
		if !matchesFilters(obj.Metadata, q.Filters) {
			continue
		}
		matched = append(matched, obj)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	if len(matched) == 0 && m.EmptyAsNotFound {
		return nil, cms.ErrNotFound
	}
	return matched, nil
}

func (m *MockBucket) InsertOne(ctx context.Context, obj *models.Object) (*models.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return nil, m.InsertError
	}
	stored := *obj
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	m.Inserted = append(m.Inserted, stored)
	m.Objects = append(m.Objects, stored)
	return &stored, nil
}

func matchesFilters(meta models.Metadata, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := meta.Get(key)
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
