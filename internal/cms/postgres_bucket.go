package cms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ai-picks-site/internal/database"
	"github.com/ai-picks-site/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresBucket serves the bucket contract from the objects table, for
// deployments that host their own content.
type PostgresBucket struct {
	db *database.DB
}

var _ Bucket = (*PostgresBucket)(nil)

// NewPostgresBucket creates a bucket backed by db
func NewPostgresBucket(db *database.DB) *PostgresBucket {
	return &PostgresBucket{db: db}
}

const selectObject = `
	SELECT id, type_slug, slug, title, content, status, metadata, created_at, modified_at
	FROM objects
`

// FindOne returns the published object of the given type and slug
func (b *PostgresBucket) FindOne(ctx context.Context, kind models.Kind, slug string) (*models.Object, error) {
	query := selectObject + `WHERE type_slug = $1 AND slug = $2 AND status = $3`

	obj, err := scanObject(b.db.QueryRowContext(ctx, query, kind, slug, models.StatusPublished))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	objects := []models.Object{*obj}
	if err := b.expandReferences(ctx, objects); err != nil {
		return nil, err
	}
	return &objects[0], nil
}

// Find lists published objects matching q, newest first
func (b *PostgresBucket) Find(ctx context.Context, q Query) ([]models.Object, error) {
	query := selectObject + `WHERE type_slug = $1 AND status = $2`
	args := []any{q.Type, models.StatusPublished}

	if q.Slug != "" {
		args = append(args, q.Slug)
		query += fmt.Sprintf(" AND slug = $%d", len(args))
	}
	if len(q.Filters) > 0 {
		filter, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filters: %w", err)
		}
		args = append(args, string(filter))
		query += fmt.Sprintf(" AND metadata @> $%d::jsonb", len(args))
	}

	query += " ORDER BY created_at DESC"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objects := make([]models.Object, 0)
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, *obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if q.Depth > 0 {
		if err := b.expandReferences(ctx, objects); err != nil {
			return nil, err
		}
	}
	return objects, nil
}

// InsertOne stores a new object with a generated ID
func (b *PostgresBucket) InsertOne(ctx context.Context, obj *models.Object) (*models.Object, error) {
	stored := *obj
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.Status == "" {
		stored.Status = models.StatusPublished
	}
	if stored.Metadata == nil {
		stored.Metadata = models.Metadata{}
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO objects (id, type_slug, slug, title, content, status, metadata, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, modified_at
	`
	err := b.db.QueryRowContext(ctx, query,
		stored.ID, stored.Type, stored.Slug, stored.Title, stored.Content,
		stored.Status, stored.Metadata, now,
	).Scan(&stored.CreatedAt, &stored.ModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert object: %w", err)
	}

	return &stored, nil
}

// expandReferences replaces metadata values holding another object's ID with
// that object, mirroring depth=1 on the hosted API.
func (b *PostgresBucket) expandReferences(ctx context.Context, objects []models.Object) error {
	var ids []string
	seen := make(map[string]bool)
	for _, obj := range objects {
		for _, v := range obj.Metadata {
			s, ok := v.(string)
			if !ok || seen[s] {
				continue
			}
			if _, err := uuid.Parse(s); err != nil {
				continue
			}
			seen[s] = true
			ids = append(ids, s)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := b.db.QueryContext(ctx, selectObject+`WHERE id = ANY($1) AND status = $2`,
		pq.Array(ids), models.StatusPublished)
	if err != nil {
		return fmt.Errorf("failed to expand references: %w", err)
	}
	defer rows.Close()

	referenced := make(map[string]models.Object, len(ids))
	for rows.Next() {
		ref, err := scanObject(rows)
		if err != nil {
			return err
		}
		referenced[ref.ID] = *ref
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range objects {
		for key, v := range objects[i].Metadata {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if ref, found := referenced[s]; found {
				objects[i].Metadata[key] = ref
			}
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(row rowScanner) (*models.Object, error) {
	var obj models.Object
	err := row.Scan(
		&obj.ID, &obj.Type, &obj.Slug, &obj.Title, &obj.Content,
		&obj.Status, &obj.Metadata, &obj.CreatedAt, &obj.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if obj.Metadata == nil {
		obj.Metadata = models.Metadata{}
	}
	return &obj, nil
}
