package models

import (
	"encoding/json"
	"time"
)

// Kind identifies a CMS collection by its type slug
type Kind string

const (
	KindArticle      Kind = "blog-posts"
	KindPick         Kind = "betting-picks"
	KindTestimonial  Kind = "testimonials"
	KindSettings     Kind = "site-settings"
	KindAuthor       Kind = "authors"
	KindSubscription Kind = "newsletter-subscriptions"
)

// ValidKinds defines the collections the site reads or writes
var ValidKinds = map[Kind]bool{
	KindArticle:      true,
	KindPick:         true,
	KindTestimonial:  true,
	KindSettings:     true,
	KindAuthor:       true,
	KindSubscription: true,
}

// Object status values
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Object represents a content record owned by the CMS bucket
type Object struct {
	ID         string    `json:"id" db:"id"`
	Slug       string    `json:"slug" db:"slug"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content,omitempty" db:"content"`
	Type       Kind      `json:"type" db:"type_slug"`
	Status     string    `json:"status,omitempty" db:"status"`
	Metadata   Metadata  `json:"metadata" db:"metadata"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ModifiedAt time.Time `json:"modified_at,omitempty" db:"modified_at"`
}

// UnmarshalJSON accepts both the v3 "type" key and the older "type_slug" key.
func (o *Object) UnmarshalJSON(data []byte) error {
	type plain Object
	aux := struct {
		*plain
		TypeSlug Kind `json:"type_slug"`
	}{plain: (*plain)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.Type == "" {
		o.Type = aux.TypeSlug
	}
	if o.Metadata == nil {
		o.Metadata = Metadata{}
	}
	return nil
}

// ObjectList is the envelope returned by list queries
type ObjectList struct {
	Objects []Object `json:"objects"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Skip    int      `json:"skip"`
}

// ImageRef is a media reference with a raw URL and a processable one
type ImageRef struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// Choice is a select-style field value. Value is the display label, Key the
// internal code. Title is set by some bucket schemas and wins over Value.
type Choice struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Title string `json:"title,omitempty"`
}

// Label returns the display label, or "" when the choice carries none
func (c Choice) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Value
}
