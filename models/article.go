package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Article is a blog content record as stored in the remote article store.
// JSON field names follow the store's schema: the store assigns ObjectID and
// the Created/Updated epoch-millisecond timestamps, clients never do.
type Article struct {
	ObjectID  string `json:"objectId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Category  string `json:"category,omitempty"`
	Published bool   `json:"publish"`
	Slug      string `json:"slug"`
	Created   int64  `json:"created,omitempty"`
	Updated   int64  `json:"updated,omitempty"`
}

// CreatedAt converts the store's epoch-millisecond create timestamp.
func (a Article) CreatedAt() time.Time {
	return time.UnixMilli(a.Created)
}

// UpdatedAt converts the store's epoch-millisecond update timestamp.
// The zero time means the record was never updated.
func (a Article) UpdatedAt() time.Time {
	if a.Updated == 0 {
		return time.Time{}
	}
	return time.UnixMilli(a.Updated)
}

// SlugRef is the reduced projection used for static path enumeration.
type SlugRef struct {
	Slug     string `json:"slug"`
	ObjectID string `json:"objectId"`
}

// ArticlePayload carries the editor-supplied fields of an article, i.e. an
// Article minus every server-assigned field. Used verbatim as a create body.
type ArticlePayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Category  string `json:"category,omitempty"`
	Published bool   `json:"publish"`
	Slug      string `json:"slug"`
}

// ArticleUpdate is a partial set of mutable fields for an update. Nil fields
// are left out of the request body so the store keeps their current values.
// The object id is never part of the body; it travels as a path parameter.
type ArticleUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Category  *string `json:"category,omitempty"`
	Published *bool   `json:"publish,omitempty"`
	Slug      *string `json:"slug,omitempty"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrSlugRequired    = errors.New("slug is required")
	ErrSlugInvalid     = errors.New("slug must contain only lowercase letters, digits and hyphens")
)

// Validate checks the payload locally before any network call is made.
func (p ArticlePayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentRequired
	}
	if strings.TrimSpace(p.Slug) == "" {
		return ErrSlugRequired
	}
	if !slugPattern.MatchString(p.Slug) {
		return ErrSlugInvalid
	}
	return nil
}

// Validate rejects an update that would blank a required field or break the
// slug format. Nil fields are untouched on the server and pass.
func (u ArticleUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return ErrTitleRequired
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return ErrContentRequired
	}
	if u.Slug != nil {
		if strings.TrimSpace(*u.Slug) == "" {
			return ErrSlugRequired
		}
		if !slugPattern.MatchString(*u.Slug) {
			return ErrSlugInvalid
		}
	}
	return nil
}
