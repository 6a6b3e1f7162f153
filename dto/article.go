package dto

import (
	"time"

	"bank-site/models"
)

// ArticleDTO is the full record shape the dashboard API exchanges with its
// clients. Timestamps are converted from the store's epoch milliseconds.
type ArticleDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	Category  string     `json:"category,omitempty"`
	Published bool       `json:"published"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewArticleDTO constructs ArticleDTO from models.Article.
func NewArticleDTO(a models.Article) ArticleDTO {
	d := ArticleDTO{
		ID:        a.ObjectID,
		Title:     a.Title,
		Content:   a.Content,
		Thumbnail: a.Thumbnail,
		Category:  a.Category,
		Published: a.Published,
		Slug:      a.Slug,
		CreatedAt: a.CreatedAt(),
	}
	if a.Updated != 0 {
		t := a.UpdatedAt()
		d.UpdatedAt = &t
	}
	return d
}

// ArticleCardDTO is the reduced shape for public listing cards: no raw
// content, just a plain-text excerpt and a resolved thumbnail.
type ArticleCardDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Thumbnail string    `json:"thumbnail"`
	Category  string    `json:"category,omitempty"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleDetailDTO is the public detail shape. Content has passed the
// sanitizer; handlers and templates may inject it into the page.
type ArticleDetailDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Thumbnail string     `json:"thumbnail"`
	Category  string     `json:"category,omitempty"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
