package services

import (
	"context"
	"strings"

	"bank-site/dto"
	"bank-site/models"
	"bank-site/parser"
	"bank-site/repositories"
)

const excerptMaxRunes = 200

// BlogService serves the public blog listing: published articles only,
// optionally narrowed by a search term and a category. The narrowing itself
// lives in the pure package-level filter functions below so it can be tested
// without any network stub.
type BlogService struct {
	repo             *repositories.ArticleRepository
	defaultThumbnail string
}

func NewBlogService(repo *repositories.ArticleRepository, defaultThumbnail string) *BlogService {
	return &BlogService{repo: repo, defaultThumbnail: defaultThumbnail}
}

type ListArticlesInput struct {
	Search   string
	Category string
}

// List returns published articles as listing cards, newest first.
func (s *BlogService) List(ctx context.Context, in ListArticlesInput) ([]dto.ArticleCardDTO, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	published := FilterPublished(items)
	filtered := FilterByCategory(FilterBySearch(published, in.Search), in.Category)

	out := make([]dto.ArticleCardDTO, 0, len(filtered))
	for _, a := range filtered {
		out = append(out, s.card(a))
	}
	sortCardsNewestFirst(out)
	return out, nil
}

// Categories returns the distinct non-empty categories across published
// articles, in order of first appearance.
func (s *BlogService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return CategorySet(FilterPublished(items)), nil
}

func (s *BlogService) card(a models.Article) dto.ArticleCardDTO {
	thumbnail := a.Thumbnail
	if thumbnail == "" {
		// Prefer an image the content itself carries over the site default.
		if img := parser.TopImage(a.Content); img != "" {
			thumbnail = img
		} else {
			thumbnail = s.defaultThumbnail
		}
	}
	return dto.ArticleCardDTO{
		ID:        a.ObjectID,
		Title:     a.Title,
		Excerpt:   parser.Excerpt(a.Content, excerptMaxRunes),
		Thumbnail: thumbnail,
		Category:  a.Category,
		Slug:      a.Slug,
		CreatedAt: a.CreatedAt(),
	}
}

func sortCardsNewestFirst(cards []dto.ArticleCardDTO) {
	// Insertion sort keeps the original order for equal timestamps; the
	// lists here are small.
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j].CreatedAt.After(cards[j-1].CreatedAt); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

// FilterPublished keeps only articles gated visible for the public surface.
func FilterPublished(items []models.Article) []models.Article {
	out := make([]models.Article, 0, len(items))
	for _, a := range items {
		if a.Published {
			out = append(out, a)
		}
	}
	return out
}

// FilterBySearch keeps articles whose title or content contains the term,
// case-insensitively. An empty term keeps everything.
func FilterBySearch(items []models.Article, term string) []models.Article {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]models.Article, 0, len(items))
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Content), term) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCategory keeps articles whose category matches exactly. An empty
// category keeps everything.
func FilterByCategory(items []models.Article, category string) []models.Article {
	if category == "" {
		return items
	}
	out := make([]models.Article, 0, len(items))
	for _, a := range items {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// CategorySet extracts the distinct non-empty categories in order of first
// appearance.
func CategorySet(items []models.Article) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, a := range items {
		c := strings.TrimSpace(a.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
