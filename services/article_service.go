package services

import (
	"context"

	"bank-site/internal/logger"
	"bank-site/dto"
	"bank-site/parser"
	"bank-site/repositories"
	"bank-site/sanitizer"
)

// ArticleService resolves public article pages: slug to record, sanitized
// body, thumbnail fallback. It also enumerates the published slugs the
// static generator pre-renders.
type ArticleService struct {
	repo             *repositories.ArticleRepository
	defaultThumbnail string
}

func NewArticleService(repo *repositories.ArticleRepository, defaultThumbnail string) *ArticleService {
	return &ArticleService{repo: repo, defaultThumbnail: defaultThumbnail}
}

// Resolve maps a slug to a renderable detail. (nil, nil) means no such
// article; callers render their not-found state. A sanitizer error blocks
// the render: the raw body must never reach a page as a fallback.
func (s *ArticleService) Resolve(ctx context.Context, slug string) (*dto.ArticleDetailDTO, error) {
	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	clean, err := sanitizer.Sanitize(a.Content)
	if err != nil {
		logger.ErrorWithFields("article body failed sanitization, blocking render", logger.Fields{
			"slug":      a.Slug,
			"object_id": a.ObjectID,
			"error":     err.Error(),
		})
		return nil, err
	}

	thumbnail := a.Thumbnail
	if thumbnail == "" {
		if img := parser.TopImage(a.Content); img != "" {
			thumbnail = img
		} else {
			thumbnail = s.defaultThumbnail
		}
	}

	d := &dto.ArticleDetailDTO{
		ID:        a.ObjectID,
		Title:     a.Title,
		Content:   clean,
		Thumbnail: thumbnail,
		Category:  a.Category,
		Slug:      a.Slug,
		CreatedAt: a.CreatedAt(),
	}
	if a.Updated != 0 {
		t := a.UpdatedAt()
		d.UpdatedAt = &t
	}
	return d, nil
}

// EnumerateSlugs lists the published slugs to pre-render. A repository
// failure degrades to an empty set with a warning: losing pre-rendered pages
// is recoverable, failing an entire site build over a transient fetch is not.
func (s *ArticleService) EnumerateSlugs(ctx context.Context) []string {
	refs, err := s.repo.ListSlugs(ctx)
	if err != nil {
		logger.WarnWithFields("slug enumeration failed, generating zero article pages", logger.Fields{
			"error": err.Error(),
		})
		return nil
	}

	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Slug == "" {
			continue
		}
		if _, ok := seen[ref.Slug]; ok {
			continue
		}
		seen[ref.Slug] = struct{}{}
		out = append(out, ref.Slug)
	}
	return out
}
