package repositories

import (
	"context"
	"sync"
	"time"

	"bank-site/internal/logger"
	"bank-site/models"
	"bank-site/storeclient"
)

// ArticleRepository exposes typed CRUD and query operations over the remote
// article store. Reads on the public path go through short-lived caches that
// bound staleness; correctness never depends on a cache hit, and every
// mutation drops both caches.
type ArticleRepository struct {
	client *storeclient.Client

	listTTL time.Duration
	slugTTL time.Duration

	mu          sync.Mutex
	listCache   []models.Article
	listFetched time.Time
	slugCache   []models.SlugRef
	slugFetched time.Time
}

func NewArticleRepository(client *storeclient.Client, listTTL, slugTTL time.Duration) *ArticleRepository {
	return &ArticleRepository{
		client:  client,
		listTTL: listTTL,
		slugTTL: slugTTL,
	}
}

// ListAll returns every article record. Results may be up to listTTL stale.
// Callers get their own copy; the cached slice is never shared, so one
// caller mutating its result cannot corrupt another's.
func (r *ArticleRepository) ListAll(ctx context.Context) ([]models.Article, error) {
	r.mu.Lock()
	if r.listCache != nil && time.Since(r.listFetched) < r.listTTL {
		cached := copyArticles(r.listCache)
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	items, err := r.client.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.listCache = items
	r.listFetched = time.Now()
	r.mu.Unlock()
	return copyArticles(items), nil
}

// ListSlugs returns the slug+objectId projection for static path generation.
// This path tolerates much older data, so it uses the longer slugTTL.
func (r *ArticleRepository) ListSlugs(ctx context.Context) ([]models.SlugRef, error) {
	r.mu.Lock()
	if r.slugCache != nil && time.Since(r.slugFetched) < r.slugTTL {
		cached := copySlugRefs(r.slugCache)
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	refs, err := r.client.ListSlugRefs(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.slugCache = refs
	r.slugFetched = time.Now()
	r.mu.Unlock()
	return copySlugRefs(refs), nil
}

func copyArticles(items []models.Article) []models.Article {
	out := make([]models.Article, len(items))
	copy(out, items)
	return out
}

func copySlugRefs(refs []models.SlugRef) []models.SlugRef {
	out := make([]models.SlugRef, len(refs))
	copy(out, refs)
	return out
}

// GetBySlug resolves a slug to one article. Zero matches returns (nil, nil):
// absence is a normal result, not an error. The store does not enforce slug
// uniqueness, so more than one match is tolerated by picking the first and
// logging the condition.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	matches, err := r.client.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		logger.WarnWithFields("duplicate slug in article store", logger.Fields{
			"slug":    slug,
			"matches": len(matches),
		})
	}
	return &matches[0], nil
}

// Create validates the payload locally, posts it and returns the record the
// store assigned an objectId and created timestamp to.
func (r *ArticleRepository) Create(ctx context.Context, payload models.ArticlePayload) (*models.Article, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	created, err := r.client.CreateArticle(ctx, payload)
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return created, nil
}

// Update sends a partial field set for the record identified by objectID and
// returns the full updated record.
func (r *ArticleRepository) Update(ctx context.Context, objectID string, update models.ArticleUpdate) (*models.Article, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	updated, err := r.client.UpdateArticle(ctx, objectID, update)
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return updated, nil
}

// Remove deletes the record identified by objectID. Destructive and not
// reversible; callers confirm with the operator before calling.
func (r *ArticleRepository) Remove(ctx context.Context, objectID string) error {
	if err := r.client.DeleteArticle(ctx, objectID); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func (r *ArticleRepository) invalidate() {
	r.mu.Lock()
	r.listCache = nil
	r.slugCache = nil
	r.mu.Unlock()
}
