package staticgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-site/dto"
	"bank-site/models"
	"bank-site/repositories"
	"bank-site/services"
	"bank-site/storeclient"
)

const templatesDir = "../templates"

// articleStoreHandler answers the three read shapes the generator exercises:
// the full list, the slug projection and the slug equality lookup.
func articleStoreHandler(articles []models.Article) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("property") != "" {
			refs := make([]models.SlugRef, 0, len(articles))
			for _, a := range articles {
				if a.Published {
					refs = append(refs, models.SlugRef{Slug: a.Slug, ObjectID: a.ObjectID})
				}
			}
			json.NewEncoder(w).Encode(refs)
			return
		}

		if where := q.Get("where"); strings.HasPrefix(where, "slug='") {
			slug := strings.TrimSuffix(strings.TrimPrefix(where, "slug='"), "'")
			matches := make([]models.Article, 0, 1)
			for _, a := range articles {
				if a.Slug == slug {
					matches = append(matches, a)
				}
			}
			json.NewEncoder(w).Encode(matches)
			return
		}

		json.NewEncoder(w).Encode(articles)
	}
}

func newGenerator(t *testing.T, handler http.HandlerFunc, outDir string) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo := repositories.NewArticleRepository(storeclient.New(srv.URL), 0, 0)
	blog := services.NewBlogService(repo, "https://cdn.example.com/default.jpg")
	articles := services.NewArticleService(repo, "https://cdn.example.com/default.jpg")

	g, err := New(blog, articles, templatesDir, outDir, dto.PageData{SiteName: "Meridian Bank"})
	require.NoError(t, err)
	return g
}

func TestRunWritesListingAndPublishedArticlePages(t *testing.T) {
	articles := []models.Article{
		{
			ObjectID: "A-1", Title: "Fixed deposit rates", Slug: "fixed-deposit-rates",
			Published: true, Created: 1700000000000,
			Content: `<p>Rates are up this quarter.</p><script>alert(1)</script>`,
		},
		{
			ObjectID: "A-2", Title: "New mobile app", Slug: "new-mobile-app",
			Published: true, Created: 1700000100000,
			Content: `<p>The app ships next month.</p>`,
		},
		{
			ObjectID: "A-3", Title: "Internal memo", Slug: "internal-memo",
			Published: false, Created: 1700000200000,
			Content: `<p>Not for the public site.</p>`,
		},
	}

	outDir := t.TempDir()
	g := newGenerator(t, articleStoreHandler(articles), outDir)

	written, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	listing, err := os.ReadFile(filepath.Join(outDir, "blog", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(listing), "Fixed deposit rates")
	assert.Contains(t, string(listing), "New mobile app")
	assert.NotContains(t, string(listing), "Internal memo")

	page, err := os.ReadFile(filepath.Join(outDir, "blog", "fixed-deposit-rates", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Rates are up this quarter.")
	assert.NotContains(t, string(page), "alert(1)")

	_, err = os.Stat(filepath.Join(outDir, "blog", "internal-memo", "index.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunDegradesToEmptyListingOnStoreFailure(t *testing.T) {
	outDir := t.TempDir()
	g := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "store offline"})
	}, outDir)

	written, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, written)

	// The listing page still exists so the site has a valid, if empty, blog
	// index.
	_, err = os.Stat(filepath.Join(outDir, "blog", "index.html"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(outDir, "blog"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "no article directories expected, found %s", e.Name())
	}
}

func TestRunSkipsSlugsThatNoLongerResolve(t *testing.T) {
	// The projection enumerates a slug whose record vanished before the
	// detail fetch. The page is skipped, the run continues.
	handler := func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("property") != "" {
			json.NewEncoder(w).Encode([]models.SlugRef{
				{Slug: "ghost", ObjectID: "A-9"},
				{Slug: "alive", ObjectID: "A-1"},
			})
			return
		}
		if strings.HasPrefix(q.Get("where"), "slug='alive'") {
			json.NewEncoder(w).Encode([]models.Article{{
				ObjectID: "A-1", Title: "Still here", Slug: "alive",
				Published: true, Content: "<p>ok</p>", Created: 1,
			}})
			return
		}
		json.NewEncoder(w).Encode([]models.Article{})
	}

	outDir := t.TempDir()
	g := newGenerator(t, handler, outDir)

	written, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	_, err = os.Stat(filepath.Join(outDir, "blog", "alive", "index.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "blog", "ghost", "index.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewRejectsMissingTemplates(t *testing.T) {
	_, err := New(nil, nil, filepath.Join(t.TempDir(), "nope"), t.TempDir(), dto.PageData{})
	assert.Error(t, err)
}
