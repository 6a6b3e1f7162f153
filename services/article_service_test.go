package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-site/models"
	"bank-site/repositories"
	"bank-site/storeclient"
)

const testDefaultThumb = "https://cdn.example.com/default.jpg"

func newArticleService(t *testing.T, handler http.HandlerFunc) *ArticleService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	repo := repositories.NewArticleRepository(storeclient.New(srv.URL), 0, 0)
	return NewArticleService(repo, testDefaultThumb)
}

func TestResolveSanitizesBody(t *testing.T) {
	svc := newArticleService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Article{{
			ObjectID:  "A-1",
			Title:     "Account security",
			Content:   `<p>Use strong passwords.</p><script>document.cookie</script>`,
			Slug:      "account-security",
			Published: true,
			Created:   1700000000000,
		}})
	})

	detail, err := svc.Resolve(context.Background(), "account-security")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Contains(t, detail.Content, "<p>Use strong passwords.</p>")
	assert.NotContains(t, detail.Content, "script")
	assert.NotContains(t, detail.Content, "document.cookie")
}

func TestResolveAbsentSlugIsNotAnError(t *testing.T) {
	svc := newArticleService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Article{})
	})

	detail, err := svc.Resolve(context.Background(), "no-such-slug")
	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestResolveThumbnailFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		article   models.Article
		wantThumb string
	}{
		{
			name: "record thumbnail wins",
			article: models.Article{
				ObjectID: "A-1", Title: "t", Slug: "s", Published: true,
				Thumbnail: "https://cdn.example.com/own.jpg",
				Content:   `<p>x</p><img src="https://cdn.example.com/inline.jpg">`,
			},
			wantThumb: "https://cdn.example.com/own.jpg",
		},
		{
			name: "content image beats site default",
			article: models.Article{
				ObjectID: "A-2", Title: "t", Slug: "s", Published: true,
				Content: `<p>x</p><img src="https://cdn.example.com/inline.jpg">`,
			},
			wantThumb: "https://cdn.example.com/inline.jpg",
		},
		{
			name: "site default when nothing else",
			article: models.Article{
				ObjectID: "A-3", Title: "t", Slug: "s", Published: true,
				Content: `<p>plain text only</p>`,
			},
			wantThumb: testDefaultThumb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newArticleService(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode([]models.Article{tt.article})
			})

			detail, err := svc.Resolve(context.Background(), "s")
			require.NoError(t, err)
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantThumb, detail.Thumbnail)
		})
	}
}

func TestEnumerateSlugsDeduplicates(t *testing.T) {
	svc := newArticleService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.SlugRef{
			{Slug: "rates", ObjectID: "A-1"},
			{Slug: "", ObjectID: "A-2"},
			{Slug: "rates", ObjectID: "A-3"},
			{Slug: "loans", ObjectID: "A-4"},
		})
	})

	assert.Equal(t, []string{"rates", "loans"}, svc.EnumerateSlugs(context.Background()))
}

func TestEnumerateSlugsDegradesOnStoreFailure(t *testing.T) {
	svc := newArticleService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "store exploded"})
	})

	// A failed enumeration yields zero slugs, never a panic or an aborted
	// build.
	assert.Empty(t, svc.EnumerateSlugs(context.Background()))
}
