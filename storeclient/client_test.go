package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bank-site/models"
)

func TestListArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/articles", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Article{
			{ObjectID: "A-1", Title: "Rates", Slug: "rates", Published: true, Created: 1700000000000},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	items, err := client.ListArticles(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "A-1", items[0].ObjectID)
	assert.Equal(t, "rates", items[0].Slug)
}

func TestListSlugRefsSendsProjectionAndPublishFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "slug,objectId", q.Get("property"))
		assert.Equal(t, "publish=true", q.Get("where"))
		json.NewEncoder(w).Encode([]models.SlugRef{{Slug: "rates", ObjectID: "A-1"}})
	}))
	defer srv.Close()

	client := New(srv.URL)
	refs, err := client.ListSlugRefs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []models.SlugRef{{Slug: "rates", ObjectID: "A-1"}}, refs)
}

func TestFindBySlugEscapesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "slug='it''s-fine'", r.URL.Query().Get("where"))
		json.NewEncoder(w).Encode([]models.Article{})
	}))
	defer srv.Close()

	client := New(srv.URL)
	matches, err := client.FindBySlug(context.Background(), "it's-fine")
	assert.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCreateArticlePostsPayloadWithoutServerFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "objectId")
		assert.NotContains(t, body, "created")

		json.NewEncoder(w).Encode(models.Article{
			ObjectID:  "A-9",
			Title:     body["title"].(string),
			Content:   body["content"].(string),
			Slug:      body["slug"].(string),
			Published: true,
			Created:   1700000000000,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	created, err := client.CreateArticle(context.Background(), models.ArticlePayload{
		Title: "Savings 101", Content: "<p>Hi</p>", Slug: "savings-101", Published: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "A-9", created.ObjectID)
	assert.NotZero(t, created.Created)
}

func TestUpdateArticleKeepsIDOutOfBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/articles/A-1", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "objectId")
		assert.Equal(t, map[string]any{"title": "New"}, body)

		json.NewEncoder(w).Encode(models.Article{ObjectID: "A-1", Title: "New", Slug: "rates", Updated: 1700000001000})
	}))
	defer srv.Close()

	title := "New"
	client := New(srv.URL)
	updated, err := client.UpdateArticle(context.Background(), "A-1", models.ArticleUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "A-1", updated.ObjectID)
	assert.Equal(t, "New", updated.Title)
}

func TestDeleteArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/articles/A-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	assert.NoError(t, client.DeleteArticle(context.Background(), "A-1"))
}

func TestStoreErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "duplicate slug"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.CreateArticle(context.Background(), models.ArticlePayload{Title: "t", Content: "c", Slug: "s"})
	assert.Error(t, err)

	var se *StoreError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, "duplicate slug", se.Message)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestTransportErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := New(srv.URL)
	_, err := client.ListArticles(context.Background())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	var se *StoreError
	assert.False(t, errors.As(err, &se))
}
