package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"bank-site/httpclient"
	"bank-site/models"
)

// Client is a thin client for the remote article store's REST collection API.
//
// - It is the only component that issues HTTP calls against the store.
// - It knows nothing about rendering, sessions or auth; it moves article
//   records and translates HTTP failures into typed errors.
//
// baseURL example: https://focusedburst-us.backendless.app/api/data
type Client struct {
	base  *httpclient.BaseClient
	table string
}

const articlesTable = "articles"

// ErrTransport marks failures where no HTTP response was received at all
// (connection refused, DNS failure, timeout). Store-side rejections carry a
// *StoreError instead.
var ErrTransport = errors.New("article store unreachable")

// StoreError is a non-2xx response from the article store, carrying the
// status code and the store's own message when the error body was parseable.
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("article store: status=%d", e.Status)
	}
	return fmt.Sprintf("article store: status=%d message=%s", e.Status, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		base:  httpclient.NewBaseClient(baseURL),
		table: articlesTable,
	}
}

// NewWithHTTPClient builds a client around an existing http.Client, used by
// tests and by binaries that want a non-default timeout.
func NewWithHTTPClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		base:  httpclient.NewBaseClientWithClient(hc, baseURL),
		table: articlesTable,
	}
}

// ListArticles fetches every article record, unfiltered.
func (c *Client) ListArticles(ctx context.Context) ([]models.Article, error) {
	var out []models.Article
	if err := c.do(ctx, http.MethodGet, "", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

// ListSlugRefs fetches the slug+objectId projection used for static path
// enumeration. Unpublished records never become public routes, so the
// filter is applied store-side together with the projection.
func (c *Client) ListSlugRefs(ctx context.Context) ([]models.SlugRef, error) {
	q := url.Values{}
	q.Set("property", "slug,objectId")
	q.Set("where", "publish=true")

	var out []models.SlugRef
	if err := c.do(ctx, http.MethodGet, "", q, nil, &out); err != nil {
		return nil, fmt.Errorf("list slug refs: %w", err)
	}
	return out, nil
}

// FindBySlug issues an equality filter query on slug. Zero matches is a
// normal result (empty slice), not an error.
func (c *Client) FindBySlug(ctx context.Context, slug string) ([]models.Article, error) {
	q := url.Values{}
	// Single quotes inside the where clause would break out of the string
	// literal; the store uses SQL-style doubling to escape them.
	escaped := strings.ReplaceAll(slug, "'", "''")
	q.Set("where", fmt.Sprintf("slug='%s'", escaped))

	var out []models.Article
	if err := c.do(ctx, http.MethodGet, "", q, nil, &out); err != nil {
		return nil, fmt.Errorf("find by slug %q: %w", slug, err)
	}
	return out, nil
}

// CreateArticle posts an article payload (no server-assigned fields) and
// returns the full record the store created.
func (c *Client) CreateArticle(ctx context.Context, payload models.ArticlePayload) (*models.Article, error) {
	var out models.Article
	if err := c.do(ctx, http.MethodPost, "", nil, payload, &out); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return &out, nil
}

// UpdateArticle puts a partial field set to the record identified by id and
// returns the full updated record. The id travels only in the path.
func (c *Client) UpdateArticle(ctx context.Context, objectID string, update models.ArticleUpdate) (*models.Article, error) {
	if objectID == "" {
		return nil, errors.New("update article: objectId is required")
	}
	var out models.Article
	if err := c.do(ctx, http.MethodPut, objectID, nil, update, &out); err != nil {
		return nil, fmt.Errorf("update article %s: %w", objectID, err)
	}
	return &out, nil
}

// DeleteArticle removes the record identified by id. The store returns no
// body on success.
func (c *Client) DeleteArticle(ctx context.Context, objectID string) error {
	if objectID == "" {
		return errors.New("delete article: objectId is required")
	}
	if err := c.do(ctx, http.MethodDelete, objectID, nil, nil, nil); err != nil {
		return fmt.Errorf("delete article %s: %w", objectID, err)
	}
	return nil
}

// do runs one round-trip against the articles table. relID is appended to the
// table path when set. A non-nil body is JSON-encoded; a non-nil result is
// JSON-decoded from the response.
func (c *Client) do(ctx context.Context, method, relID string, query url.Values, body any, result any) error {
	relPath := c.table
	if relID != "" {
		relPath = path.Join(c.table, relID)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, query, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStoreError(resp)
	}

	if result == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newStoreError reads a non-2xx response and extracts the optional message
// field from the store's JSON error body.
func newStoreError(resp *http.Response) error {
	se := &StoreError{Status: resp.StatusCode}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err == nil && len(b) > 0 {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &body) == nil && body.Message != "" {
			se.Message = body.Message
		} else {
			se.Message = strings.TrimSpace(string(b))
		}
	}
	return se
}
