package staticgen

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"bank-site/internal/logger"
	"bank-site/dto"
	"bank-site/services"
)

// Generator pre-renders one HTML page per known published slug, plus the
// listing page, into an output directory ahead of serving. It uses the same
// templates the server renders on demand, so a pre-rendered page and a live
// one are byte-compatible.
type Generator struct {
	blog     *services.BlogService
	articles *services.ArticleService
	tmpl     *template.Template
	outDir   string
	page     dto.PageData
}

func New(blog *services.BlogService, articles *services.ArticleService, templatesDir, outDir string, page dto.PageData) (*Generator, error) {
	tmpl, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Generator{
		blog:     blog,
		articles: articles,
		tmpl:     tmpl,
		outDir:   outDir,
		page:     page,
	}, nil
}

// Run generates the listing page and every article page, returning how many
// article pages were written. A repository failure during enumeration
// degrades to zero article pages; a page whose body fails sanitization is
// skipped and logged; only filesystem failures abort the run.
func (g *Generator) Run(ctx context.Context) (int, error) {
	if err := g.writeListing(ctx); err != nil {
		return 0, err
	}

	slugs := g.articles.EnumerateSlugs(ctx)
	written := 0
	for _, slug := range slugs {
		ok, err := g.writeArticle(ctx, slug)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}

	logger.InfoWithFields("static generation finished", logger.Fields{
		"article_pages": written,
		"enumerated":    len(slugs),
		"out_dir":       g.outDir,
	})
	return written, nil
}

func (g *Generator) writeListing(ctx context.Context) error {
	items, err := g.blog.List(ctx, services.ListArticlesInput{})
	if err != nil {
		// Same degradation rule as slug enumeration: a transient fetch
		// failure must not abort the build.
		logger.WarnWithFields("listing fetch failed, writing empty listing page", logger.Fields{
			"error": err.Error(),
		})
		items = nil
	}
	categories, err := g.blog.Categories(ctx)
	if err != nil {
		categories = nil
	}

	return g.render(filepath.Join(g.outDir, "blog", "index.html"), "blog.html", map[string]any{
		"Page":       g.page,
		"Articles":   items,
		"Categories": categories,
		"Search":     "",
		"Category":   "",
	})
}

// writeArticle reports whether the page was written; a skip (absent record,
// sanitizer failure) is not a run-level error.
func (g *Generator) writeArticle(ctx context.Context, slug string) (bool, error) {
	detail, err := g.articles.Resolve(ctx, slug)
	if err != nil {
		logger.ErrorWithFields("skipping article page", logger.Fields{
			"slug":  slug,
			"error": err.Error(),
		})
		return false, nil
	}
	if detail == nil {
		logger.WarnWithFields("enumerated slug no longer resolves, skipping", logger.Fields{
			"slug": slug,
		})
		return false, nil
	}

	out := filepath.Join(g.outDir, "blog", slug, "index.html")
	err = g.render(out, "article.html", map[string]any{
		"Page":    g.page,
		"Article": detail,
		"Content": template.HTML(detail.Content),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *Generator) render(outPath, name string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(outPath), err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := g.tmpl.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
