package router

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"bank-site/cmd/server/auth"
	"bank-site/cmd/server/handlers"
	"bank-site/cmd/server/middleware"
	"bank-site/dashboard"
	"bank-site/dto"
	"bank-site/repositories"
	"bank-site/services"
)

// Deps bundles everything the router wires into its handlers.
type Deps struct {
	Repo         *repositories.ArticleRepository
	Blog         *services.BlogService
	Articles     *services.ArticleService
	Dashboard    *dashboard.Manager
	JWT          *auth.JWTManager
	Creds        *auth.Credentials
	Page         dto.PageData
	TemplatesDir string
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	if d.TemplatesDir != "" {
		r.LoadHTMLGlob(filepath.Join(d.TemplatesDir, "*.html"))
	}

	// Health check: one cheap (cached) read against the article store.
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if _, err := d.Repo.ListSlugs(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "article_store": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public pages
	r.GET("/blog", handlers.BlogPageHandler(d.Blog, d.Page))
	r.GET("/blog/:slug", handlers.ArticlePageHandler(d.Articles, d.Page))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/articles", handlers.ListArticlesHandler(d.Blog))
		api.GET("/articles/:slug", handlers.GetArticleHandler(d.Articles))
		api.GET("/categories", handlers.ListCategoriesHandler(d.Blog))

		admin := api.Group("/admin")
		admin.POST("/login", handlers.LoginHandler(d.Creds, d.JWT))

		guarded := admin.Group("")
		guarded.Use(middleware.AdminAuth(d.JWT))
		{
			guarded.POST("/sessions", handlers.OpenSessionHandler(d.Dashboard))
			guarded.GET("/sessions/:sid", handlers.GetSessionHandler(d.Dashboard))
			guarded.DELETE("/sessions/:sid", handlers.CloseSessionHandler(d.Dashboard))
			guarded.POST("/sessions/:sid/articles", handlers.CreateArticleHandler(d.Dashboard))
			guarded.PUT("/sessions/:sid/articles/:id", handlers.UpdateArticleHandler(d.Dashboard))
			guarded.DELETE("/sessions/:sid/articles/:id", handlers.DeleteArticleHandler(d.Dashboard))
		}
	}

	return r
}
