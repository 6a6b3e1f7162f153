package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"bank-site/dto"
	"bank-site/services"
)

// ListArticlesHandler serves the public listing as JSON. Only published
// articles appear; search and category narrow the result client-compatibly
// (case-insensitive substring search over title+content, exact category).
func ListArticlesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.ListArticlesInput{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		}

		items, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// ListCategoriesHandler serves the distinct categories of published articles.
func ListCategoriesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if categories == nil {
			categories = []string{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetArticleHandler serves one article by slug as JSON. Absence is a plain
// 404, never a 5xx: "no such slug" is a normal outcome.
func GetArticleHandler(svc *services.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.Resolve(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if detail == nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// BlogPageHandler renders the public listing page.
func BlogPageHandler(svc *services.BlogService, page dto.PageData) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.ListArticlesInput{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		}

		items, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.HTML(statusForError(err), "error.html", gin.H{
				"Page": page,
			})
			return
		}
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			categories = nil
		}

		c.HTML(http.StatusOK, "blog.html", gin.H{
			"Page":       page,
			"Articles":   items,
			"Categories": categories,
			"Search":     in.Search,
			"Category":   in.Category,
		})
	}
}

// ArticlePageHandler renders one article page by slug. An unknown slug gets
// the not-found page with a link back to the listing; a sanitizer failure
// blocks the body and renders the error page instead.
func ArticlePageHandler(svc *services.ArticleService, page dto.PageData) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.Resolve(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.HTML(statusForError(err), "error.html", gin.H{
				"Page": page,
			})
			return
		}
		if detail == nil {
			c.HTML(http.StatusNotFound, "article_not_found.html", gin.H{
				"Page": page,
				"Slug": c.Param("slug"),
			})
			return
		}

		c.HTML(http.StatusOK, "article.html", gin.H{
			"Page":    page,
			"Article": detail,
			// Already sanitized; mark it so the template engine injects it
			// instead of escaping it.
			"Content": template.HTML(detail.Content),
		})
	}
}
