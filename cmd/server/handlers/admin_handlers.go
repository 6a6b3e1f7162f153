package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bank-site/cmd/server/auth"
	"bank-site/dashboard"
	"bank-site/dto"
	"bank-site/models"
)

// LoginHandler exchanges operator credentials for an admin bearer token.
func LoginHandler(creds *auth.Credentials, jwtm *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.LoginRequestDTO
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "username and password are required"})
			return
		}

		if !creds.Match(in.Username, in.Password) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "invalid_credentials"})
			return
		}

		token, err := jwtm.Sign(in.Username, auth.RoleAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponseDTO{Token: token})
	}
}

// OpenSessionHandler opens a dashboard session, performing its single full
// article list load. A failed load still returns the session, in its error
// state, so the client can show a retry-able message.
func OpenSessionHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := mgr.Open(c.Request.Context())
		c.JSON(http.StatusCreated, sessionDTO(s))
	}
}

// GetSessionHandler returns the current snapshot of a session's list.
func GetSessionHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := mgr.Get(c.Param("sid"))
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}
		c.JSON(http.StatusOK, sessionDTO(s))
	}
}

// CloseSessionHandler drops a session. The cache is disposable; closing is
// never an error even if the session already expired.
func CloseSessionHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr.Close(c.Param("sid"))
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "session closed"})
	}
}

// CreateArticleHandler submits a new article through the session so its list
// mirror picks up the store-assigned record.
func CreateArticleHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := mgr.Get(c.Param("sid"))
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}

		var payload models.ArticlePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		created, err := s.Create(c.Request.Context(), payload)
		if err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dto.NewArticleDTO(*created))
	}
}

// UpdateArticleHandler submits a partial update for one article. The object
// id travels only in the path, never in the body.
func UpdateArticleHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := mgr.Get(c.Param("sid"))
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}

		var update models.ArticleUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		updated, err := s.Update(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewArticleDTO(*updated))
	}
}

// DeleteArticleHandler removes one article. The delete is destructive and
// has no soft-delete behind it, so the client must send confirm=true after
// prompting the operator; anything else is rejected before the store call.
func DeleteArticleHandler(mgr *dashboard.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := mgr.Get(c.Param("sid"))
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}

		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "delete requires confirm=true"})
			return
		}

		if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusForError(err), dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "article deleted"})
	}
}

func sessionDTO(s *dashboard.Session) dto.DashboardSessionDTO {
	state, errMsg, articles := s.Snapshot()
	out := dto.DashboardSessionDTO{
		SessionID: s.ID,
		State:     string(state),
		Error:     errMsg,
		Articles:  make([]dto.ArticleDTO, 0, len(articles)),
	}
	for _, a := range articles {
		out.Articles = append(out.Articles, dto.NewArticleDTO(a))
	}
	return out
}
