package dto

// LoginRequestDTO is the dashboard login body.
type LoginRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponseDTO carries the issued bearer token.
type LoginResponseDTO struct {
	Token string `json:"token"`
}

// DashboardSessionDTO is a snapshot of one dashboard session: its lifecycle
// state and the current article list mirror.
type DashboardSessionDTO struct {
	SessionID string       `json:"session_id"`
	State     string       `json:"state"`
	Error     string       `json:"error,omitempty"`
	Articles  []ArticleDTO `json:"articles"`
}
