package auth

import "photoshare/internal/domain"

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is what login hands back: both tokens travel in cookies and in
// the response body for non-browser clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	LastLogin    string `json:"last_login,omitempty"`
	RegisteredAt string `json:"registered_at"`
	PhotosCount  *int64 `json:"photos_count,omitempty"`
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		RegisteredAt: u.RegisteredAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.LastLogin != nil {
		resp.LastLogin = u.LastLogin.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
