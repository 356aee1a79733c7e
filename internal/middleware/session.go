package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoshare/internal/config"
	"photoshare/internal/domain"
	"photoshare/internal/modules/auth"
	"photoshare/internal/pkg/response"
)

// SessionResolver authenticates a request from its access and refresh
// credentials. A non-empty second return value is a replacement access
// token that should be handed back to the client.
type SessionResolver interface {
	Resolve(ctx context.Context, access, refresh string) (*domain.User, string, error)
}

// Session resolves the caller's identity from the access_token cookie (or
// Authorization header) and the refresh_token cookie. On success it stores
// the user in the context; on any authentication failure it clears the
// session cookies and replies 401 with a WWW-Authenticate challenge.
func Session(resolver SessionResolver, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := credentialFromRequest(c)
		refresh, _ := c.Cookie(auth.CookieRefreshToken)

		user, newAccess, err := resolver.Resolve(c.Request.Context(), access, refresh)
		if err != nil {
			// a repository failure says nothing about the credentials, so
			// the cookies stay put and the client gets a plain 500
			if !isAuthFailure(err) {
				log.Printf("session resolve_failed err=%v", err)
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not resolve session")
				c.Abort()
				return
			}

			auth.ClearSessionCookies(c, cfg)
			c.Header("WWW-Authenticate", "Bearer")
			switch {
			case errors.Is(err, auth.ErrBothTokensRevoked):
				response.Error(c, http.StatusUnauthorized, "TOKENS_REVOKED", "Both access and refresh tokens are blacklisted")
			case errors.Is(err, auth.ErrInvalidCredentials):
				response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Could not validate credentials")
			default:
				response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Not authenticated")
			}
			c.Abort()
			return
		}

		if newAccess != "" {
			auth.SetAccessCookie(c, cfg, newAccess)
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrUnauthenticated) ||
		errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, auth.ErrBothTokensRevoked)
}

// credentialFromRequest prefers the access_token cookie and falls back to
// the Authorization header, so both browser and API clients work.
func credentialFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(auth.CookieAccessToken); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return h
	}
	return ""
}

// CurrentUser returns the user stored by Session. It is nil only when the
// middleware did not run on the route.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
