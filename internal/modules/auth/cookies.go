package auth

import (
	"github.com/gin-gonic/gin"

	"photoshare/internal/config"
)

// Session cookie names. The token cookies carry "Bearer <jwt>"; logged_in
// and admin_access are plain hints for the frontend and are never trusted
// server-side.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieLoggedIn     = "logged_in"
	CookieAdminAccess  = "admin_access"

	bearerPrefix = "Bearer "
)

func SetAccessCookie(c *gin.Context, cfg *config.Config, token string) {
	maxAge := int(cfg.AccessTTL.Seconds())
	c.SetCookie(CookieAccessToken, bearerPrefix+token, maxAge, cfg.CookiePath, "", cfg.CookieSecure, true)
}

func SetSessionCookies(c *gin.Context, cfg *config.Config, user *UserView, access, refresh string) {
	SetAccessCookie(c, cfg, access)

	refreshAge := int(cfg.RefreshTTL.Seconds())
	c.SetCookie(CookieRefreshToken, bearerPrefix+refresh, refreshAge, cfg.CookiePath, "", cfg.CookieSecure, true)
	c.SetCookie(CookieLoggedIn, user.Username, refreshAge, cfg.CookiePath, "", cfg.CookieSecure, false)
	if user.Staff {
		c.SetCookie(CookieAdminAccess, "true", refreshAge, cfg.CookiePath, "", cfg.CookieSecure, false)
	}
}

func ClearSessionCookies(c *gin.Context, cfg *config.Config) {
	for _, name := range []string{CookieAccessToken, CookieRefreshToken, CookieLoggedIn, CookieAdminAccess} {
		c.SetCookie(name, "", -1, cfg.CookiePath, "", cfg.CookieSecure, false)
	}
}

// UserView is the little the cookie layer needs to know about the user.
type UserView struct {
	Username string
	Staff    bool
}
