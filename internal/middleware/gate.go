package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/internal/domain"
	"photoshare/internal/pkg/response"
)

// Capability decides whether the resolved user may proceed with the
// request. Gates built on it reply 403 without touching session cookies:
// the caller is known, just not allowed.
type Capability func(c *gin.Context, u *domain.User) (bool, error)

// Require wraps a capability predicate into a gin middleware.
func Require(allowed Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Not authenticated")
			c.Abort()
			return
		}

		ok, err := allowed(c, user)
		if err != nil {
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not permitted")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles passes users whose role is in the allow list.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return Require(func(_ *gin.Context, u *domain.User) (bool, error) {
		return roleIn(u.Role, roles), nil
	})
}

// OwnerLookup resolves the owner of the resource addressed by id.
type OwnerLookup func(ctx context.Context, id int64) (ownerID int64, err error)

// RequireOwnerOrRoles passes the resource owner and any user holding one
// of the listed roles. The resource id is read from the named URL param;
// a failed lookup replies 404 so gated routes don't leak existence.
func RequireOwnerOrRoles(lookup OwnerLookup, param string, roles ...domain.UserRole) gin.HandlerFunc {
	return Require(func(c *gin.Context, u *domain.User) (bool, error) {
		if roleIn(u.Role, roles) {
			return true, nil
		}

		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
			return false, err
		}

		ownerID, err := lookup(c.Request.Context(), id)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return false, err
		}
		return ownerID == u.ID, nil
	})
}

func roleIn(role domain.UserRole, roles []domain.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
