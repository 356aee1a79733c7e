package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"photoshare/internal/domain"
)

func gateRouter(user *domain.User, gate gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("role", string(user.Role))
		}
		c.Next()
	})
	router.DELETE("/things/:id", gate, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRoles_AllowsListedRole(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	router := gateRouter(admin, RequireRoles(domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_RejectsOtherRoles(t *testing.T) {
	user := &domain.User{ID: 2, Role: domain.RoleUser}
	router := gateRouter(user, RequireRoles(domain.RoleModerator, domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireRoles_NoResolvedUser(t *testing.T) {
	router := gateRouter(nil, RequireRoles(domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOwnerOrRoles_OwnerPasses(t *testing.T) {
	owner := &domain.User{ID: 7, Role: domain.RoleUser}
	lookup := func(_ context.Context, id int64) (int64, error) { return 7, nil }
	router := gateRouter(owner, RequireOwnerOrRoles(lookup, "id", domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOwnerOrRoles_ListedRoleSkipsLookup(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	lookup := func(_ context.Context, id int64) (int64, error) {
		panic("lookup must not run for an allowed role")
	}
	router := gateRouter(admin, RequireOwnerOrRoles(lookup, "id", domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOwnerOrRoles_StrangerForbidden(t *testing.T) {
	stranger := &domain.User{ID: 2, Role: domain.RoleUser}
	lookup := func(_ context.Context, id int64) (int64, error) { return 7, nil }
	router := gateRouter(stranger, RequireOwnerOrRoles(lookup, "id", domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireOwnerOrRoles_MissingResource(t *testing.T) {
	user := &domain.User{ID: 2, Role: domain.RoleUser}
	lookup := func(_ context.Context, id int64) (int64, error) {
		return 0, errors.New("not found")
	}
	router := gateRouter(user, RequireOwnerOrRoles(lookup, "id", domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/5", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireOwnerOrRoles_BadID(t *testing.T) {
	user := &domain.User{ID: 2, Role: domain.RoleUser}
	lookup := func(_ context.Context, id int64) (int64, error) { return 2, nil }
	router := gateRouter(user, RequireOwnerOrRoles(lookup, "id", domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/things/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
