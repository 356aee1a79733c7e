package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the moderation surface. adminOnly gates account
// management; staffOnly opens the moderation listings to moderators too.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, adminOnly, staffOnly gin.HandlerFunc) {
	group := protected.Group("/admin")
	{
		group.GET("/users", adminOnly, h.ListUsers)
		group.PUT("/users/:id/ban", adminOnly, h.BanUser)
		group.GET("/comments", staffOnly, h.ListComments)
		group.GET("/ratings", staffOnly, h.ListRatings)
	}
}

func (h *Handler) BanUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.service.BanUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "BAN_FAILED", "Failed to ban user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) ListUsers(c *gin.Context) {
	offset, limit := pagination(c)
	users, err := h.service.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) ListComments(c *gin.Context) {
	offset, limit := pagination(c)
	comments, err := h.service.ListComments(c.Request.Context(), offset, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list comments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) ListRatings(c *gin.Context) {
	offset, limit := pagination(c)
	ratings, err := h.service.ListRatings(c.Request.Context(), offset, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list ratings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ratings": ratings})
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
