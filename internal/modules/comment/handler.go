package comment

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/photos/:id/comments", h.ListByPhoto)
}

// RegisterProtectedRoutes wires the writing endpoints. ownerOnly restricts
// edits to the author; ownerOrStaff additionally lets moderators and admins
// delete.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, ownerOnly, ownerOrStaff gin.HandlerFunc) {
	protected.POST("/photos/:id/comments", h.Create)
	protected.PUT("/comments/:id", ownerOnly, h.Update)
	protected.DELETE("/comments/:id", ownerOrStaff, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), photoID, req.Content)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "COMMENT_FAILED", "Failed to create comment")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"comment": created})
}

func (h *Handler) ListByPhoto(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	comments, err := h.service.ListByPhoto(c.Request.Context(), photoID)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list comments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update comment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comment": updated})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete comment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}
