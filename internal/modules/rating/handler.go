package rating

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
	v1.GET("/photos/:id/rating", h.Average)
}

// RegisterProtectedRoutes wires voting and moderation. staffOnly restricts
// rating removal to moderators and admins.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, staffOnly gin.HandlerFunc) {
	protected.POST("/photos/:id/rate", h.Rate)
	protected.DELETE("/ratings/:id", staffOnly, h.Delete)
}

func (h *Handler) Rate(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be an integer between 1 and 5")
		return
	}

	created, err := h.service.Rate(c.Request.Context(), c.GetInt64("user_id"), photoID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		case errors.Is(err, ErrOwnPhoto):
			response.Error(c, http.StatusForbidden, "OWN_PHOTO", "You cannot rate your own photo")
		case errors.Is(err, ErrAlreadyRated):
			response.Error(c, http.StatusForbidden, "ALREADY_RATED", "You have already rated this photo")
		case errors.Is(err, ErrValueOutOfRange):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be an integer between 1 and 5")
		default:
			response.Error(c, http.StatusInternalServerError, "RATE_FAILED", "Failed to record rating")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rating": created})
}

func (h *Handler) Average(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	avg, err := h.service.Average(c.Request.Context(), photoID)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RATING_FAILED", "Failed to compute rating")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo_id": photoID, "average_rating": avg})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rating ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Rating not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete rating")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Rating deleted"})
}
