package photo

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

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
	photos := v1.Group("/photos")
	{
		photos.GET("", h.List)
		photos.GET("/:id", h.Get)
		photos.GET("/:id/qr", h.QRCode)
	}
}

// RegisterProtectedRoutes wires the writing endpoints. ownerOrAdmin gates
// mutation of an existing photo to its owner or an admin.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, ownerOrAdmin gin.HandlerFunc) {
	photos := protected.Group("/photos")
	{
		photos.POST("", h.Upload)
		photos.PUT("/:id", ownerOrAdmin, h.UpdateDescription)
		photos.DELETE("/:id", ownerOrAdmin, h.Delete)
		photos.PUT("/:id/tags", ownerOrAdmin, h.SetTags)
		photos.POST("/:id/resize", ownerOrAdmin, h.Resize)
		photos.POST("/:id/filter", ownerOrAdmin, h.Filter)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetInt64("user_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "Request carries no file field")
		return
	}
	defer file.Close()

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	photo, err := h.service.Upload(c.Request.Context(), userID, UploadInput{
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Description: c.PostForm("description"),
		Tags:        tags,
	})
	if err != nil {
		if errors.Is(err, ErrTooManyTags) {
			response.Error(c, http.StatusBadRequest, "TOO_MANY_TAGS", "A photo can carry at most 5 tags")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store photo")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"photo": photo})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	photo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo": photo})
}

func (h *Handler) List(c *gin.Context) {
	offset, limit := pagination(c)

	photos, err := h.service.List(c.Request.Context(), c.Query("tag"), offset, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list photos")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photos": photos})
}

func (h *Handler) UpdateDescription(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	photo, err := h.service.UpdateDescription(c.Request.Context(), id, req.Description)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo": photo})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Photo deleted"})
}

func (h *Handler) SetTags(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	photo, err := h.service.SetTags(c.Request.Context(), id, req.Tags)
	if err != nil {
		if errors.Is(err, ErrTooManyTags) {
			response.Error(c, http.StatusBadRequest, "TOO_MANY_TAGS", "A photo can carry at most 5 tags")
			return
		}
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo": photo})
}

func (h *Handler) QRCode(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	png, err := h.service.QRCode(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) Resize(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rendition, err := h.service.Resize(c.Request.Context(), id, int64(req.Width), int64(req.Height))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transformation": rendition})
}

func (h *Handler) Filter(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rendition, err := h.service.Filter(c.Request.Context(), id, req.Filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transformation": rendition})
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, ErrPhotoNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "PHOTO_ERROR", "Photo operation failed")
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
