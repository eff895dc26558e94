package api

import (
	"log/slog"
	"net/http"

	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService service.VideoService
	logger       *slog.Logger
}

func NewVideoHandler(videoService service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{videoService: videoService, logger: logger}
}

// RequestUpload godoc
// @Summary Get a presigned upload URL for an exercise demo video
// @Description The exercise's videoUrl is pointed at the new object. Upload the file with PUT to uploadUrl.
// @Tags Videos
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param exerciseId path string true "Exercise ID"
// @Param request body VideoUploadRequest true "Video content type"
// @Success 200 {object} service.VideoUpload
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 404 {object} gin.H "Student or exercise not found"
// @Failure 503 {object} gin.H "Video storage not configured"
// @Router /students/{id}/exercises/{exerciseId}/video [post]
func (h *VideoHandler) RequestUpload(c *gin.Context) {
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.videoService.RequestUpload(c.Request.Context(), c.Param("id"), c.Param("exerciseId"), req.ContentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// GetVideoURL godoc
// @Summary Get a viewing URL for an exercise demo video
// @Tags Videos
// @Produce json
// @Param id path string true "Student ID"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} VideoURLResponse
// @Router /students/{id}/exercises/{exerciseId}/video [get]
func (h *VideoHandler) GetVideoURL(c *gin.Context) {
	url, err := h.videoService.ViewURL(c.Request.Context(), c.Param("id"), c.Param("exerciseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, VideoURLResponse{URL: url})
}
