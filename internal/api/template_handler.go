package api

import (
	"log/slog"
	"net/http"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService service.TemplateService
	logger          *slog.Logger
}

func NewTemplateHandler(templateService service.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, logger: logger}
}

// ListTemplates godoc
// @Summary List workout templates
// @Description Newest first. q matches title or content; a leading # also matches tags.
// @Tags Templates
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {array} domain.WorkoutTemplate
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary Save a workout template
// @Tags Templates
// @Accept json
// @Produce json
// @Param template body CreateTemplateRequest true "Template"
// @Success 201 {object} domain.WorkoutTemplate
// @Failure 400 {object} gin.H "Validation error"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tpl, err := h.templateService.CreateTemplate(c.Request.Context(), req.Title, req.Content, req.Tags)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// DeleteTemplate godoc
// @Summary Delete a workout template
// @Tags Templates
// @Param id path string true "Template ID"
// @Success 204
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateContent godoc
// @Summary Draft template content with AI
// @Tags Templates
// @Accept json
// @Produce json
// @Param request body GenerateContentRequest true "Topic"
// @Success 200 {object} GeneratedContentResponse
// @Failure 400 {object} gin.H "Topic missing"
// @Failure 409 {object} gin.H "A draft is already being generated for this form"
// @Failure 502 {object} gin.H "Generation failed"
// @Router /templates/generate [post]
func (h *TemplateHandler) GenerateContent(c *gin.Context) {
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	content, err := h.templateService.GenerateContent(c.Request.Context(), req.FormKey, req.Topic)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, GeneratedContentResponse{Content: content})
}
