package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
	logger      *slog.Logger
}

func NewPlanHandler(planService service.PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, logger: logger}
}

// GeneratePlan godoc
// @Summary Generate a weekly plan with AI
// @Description Without a configured credential the call succeeds with status "disabled" and an empty plan.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body GeneratePlanRequest false "Goal override and apply flag"
// @Success 200 {object} GenerationResponse
// @Failure 404 {object} gin.H "Student not found"
// @Failure 409 {object} gin.H "Generation already running"
// @Failure 502 {object} gin.H "Generation failed"
// @Router /students/{id}/plan/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	// An empty body means: student's own goal, preview only.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	outcome, err := h.planService.GeneratePlan(c.Request.Context(), c.Param("id"), req.Goal, req.Apply)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapOutcomeToResponse(outcome))
}

// GetView godoc
// @Summary Get the plan screen state
// @Tags Plan
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} domain.PlanView
// @Router /students/{id}/plan/view [get]
func (h *PlanHandler) GetView(c *gin.Context) {
	view, err := h.planService.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectDay godoc
// @Summary Select the weekday shown on the plan screen
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body SelectDayRequest true "Weekday"
// @Success 200 {object} domain.PlanView
// @Router /students/{id}/plan/view [put]
func (h *PlanHandler) SelectDay(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.planService.SelectDay(c.Request.Context(), c.Param("id"), req.Day)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
