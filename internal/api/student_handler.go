package api

import (
	"log/slog"
	"net/http"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService service.StudentService
	planService    service.PlanService
	logger         *slog.Logger
}

func NewStudentHandler(studentService service.StudentService, planService service.PlanService, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		planService:    planService,
		logger:         logger,
	}
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {array} StudentResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.ListStudents(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentsToResponse(students))
}

// CreateStudent godoc
// @Summary Register a student
// @Description Age is computed from the birth date; at least one schedule day is required.
// @Tags Students
// @Accept json
// @Produce json
// @Param student body domain.NewStudentInput true "Student form"
// @Success 201 {object} StudentResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req domain.NewStudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, MapStudentToResponse(student))
}

// GetStudent godoc
// @Summary Get a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} StudentResponse
// @Failure 404 {object} gin.H "Student not found"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}

// UpdateProfile godoc
// @Summary Update a student's profile
// @Description Plan, schedule and age are kept. An identical profile is not written.
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param profile body domain.StudentProfile true "Profile"
// @Success 200 {object} ProfileUpdateResponse
// @Failure 400 {object} gin.H "Validation error"
// @Failure 404 {object} gin.H "Student not found"
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var req domain.StudentProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, changed, err := h.studentService.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ProfileUpdateResponse{Student: MapStudentToResponse(student), Changed: changed})
}

// UpdateStatus godoc
// @Summary Activate or deactivate a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} StudentResponse
// @Router /students/{id}/status [put]
func (h *StudentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := h.studentService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}

// DeleteStudent godoc
// @Summary Remove a student
// @Description Unknown ids are accepted.
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	if err := h.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.planService.Forget(id)
	c.Status(http.StatusNoContent)
}

// ToggleScheduleDay godoc
// @Summary Add or remove a training day
// @Tags Schedule
// @Produce json
// @Param id path string true "Student ID"
// @Param day path string true "Weekday, English or Portuguese"
// @Success 200 {object} StudentResponse
// @Router /students/{id}/schedule/days/{day}/toggle [post]
func (h *StudentHandler) ToggleScheduleDay(c *gin.Context) {
	student, err := h.studentService.ToggleScheduleDay(c.Request.Context(), c.Param("id"), c.Param("day"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}

// SetScheduleTime godoc
// @Summary Set the usual training time
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param time body ScheduleTimeRequest true "HH:MM"
// @Success 200 {object} StudentResponse
// @Router /students/{id}/schedule/time [put]
func (h *StudentHandler) SetScheduleTime(c *gin.Context) {
	var req ScheduleTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := h.studentService.SetScheduleTime(c.Request.Context(), c.Param("id"), req.Time)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}

// GetWeek godoc
// @Summary Seven-day schedule/plan consistency view
// @Tags Schedule
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} service.WeekView
// @Router /students/{id}/week [get]
func (h *StudentHandler) GetWeek(c *gin.Context) {
	view, err := h.studentService.WeekView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetPlan godoc
// @Summary Get a student's weekly plan
// @Tags Plan
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {array} SessionResponse
// @Router /students/{id}/plan [get]
func (h *StudentHandler) GetPlan(c *gin.Context) {
	student, err := h.studentService.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(student.WeeklyPlan))
}

// ReplacePlan godoc
// @Summary Replace a student's weekly plan
// @Description Missing exercise ids and video links are filled in. The schedule is not touched.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param plan body ReplacePlanRequest true "Weekly plan"
// @Success 200 {object} StudentResponse
// @Router /students/{id}/plan [put]
func (h *StudentHandler) ReplacePlan(c *gin.Context) {
	var req ReplacePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := h.studentService.ReplacePlan(c.Request.Context(), c.Param("id"), req.WeeklyPlan)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}

// AddExercise godoc
// @Summary Add an exercise to a day
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param day path string true "Weekday"
// @Param exercise body AddExerciseRequest true "Exercise"
// @Success 201 {object} domain.Exercise
// @Router /students/{id}/plan/days/{day}/exercises [post]
func (h *StudentHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	_, exercise, err := h.studentService.AddExercise(c.Request.Context(), c.Param("id"), c.Param("day"), req.Focus, req.NewExerciseInput)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// RemoveExercise godoc
// @Summary Remove an exercise from a day
// @Tags Plan
// @Produce json
// @Param id path string true "Student ID"
// @Param day path string true "Weekday"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} StudentResponse
// @Failure 404 {object} gin.H "Student or exercise not found"
// @Router /students/{id}/plan/days/{day}/exercises/{exerciseId} [delete]
func (h *StudentHandler) RemoveExercise(c *gin.Context) {
	student, err := h.studentService.RemoveExercise(c.Request.Context(), c.Param("id"), c.Param("day"), c.Param("exerciseId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student))
}
