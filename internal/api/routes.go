package api

import (
	"log/slog"
	"net/http"

	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
)

// Services are the handlers' dependencies. Auth is nil when the console is open.
type Services struct {
	Auth      service.AuthService
	Students  service.StudentService
	Plans     service.PlanService
	Templates service.TemplateService
	Dashboard service.DashboardService
	Videos    service.VideoService
}

func SetupRoutes(router *gin.Engine, svc Services, logger *slog.Logger) {
	studentHandler := NewStudentHandler(svc.Students, svc.Plans, logger)
	planHandler := NewPlanHandler(svc.Plans, logger)
	templateHandler := NewTemplateHandler(svc.Templates, logger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, logger)
	videoHandler := NewVideoHandler(svc.Videos, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	if svc.Auth != nil {
		authHandler := NewAuthHandler(svc.Auth)
		apiV1.POST("/auth/login", authHandler.Login)
		protected.Use(AuthMiddleware(svc.Auth))
	}

	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	// --- Students ---
	students := protected.Group("/students")
	{
		students.GET("", studentHandler.ListStudents)
		students.POST("", studentHandler.CreateStudent)
		students.GET("/:id", studentHandler.GetStudent)
		students.PUT("/:id", studentHandler.UpdateProfile)
		students.DELETE("/:id", studentHandler.DeleteStudent)
		students.PUT("/:id/status", studentHandler.UpdateStatus)

		// Schedule
		students.POST("/:id/schedule/days/:day/toggle", studentHandler.ToggleScheduleDay)
		students.PUT("/:id/schedule/time", studentHandler.SetScheduleTime)
		students.GET("/:id/week", studentHandler.GetWeek)

		// Weekly plan
		students.GET("/:id/plan", studentHandler.GetPlan)
		students.PUT("/:id/plan", studentHandler.ReplacePlan)
		students.POST("/:id/plan/days/:day/exercises", studentHandler.AddExercise)
		students.DELETE("/:id/plan/days/:day/exercises/:exerciseId", studentHandler.RemoveExercise)
		students.POST("/:id/plan/generate", planHandler.GeneratePlan)
		students.GET("/:id/plan/view", planHandler.GetView)
		students.PUT("/:id/plan/view", planHandler.SelectDay)

		// Demo videos
		students.POST("/:id/exercises/:exerciseId/video", videoHandler.RequestUpload)
		students.GET("/:id/exercises/:exerciseId/video", videoHandler.GetVideoURL)
	}

	// --- Templates ---
	templates := protected.Group("/templates")
	{
		templates.GET("", templateHandler.ListTemplates)
		templates.POST("", templateHandler.CreateTemplate)
		templates.POST("/generate", templateHandler.GenerateContent)
		templates.DELETE("/:id", templateHandler.DeleteTemplate)
	}
}
