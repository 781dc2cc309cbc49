package api

import (
	"net/http"

	"stairs/gym-reports/internal/repository"
	"stairs/gym-reports/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	reportService service.ReportService,
	patientRepo repository.PatientRepository,
	workoutRepo repository.WorkoutRepository,
) {
	authHandler := NewAuthHandler(authService)
	reportHandler := NewReportHandler(reportService, patientRepo, workoutRepo)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/patients", reportHandler.ListPatients)
		protected.GET("/patients/:id/workouts", reportHandler.ListPatientWorkouts)

		reportGroup := protected.Group("/reports")
		{
			reportGroup.POST("/weekly", reportHandler.GenerateWeekly)
			reportGroup.POST("/weekly/:id", reportHandler.GenerateWeeklyForPatient)
			reportGroup.GET("/weekly/:reportId/archive", reportHandler.GetWeeklyReportArchive)
			reportGroup.POST("/monthly", reportHandler.GenerateMonthly)
			reportGroup.POST("/monthly/:id", reportHandler.GenerateMonthlyForPatient)
		}
	}
}
