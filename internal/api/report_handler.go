package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stairs/gym-reports/internal/repository"
	"stairs/gym-reports/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportHandler exposes report generation and the read endpoints backing it.
type ReportHandler struct {
	reportService service.ReportService
	patientRepo   repository.PatientRepository
	workoutRepo   repository.WorkoutRepository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, patientRepo repository.PatientRepository, workoutRepo repository.WorkoutRepository) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		patientRepo:   patientRepo,
		workoutRepo:   workoutRepo,
	}
}

// ListPatients returns all active patients.
func (h *ReportHandler) ListPatients(c *gin.Context) {
	patients, err := h.patientRepo.ListActive(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list patients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "count": len(patients)})
}

// ListPatientWorkouts returns one patient's workouts within the last N days
// (query parameter "days", default 7).
func (h *ReportHandler) ListPatientWorkouts(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	days, err := parseDays(c.DefaultQuery("days", "7"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	workouts, err := h.workoutRepo.ListByPatientSince(c.Request.Context(), patientID, since)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"workouts": workouts, "count": len(workouts)})
}

// GenerateWeekly triggers a weekly report run for all active patients.
func (h *ReportHandler) GenerateWeekly(c *gin.Context) {
	days, err := parseDays(c.DefaultQuery("days", "7"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result := h.reportService.GenerateWeeklyForAll(c.Request.Context(), days)
	c.JSON(http.StatusOK, batchResponse(result))
}

// GenerateWeeklyForPatient triggers a weekly report run for one patient.
func (h *ReportHandler) GenerateWeeklyForPatient(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}
	days, err := parseDays(c.DefaultQuery("days", "7"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome := h.reportService.GenerateWeeklyForPatient(c.Request.Context(), patientID, days)
	c.JSON(outcomeStatus(outcome), outcomeResponse(outcome))
}

// GenerateMonthly triggers a monthly report run for all active patients.
func (h *ReportHandler) GenerateMonthly(c *gin.Context) {
	days, err := parseDays(c.DefaultQuery("days", "30"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result := h.reportService.GenerateMonthlyForAll(c.Request.Context(), days)
	c.JSON(http.StatusOK, batchResponse(result))
}

// GenerateMonthlyForPatient triggers a monthly report run for one patient.
func (h *ReportHandler) GenerateMonthlyForPatient(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}
	days, err := parseDays(c.DefaultQuery("days", "30"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome := h.reportService.GenerateMonthlyForPatient(c.Request.Context(), patientID, days)
	c.JSON(outcomeStatus(outcome), outcomeResponse(outcome))
}

// GetWeeklyReportArchive returns a presigned download URL for the archived
// HTML of one weekly report.
func (h *ReportHandler) GetWeeklyReportArchive(c *gin.Context) {
	reportID := c.Param("reportId")

	url, err := h.reportService.PresignWeeklyArchive(c.Request.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArchiveNotConfigured):
			abortWithError(c, http.StatusNotImplemented, "Report archival is not configured")
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "Report not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download link")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reportId": reportID, "downloadUrl": url})
}

func parseDays(raw string) (int, error) {
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > 365 {
		return 0, fmt.Errorf("days must be a positive integer up to 365")
	}
	return days, nil
}

func outcomeStatus(outcome service.PatientOutcome) int {
	if outcome.Outcome == service.OutcomeFailed {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

func outcomeResponse(outcome service.PatientOutcome) gin.H {
	resp := gin.H{
		"patientId": outcome.PatientID.Hex(),
		"outcome":   outcome.Outcome,
	}
	if outcome.ReportID != "" {
		resp["reportId"] = outcome.ReportID
	}
	if outcome.Err != nil {
		resp["error"] = outcome.Err.Error()
	}
	return resp
}

func batchResponse(result service.BatchResult) gin.H {
	outcomes := make([]gin.H, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		outcomes = append(outcomes, outcomeResponse(o))
	}
	return gin.H{
		"runId":    result.RunID,
		"created":  result.Created,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
		"outcomes": outcomes,
	}
}
