package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intervia/intervia-backend/internal/response"
	"github.com/intervia/intervia-backend/internal/service"
)

// ReportHandler handles interview report endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// BuildReport godoc
// POST /api/v1/sessions/:session_id/report
// Runs integrity analysis and scoring for a finished session and
// returns the full interview report.
func (h *ReportHandler) BuildReport(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.reports.BuildReport(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrSessionNotFinished):
			response.Fail(c, http.StatusConflict, response.ErrSessionNotFinished)
		case errors.Is(err, service.ErrUnknownDifficultyMix):
			response.Fail(c, http.StatusInternalServerError, response.ErrConfiguration)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}
