package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/services"
	"github.com/rafkix/cefr-exam-service/internal/utils"
)

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
	writingService services.WritingService
	exportService  services.ExportService
	validator      *utils.Validator
}

type ValidateWritingRequest struct {
	Text string `json:"text"`
}

func NewGradingHandler(
	gradingService services.GradingService,
	writingService services.WritingService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger *slog.Logger,
) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
		writingService: writingService,
		exportService:  exportService,
		validator:      validator,
	}
}

// GetResult returns the stored result of a graded attempt
// @Summary Get attempt result
// @Tags grading
// @Produce json
// @Param attempt_id path uint true "Attempt ID"
// @Success 200 {object} models.Result
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/result [get]
func (h *GradingHandler) GetResult(c *gin.Context) {
	attemptID := h.parseIDParam(c, "attempt_id")
	if attemptID == 0 {
		return
	}

	result, err := h.gradingService.GetResult(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScoreBand converts a percent score to its scaled score and CEFR level
// @Summary Score band lookup
// @Description Maps a 0-100 percent score onto the skill's band table
// @Tags grading
// @Produce json
// @Param skill query string true "Skill (reading, listening, writing)"
// @Param percent query int true "Percent score"
// @Success 200 {object} services.BandScore
// @Failure 400 {object} ErrorResponse
// @Router /grading/score-band [get]
func (h *GradingHandler) ScoreBand(c *gin.Context) {
	skill := models.SkillType(c.Query("skill"))
	percent := h.parseIntQuery(c, "percent", -1)

	band, err := h.gradingService.ScoreBand(skill, percent)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, band)
}

// ValidateWriting checks a writing draft against the exam's word bounds
// @Summary Validate writing draft
// @Description Counts words and checks them against the task's min/max bounds
// @Tags grading
// @Accept json
// @Produce json
// @Param id path uint true "Exam ID"
// @Param draft body ValidateWritingRequest true "Draft text"
// @Success 200 {object} models.WritingValidation
// @Failure 400 {object} ErrorResponse
// @Router /exams/{id}/writing/validate [post]
func (h *GradingHandler) ValidateWriting(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	var req ValidateWritingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	validation, err := h.writingService.Validate(c.Request.Context(), examID, req.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, validation)
}

// ExportResults streams an xlsx workbook of the exam's graded attempts
// @Summary Export exam results
// @Tags grading
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Exam ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/results/export [get]
func (h *GradingHandler) ExportResults(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	h.LogRequest(c, "Exporting exam results", "exam_id", examID)

	data, err := h.exportService.ExportExamResults(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("exam-%d-results.xlsx", examID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
