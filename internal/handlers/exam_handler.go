package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
	"github.com/rafkix/cefr-exam-service/internal/services"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger *slog.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// ListExams lists exams with optional skill/status filters
// @Summary List exams
// @Description Lists exams filtered by skill and status, paginated
// @Tags exams
// @Produce json
// @Param skill query string false "Skill filter (reading, listening, writing, speaking)"
// @Param status query string false "Status filter (draft, active, archived)"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	filters := repositories.ExamFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if skill := c.Query("skill"); skill != "" {
		s := models.SkillType(skill)
		filters.Skill = &s
	}
	if status := c.Query("status"); status != "" {
		s := models.ExamStatus(status)
		filters.Status = &s
	}

	exams, total, err := h.examService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exams": exams,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// GetExam returns a single exam with its parts and questions
// @Summary Get exam content
// @Description Returns an exam with its parts and questions in declared order
// @Tags exams
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} models.Exam
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /exams/{id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	exam, err := h.examService.GetWithContent(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}
