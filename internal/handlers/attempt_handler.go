package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafkix/cefr-exam-service/internal/services"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger *slog.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttempt opens (or resumes) an attempt on an exam
// @Summary Start attempt
// @Description Starts a new attempt or resumes the in-progress one
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.AttemptState
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /exams/{id}/attempts [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Starting attempt", "exam_id", examID)

	state, err := h.attemptService.Start(c.Request.Context(), examID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetCurrentAttempt returns the live attempt state for the caller
// @Summary Get current attempt
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.AttemptState
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/attempts/current [get]
func (h *AttemptHandler) GetCurrentAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	state, err := h.attemptService.GetCurrent(c.Request.Context(), examID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SaveAnswer records or overwrites the answer to one question
// @Summary Save answer
// @Description Records the answer for a question; later saves overwrite earlier ones
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path uint true "Exam ID"
// @Param answer body services.SaveAnswerRequest true "Answer payload"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /exams/{id}/attempts/answer [post]
func (h *AttemptHandler) SaveAnswer(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	var req services.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.attemptService.SaveAnswer(c.Request.Context(), examID, userID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Answer saved"})
}

// ToggleFlag flips the review flag on a question
// @Summary Toggle question flag
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Param question_id path uint true "Question ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /exams/{id}/attempts/flag/{question_id} [post]
func (h *AttemptHandler) ToggleFlag(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	flagged, err := h.attemptService.ToggleFlag(c.Request.Context(), examID, userID, questionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question_id": questionID,
		"flagged":     flagged,
	})
}

// FinishAttempt seals the attempt and grades it
// @Summary Finish attempt
// @Description Finishes the attempt and returns the graded result. Repeat calls return the stored result.
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} models.TestResult
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/attempts/finish [post]
func (h *AttemptHandler) FinishAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Finishing attempt", "exam_id", examID)

	result, err := h.attemptService.Finish(c.Request.Context(), examID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResetAttempt abandons the current attempt and opens a fresh one
// @Summary Reset attempt
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.AttemptState
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/attempts/reset [post]
func (h *AttemptHandler) ResetAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Resetting attempt", "exam_id", examID)

	state, err := h.attemptService.Reset(c.Request.Context(), examID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetSubmissionPayload returns the ordered answer list of the live session
// @Summary Get submission payload
// @Description Returns the session's answers ordered by question ID
// @Tags attempts
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {array} session.AnswerPayload
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/attempts/payload [get]
func (h *AttemptHandler) GetSubmissionPayload(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	userID := h.userID(c)
	if userID == "" {
		return
	}

	payload, err := h.attemptService.SubmissionPayload(c.Request.Context(), examID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}
