package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/rafkix/cefr-exam-service/internal/services"
	"github.com/rafkix/cefr-exam-service/internal/utils"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	attemptHandler *AttemptHandler
	gradingHandler *GradingHandler
}

func NewHandlerManager(
	manager *services.Manager,
	validator *utils.Validator,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(manager.Exam, logger),
		attemptHandler: NewAttemptHandler(manager.Attempt, logger),
		gradingHandler: NewGradingHandler(manager.Grading, manager.Writing, manager.Export, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "cefr-exam-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Exam routes
		exams := v1.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)

			// Attempt lifecycle, scoped to one exam per user
			exams.POST("/:id/attempts", hm.attemptHandler.StartAttempt)
			exams.GET("/:id/attempts/current", hm.attemptHandler.GetCurrentAttempt)
			exams.POST("/:id/attempts/answer", hm.attemptHandler.SaveAnswer)
			exams.POST("/:id/attempts/flag/:question_id", hm.attemptHandler.ToggleFlag)
			exams.POST("/:id/attempts/finish", hm.attemptHandler.FinishAttempt)
			exams.POST("/:id/attempts/reset", hm.attemptHandler.ResetAttempt)
			exams.GET("/:id/attempts/payload", hm.attemptHandler.GetSubmissionPayload)

			// Writing validation and result export
			exams.POST("/:id/writing/validate", hm.gradingHandler.ValidateWriting)
			exams.GET("/:id/results/export", hm.gradingHandler.ExportResults)
		}

		// Grading routes
		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:attempt_id/result", hm.gradingHandler.GetResult)
		}

		grading := v1.Group("/grading")
		{
			grading.GET("/score-band", hm.gradingHandler.ScoreBand)
		}
	}
}
