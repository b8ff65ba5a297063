package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rafkix/cefr-exam-service/internal/grading"
	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

type writingService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewWritingService(repo repositories.Repository, logger *slog.Logger) WritingService {
	return &writingService{
		repo:   repo,
		logger: logger,
	}
}

// Validate checks a draft against the exam's writing task bounds. Called
// live while the user types, so it only reads and never persists anything.
// An exam without a configured task validates unconstrained.
func (s *writingService) Validate(ctx context.Context, examID uint, text string) (*models.WritingValidation, error) {
	task, err := s.repo.Exam().GetWritingTask(ctx, examID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get writing task: %w", err)
	}

	v := grading.ValidateWriting(task, text)
	return &v, nil
}
