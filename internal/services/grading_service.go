package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rafkix/cefr-exam-service/internal/events"
	"github.com/rafkix/cefr-exam-service/internal/grading"
	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

type gradingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewGradingService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) GradingService {
	return &gradingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// GradeAttempt runs the grading engine over a finished attempt's answer
// snapshot, persists the result and publishes it downstream. Grading an
// attempt that already has a result returns the stored one unchanged.
func (s *gradingService) GradeAttempt(ctx context.Context, attemptID uint) (*models.TestResult, error) {
	s.logger.Info("Grading attempt", "attempt_id", attemptID)

	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.Status != models.AttemptStatusSubmitted {
		return nil, ErrAttemptNotEnded
	}

	if stored, err := s.repo.Result().GetByAttempt(ctx, attemptID); err == nil {
		return storedToTestResult(stored)
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing result: %w", err)
	}

	exam, err := s.repo.Exam().GetByIDWithContent(ctx, attempt.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam content: %w", err)
	}

	answers := make(map[uint]string)
	if len(attempt.Answers) > 0 {
		if err := json.Unmarshal(attempt.Answers, &answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer snapshot: %w", err)
		}
	}

	result := grading.Grade(exam, answers)

	detailsJSON, err := json.Marshal(result.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result details: %w", err)
	}
	stored := &models.Result{
		AttemptID:   attemptID,
		Total:       result.Total,
		Correct:     result.Correct,
		Wrong:       result.Wrong,
		Percent:     result.Percent,
		ScaledScore: result.ScaledScore,
		CEFRLevel:   result.CEFRLevel,
		Details:     detailsJSON,
	}
	if err := s.repo.Result().Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to persist result: %w", err)
	}

	event := events.NewAttemptGradedEvent(attempt, exam.Skill, result)
	if err := s.publisher.PublishResultEvent(ctx, event); err != nil {
		// Downstream consumers can replay from storage; grading itself
		// succeeded.
		s.logger.Error("Failed to publish result event", "attempt_id", attemptID, "error", err)
	}

	s.logger.Info("Attempt graded",
		"attempt_id", attemptID,
		"total", result.Total,
		"correct", result.Correct,
		"percent", result.Percent,
		"cefr_level", result.CEFRLevel)

	return result, nil
}

func (s *gradingService) GetResult(ctx context.Context, attemptID uint) (*models.Result, error) {
	result, err := s.repo.Result().GetByAttempt(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

// ScoreBand converts a standalone 0-100 score through the skill's band table,
// for results-display collaborators that already hold a percent.
func (s *gradingService) ScoreBand(skill models.SkillType, percent int) (*BandScore, error) {
	scaled, level, err := tableFor(skill).Score(percent)
	if err != nil {
		return nil, err
	}
	return &BandScore{ScaledScore: scaled, CEFRLevel: level}, nil
}
