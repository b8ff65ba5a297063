package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
	"github.com/rafkix/cefr-exam-service/internal/session"
	"github.com/rafkix/cefr-exam-service/internal/utils"
)

type attemptService struct {
	repo      repositories.Repository
	sessions  *session.Store
	grading   GradingService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAttemptService(
	repo repositories.Repository,
	sessions *session.Store,
	gradingSvc GradingService,
	logger *slog.Logger,
	validator *utils.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		sessions:  sessions,
		grading:   gradingSvc,
		logger:    logger,
		validator: validator,
	}
}

// Start opens an attempt for (exam, user). An existing in-progress attempt is
// resumed rather than duplicated; one live session per exam per user.
func (s *attemptService) Start(ctx context.Context, examID uint, userID string) (*AttemptState, error) {
	s.logger.Info("Starting attempt", "exam_id", examID, "user_id", userID)

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	if exam.Status != models.ExamStatusActive {
		return nil, ErrExamNotActive
	}

	current, err := s.repo.Attempt().GetCurrent(ctx, examID, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check current attempt: %w", err)
	}
	if current != nil {
		s.logger.Info("Resuming existing attempt", "attempt_id", current.ID)
		sess := s.sessions.GetOrCreate(examID, userID)
		return buildAttemptState(current, sess), nil
	}

	sess := s.sessions.Reset(examID, userID)
	attempt := &models.Attempt{
		ExamID:    examID,
		UserID:    userID,
		Status:    models.AttemptStatusInProgress,
		StartedAt: sess.StartedAt,
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Attempt started", "attempt_id", attempt.ID, "exam_id", examID, "user_id", userID)
	return buildAttemptState(attempt, sess), nil
}

func (s *attemptService) SaveAnswer(ctx context.Context, examID uint, userID string, req *SaveAnswerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	if _, err := s.currentAttempt(ctx, examID, userID); err != nil {
		return err
	}

	sess, ok := s.sessions.Get(examID, userID)
	if !ok {
		// Session state lives in memory; after a restart the in-progress
		// attempt row survives but its answers start over.
		sess = s.sessions.GetOrCreate(examID, userID)
	}
	if err := sess.SetAnswer(req.QuestionID, req.Answer); err != nil {
		return ErrAttemptAlreadyFinished
	}
	return nil
}

func (s *attemptService) ToggleFlag(ctx context.Context, examID uint, userID string, questionID uint) (bool, error) {
	if _, err := s.currentAttempt(ctx, examID, userID); err != nil {
		return false, err
	}

	sess, ok := s.sessions.Get(examID, userID)
	if !ok {
		sess = s.sessions.GetOrCreate(examID, userID)
	}
	if err := sess.ToggleFlag(questionID); err != nil {
		return false, ErrAttemptAlreadyFinished
	}
	return sess.Flagged(questionID), nil
}

// Finish seals the attempt: the session gets its finish timestamp, the
// answer/flag snapshot is persisted, and the attempt is graded. Finishing an
// already-finished attempt is a silent no-op returning the stored result.
func (s *attemptService) Finish(ctx context.Context, examID uint, userID string) (*models.TestResult, error) {
	s.logger.Info("Finishing attempt", "exam_id", examID, "user_id", userID)

	attempt, err := s.repo.Attempt().GetCurrent(ctx, examID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return s.finishedResult(ctx, examID, userID)
		}
		return nil, fmt.Errorf("failed to get current attempt: %w", err)
	}

	sess, ok := s.sessions.Get(examID, userID)
	if !ok {
		sess = s.sessions.GetOrCreate(examID, userID)
	}
	sess.Finish()

	answersJSON, err := json.Marshal(sess.Answers())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	flagsJSON, err := json.Marshal(sess.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal flags: %w", err)
	}

	attempt.Status = models.AttemptStatusSubmitted
	attempt.FinishedAt = sess.FinishedAt
	attempt.Answers = answersJSON
	attempt.Flags = flagsJSON

	if err := s.repo.Attempt().Update(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to update attempt: %w", err)
	}

	result, err := s.grading.GradeAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to grade attempt: %w", err)
	}

	s.logger.Info("Attempt finished",
		"attempt_id", attempt.ID,
		"percent", result.Percent,
		"scaled_score", result.ScaledScore,
		"cefr_level", result.CEFRLevel)

	return result, nil
}

// finishedResult serves repeat finish calls: no in-progress attempt means the
// last submission already holds the outcome.
func (s *attemptService) finishedResult(ctx context.Context, examID uint, userID string) (*models.TestResult, error) {
	status := models.AttemptStatusSubmitted
	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{
		ExamID: &examID,
		UserID: &userID,
		Status: &status,
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	if len(attempts) == 0 {
		return nil, ErrAttemptNotFound
	}

	stored, err := s.grading.GetResult(ctx, attempts[0].ID)
	if err != nil {
		return nil, err
	}
	return storedToTestResult(stored)
}

// Reset discards the live session and opens a fresh attempt for the same
// exam. The superseded in-progress attempt, if any, is marked abandoned.
func (s *attemptService) Reset(ctx context.Context, examID uint, userID string) (*AttemptState, error) {
	s.logger.Info("Resetting attempt", "exam_id", examID, "user_id", userID)

	current, err := s.repo.Attempt().GetCurrent(ctx, examID, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get current attempt: %w", err)
	}
	if current != nil {
		current.Status = models.AttemptStatusAbandoned
		now := time.Now()
		current.FinishedAt = &now
		if err := s.repo.Attempt().Update(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to abandon attempt: %w", err)
		}
	}

	sess := s.sessions.Reset(examID, userID)
	attempt := &models.Attempt{
		ExamID:    examID,
		UserID:    userID,
		Status:    models.AttemptStatusInProgress,
		StartedAt: sess.StartedAt,
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	return buildAttemptState(attempt, sess), nil
}

func (s *attemptService) GetCurrent(ctx context.Context, examID uint, userID string) (*AttemptState, error) {
	attempt, err := s.currentAttempt(ctx, examID, userID)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.GetOrCreate(examID, userID)
	return buildAttemptState(attempt, sess), nil
}

func (s *attemptService) SubmissionPayload(ctx context.Context, examID uint, userID string) ([]session.AnswerPayload, error) {
	sess, ok := s.sessions.Get(examID, userID)
	if !ok {
		return nil, ErrNoLiveSession
	}
	return sess.SubmissionPayload(), nil
}

// ===== HELPERS =====

func (s *attemptService) currentAttempt(ctx context.Context, examID uint, userID string) (*models.Attempt, error) {
	attempt, err := s.repo.Attempt().GetCurrent(ctx, examID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get current attempt: %w", err)
	}
	return attempt, nil
}

func buildAttemptState(attempt *models.Attempt, sess *session.Session) *AttemptState {
	state := &AttemptState{
		AttemptID: attempt.ID,
		ExamID:    attempt.ExamID,
		Status:    attempt.Status,
		StartedAt: attempt.StartedAt.Format(time.RFC3339),
		Answers:   sess.SubmissionPayload(),
		Flagged:   make([]uint, 0),
	}
	if attempt.FinishedAt != nil {
		finished := attempt.FinishedAt.Format(time.RFC3339)
		state.FinishedAt = &finished
	}
	for id := range sess.Flags() {
		state.Flagged = append(state.Flagged, id)
	}
	sort.Slice(state.Flagged, func(i, j int) bool { return state.Flagged[i] < state.Flagged[j] })
	return state
}

func storedToTestResult(stored *models.Result) (*models.TestResult, error) {
	result := &models.TestResult{
		Total:       stored.Total,
		Correct:     stored.Correct,
		Wrong:       stored.Wrong,
		Percent:     stored.Percent,
		ScaledScore: stored.ScaledScore,
		CEFRLevel:   stored.CEFRLevel,
	}
	if len(stored.Details) > 0 {
		if err := json.Unmarshal(stored.Details, &result.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result details: %w", err)
		}
	}
	return result, nil
}
