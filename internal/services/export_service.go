package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportExamResults renders every graded attempt of an exam into an xlsx
// workbook, one row per attempt, for offline review by examiners.
func (s *exportService) ExportExamResults(ctx context.Context, examID uint) ([]byte, error) {
	s.logger.Info("Exporting exam results", "exam_id", examID)

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	results, err := s.repo.Result().GetByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Attempt ID", "User ID", "Started At", "Finished At", "Total", "Correct", "Wrong", "Percent", "Scaled Score", "CEFR Level"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, result := range results {
		finishedAt := ""
		if result.Attempt.FinishedAt != nil {
			finishedAt = result.Attempt.FinishedAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			result.AttemptID,
			result.Attempt.UserID,
			result.Attempt.StartedAt.Format("2006-01-02 15:04:05"),
			finishedAt,
			result.Total,
			result.Correct,
			result.Wrong,
			result.Percent,
			result.ScaledScore,
			string(result.CEFRLevel),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Exported exam results",
		"exam_id", examID,
		"exam_title", exam.Title,
		"rows", len(results))

	return buf.Bytes(), nil
}
