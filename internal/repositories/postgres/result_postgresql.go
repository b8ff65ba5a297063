package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *ResultPostgreSQL) GetByAttempt(ctx context.Context, attemptID uint) (*models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetByExam(ctx context.Context, examID uint) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Joins("JOIN attempts ON attempts.id = results.attempt_id").
		Where("attempts.exam_id = ?", examID).
		Preload("Attempt").
		Order("results.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
