package postgres

import (
	"gorm.io/gorm"

	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

type repository struct {
	exam    repositories.ExamRepository
	attempt repositories.AttemptRepository
	result  repositories.ResultRepository
}

// NewRepository wires the PostgreSQL implementations behind the aggregate
// Repository interface.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		exam:    NewExamPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
		result:  NewResultPostgreSQL(db),
	}
}

func (r *repository) Exam() repositories.ExamRepository {
	return r.exam
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *repository) Result() repositories.ResultRepository {
	return r.result
}
