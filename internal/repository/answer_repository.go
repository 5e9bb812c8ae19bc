package repository

import (
	"context"

	"github.com/lshigami/Hireboard/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Update(ctx context.Context, answer *model.Answer) error
	FindByTestAttemptIDAndQuestionID(ctx context.Context, testAttemptID uint, questionID uint) (*model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Update(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

func (r *answerRepository) FindByTestAttemptIDAndQuestionID(ctx context.Context, testAttemptID uint, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.WithContext(ctx).
		Where("test_attempt_id = ? AND question_id = ?", testAttemptID, questionID).
		First(&answer).Error
	return &answer, err
}
