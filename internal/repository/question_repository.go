package repository

import (
	"context"

	"github.com/lshigami/Hireboard/internal/model"
	"gorm.io/gorm"
)

type QuestionFilter struct {
	Type       model.QuestionType
	Difficulty model.Difficulty
	CreatedBy  uint
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	FindByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]model.Question, error)
	FindAll(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs returns the live questions among ids in no particular order. Unknown
// and soft-deleted ids are silently absent.
func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).Where("difficulty = ?", difficulty).Order("id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindAll(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.WithContext(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.CreatedBy != 0 {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if err := query.Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Question{}, id).Error
}
