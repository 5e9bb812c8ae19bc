package repository

import (
	"context"

	"github.com/lshigami/Hireboard/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	FindAllByCreator(ctx context.Context, recruiterID uint) ([]model.Test, error)
	Update(ctx context.Context, test *model.Test) error
	Delete(ctx context.Context, id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindAllByCreator(ctx context.Context, recruiterID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.WithContext(ctx).
		Where("created_by = ?", recruiterID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) Update(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Save(test).Error
}

func (r *testRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Test{}, id).Error
}
