package repository

import (
	"context"

	"github.com/lshigami/Hireboard/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	WithTx(tx *gorm.DB) ApplicationRepository
	Create(ctx context.Context, application *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	FindByCandidateAndCurrentTest(ctx context.Context, candidateID, testID uint) (*model.Application, error)
	FindAllByCandidate(ctx context.Context, candidateID uint) ([]model.Application, error)
	FindAllByJob(ctx context.Context, jobID uint) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Update(ctx context.Context, application *model.Application) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) WithTx(tx *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: tx}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).Preload("Job").First(&application, id).Error
	return &application, err
}

// FindByCandidateAndCurrentTest returns the application whose current round grants
// the candidate access to testID.
func (r *applicationRepository) FindByCandidateAndCurrentTest(ctx context.Context, candidateID, testID uint) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND current_round_test_id = ?", candidateID, testID).
		Order("id ASC").
		First(&application).Error
	return &application, err
}

func (r *applicationRepository) FindAllByCandidate(ctx context.Context, candidateID uint) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) FindAllByJob(ctx context.Context, jobID uint) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).Update("status", status).Error
}

func (r *applicationRepository) Update(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(application).Error
}
