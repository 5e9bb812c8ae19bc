package repository

import (
	"context"
	"time"

	"github.com/lshigami/Hireboard/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReleaseFilter selects attempts for result release. Exactly one field is expected
// to be set; AttemptID wins when both are.
type ReleaseFilter struct {
	AttemptID *uint
	TestID    *uint
}

type TestAttemptRepository interface {
	WithTx(tx *gorm.DB) TestAttemptRepository
	Create(ctx context.Context, attempt *model.TestAttempt) error
	FindByID(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindOpen(ctx context.Context, testID, candidateID uint) (*model.TestAttempt, error)
	FindAllByCandidate(ctx context.Context, candidateID uint) ([]model.TestAttempt, error)
	FindCompletedByTest(ctx context.Context, testID uint, candidateIDs []uint) ([]model.TestAttempt, error)
	FindForRelease(ctx context.Context, filter ReleaseFilter) ([]model.TestAttempt, error)
	Complete(ctx context.Context, attempt *model.TestAttempt, answers []model.Answer) (bool, error)
	MarkResultsReleased(ctx context.Context, ids []uint) (int64, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) WithTx(tx *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: tx}
}

// Create inserts a new open attempt. A concurrent open attempt for the same
// (test, candidate) surfaces as gorm.ErrDuplicatedKey.
func (r *testAttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(attempt).Error
}

func (r *testAttemptRepository) FindByID(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).First(&attempt, id).Error
	return &attempt, err
}

func (r *testAttemptRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Answers").
		First(&attempt, id).Error
	return &attempt, err
}

// FindOpen returns the candidate's open attempt for the test, or nil when there is
// none.
func (r *testAttemptRepository) FindOpen(ctx context.Context, testID, candidateID uint) (*model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND candidate_id = ? AND completed_at IS NULL", testID, candidateID).
		Limit(1).
		Find(&attempts).Error
	if err != nil || len(attempts) == 0 {
		return nil, err
	}
	return &attempts[0], nil
}

func (r *testAttemptRepository) FindAllByCandidate(ctx context.Context, candidateID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Answers").
		Where("candidate_id = ?", candidateID).
		Order("started_at DESC").
		Order("id DESC").
		Find(&attempts).Error
	return attempts, err
}

// FindCompletedByTest returns the completed attempts of a test, restricted to the
// given candidates when candidateIDs is non-nil.
func (r *testAttemptRepository) FindCompletedByTest(ctx context.Context, testID uint, candidateIDs []uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.WithContext(ctx).Where("test_id = ? AND completed_at IS NOT NULL", testID)
	if candidateIDs != nil {
		if len(candidateIDs) == 0 {
			return attempts, nil
		}
		query = query.Where("candidate_id IN ?", candidateIDs)
	}
	err := query.Order("id ASC").Find(&attempts).Error
	return attempts, err
}

// FindForRelease loads the matching attempts with their test. Attempts whose test
// has been deleted come back with a nil Test.
func (r *testAttemptRepository) FindForRelease(ctx context.Context, filter ReleaseFilter) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.WithContext(ctx).Preload("Test")
	switch {
	case filter.AttemptID != nil:
		query = query.Where("id = ?", *filter.AttemptID)
	case filter.TestID != nil:
		query = query.Where("test_id = ?", *filter.TestID)
	default:
		return attempts, nil
	}
	err := query.Order("id ASC").Find(&attempts).Error
	return attempts, err
}

// Complete closes an open attempt and stores its graded answers in one
// transaction. It reports false, writing nothing, when the attempt was already
// completed by someone else.
func (r *testAttemptRepository) Complete(ctx context.Context, attempt *model.TestAttempt, answers []model.Answer) (bool, error) {
	completed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestAttempt{}).
			Where("id = ? AND completed_at IS NULL", attempt.ID).
			Updates(map[string]interface{}{
				"score":        attempt.Score,
				"completed_at": attempt.CompletedAt,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		for i := range answers {
			answers[i].TestAttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (r *testAttemptRepository) MarkResultsReleased(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.TestAttempt{}).
		Where("id IN ?", ids).
		Update("results_released", true)
	return res.RowsAffected, res.Error
}
