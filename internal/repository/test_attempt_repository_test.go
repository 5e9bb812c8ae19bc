package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTest(t *testing.T, db *gorm.DB, recruiterID uint) *model.Test {
	t.Helper()
	test := &model.Test{
		Title:           "Backend screening",
		DurationMinutes: 30,
		SelectionType:   model.SelectionManual,
		TestType:        model.TestTypeAptitude,
		ManualQuestions: []uint{1},
		CreatedBy:       recruiterID,
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func openAttempt(testID, candidateID uint) *model.TestAttempt {
	return &model.TestAttempt{
		TestID:          testID,
		CandidateID:     candidateID,
		StartedAt:       time.Now(),
		DurationMinutes: 30,
		QuestionsSnapshot: []model.QuestionSnapshot{
			{QuestionID: 1, Type: model.QuestionTypeSubjective, Points: 10},
		},
	}
}

func TestTestAttemptRepository_OneOpenAttemptPerCandidate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTestAttemptRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, 1)

	first := openAttempt(test.ID, 42)
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, openAttempt(test.ID, 42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// Another candidate is unaffected.
	require.NoError(t, repo.Create(ctx, openAttempt(test.ID, 43)))

	found, err := repo.FindOpen(ctx, test.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
	require.Len(t, found.QuestionsSnapshot, 1)

	none, err := repo.FindOpen(ctx, test.ID, 99)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTestAttemptRepository_CompleteIsSingleWriter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTestAttemptRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, 1)

	attempt := openAttempt(test.ID, 42)
	require.NoError(t, repo.Create(ctx, attempt))

	now := time.Now()
	attempt.CompletedAt = &now
	attempt.Score = 7
	correct := true
	answers := []model.Answer{{QuestionID: 1, SubmittedValue: "B", IsCorrect: &correct, PointsAwarded: 7}}

	ok, err := repo.Complete(ctx, attempt, answers)
	require.NoError(t, err)
	assert.True(t, ok)

	attempt.Score = 100
	ok, err = repo.Complete(ctx, attempt, []model.Answer{{QuestionID: 1, PointsAwarded: 100}})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByIDWithDetails(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, stored.Score)
	assert.NotNil(t, stored.CompletedAt)
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, 7.0, stored.Answers[0].PointsAwarded)

	// A completed attempt frees the slot for a new open one.
	require.NoError(t, repo.Create(ctx, openAttempt(test.ID, 42)))
}

func TestTestAttemptRepository_FindForReleaseDeletedTest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTestAttemptRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, 1)

	attempt := openAttempt(test.ID, 42)
	require.NoError(t, repo.Create(ctx, attempt))
	require.NoError(t, NewTestRepository(db).Delete(ctx, test.ID))

	attempts, err := repo.FindForRelease(ctx, ReleaseFilter{AttemptID: &attempt.ID})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Nil(t, attempts[0].Test)

	attempts, err = repo.FindForRelease(ctx, ReleaseFilter{})
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestTestAttemptRepository_FindCompletedByTest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTestAttemptRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, 1)

	for _, candidate := range []uint{1, 2, 3} {
		a := openAttempt(test.ID, candidate)
		require.NoError(t, repo.Create(ctx, a))
		if candidate != 3 {
			now := time.Now()
			a.CompletedAt = &now
			_, err := repo.Complete(ctx, a, nil)
			require.NoError(t, err)
		}
	}

	all, err := repo.FindCompletedByTest(ctx, test.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := repo.FindCompletedByTest(ctx, test.ID, []uint{2, 3})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, uint(2), some[0].CandidateID)

	none, err := repo.FindCompletedByTest(ctx, test.ID, []uint{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
