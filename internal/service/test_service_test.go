package service

import (
	"context"
	"testing"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestService_ValidatesSelectionConfig(t *testing.T) {
	f := newFixture(t)
	q1 := f.seedChoice(t, 5)
	q2 := f.seedSubjective(t)
	svc := NewTestService(f.tests, f.questions)

	base := func() dto.TestUpsertDTO {
		return dto.TestUpsertDTO{Title: "Screening", DurationMinutes: 30}
	}
	dist := func(total int, e, m, h float64) *dto.DifficultyDistributionDTO {
		return &dto.DifficultyDistributionDTO{TotalQuestions: total, EasyPercent: e, MediumPercent: m, HardPercent: h}
	}

	tests := []struct {
		name   string
		mutate func(*dto.TestUpsertDTO)
	}{
		{"manual without questions", func(r *dto.TestUpsertDTO) { r.SelectionType = "manual" }},
		{"manual with unknown question", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "manual"
			r.ManualQuestions = []uint{q1.ID, 999}
		}},
		{"manual with duplicates", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "manual"
			r.ManualQuestions = []uint{q1.ID, q1.ID}
		}},
		{"manual with distribution", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "manual"
			r.ManualQuestions = []uint{q1.ID}
			r.DifficultyDistribution = dist(1, 100, 0, 0)
		}},
		{"random without distribution", func(r *dto.TestUpsertDTO) { r.SelectionType = "random" }},
		{"random with manual questions", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "random"
			r.ManualQuestions = []uint{q1.ID}
			r.DifficultyDistribution = dist(5, 100, 0, 0)
		}},
		{"percent sum off", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "random"
			r.DifficultyDistribution = dist(5, 50, 30, 19.8)
		}},
		{"percent out of range", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "random"
			r.DifficultyDistribution = dist(5, 120, -20, 0)
		}},
		{"zero questions", func(r *dto.TestUpsertDTO) {
			r.SelectionType = "random"
			r.DifficultyDistribution = dist(0, 100, 0, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			_, err := svc.CreateTest(context.Background(), recruiterID, req)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeConfiguration), err.Error())
		})
	}

	t.Run("valid manual", func(t *testing.T) {
		req := base()
		req.SelectionType = "manual"
		req.ManualQuestions = []uint{q2.ID, q1.ID}
		resp, err := svc.CreateTest(context.Background(), recruiterID, req)
		require.NoError(t, err)
		assert.Equal(t, []uint{q2.ID, q1.ID}, resp.ManualQuestions)
		assert.Nil(t, resp.DifficultyDistribution)
		assert.Equal(t, "aptitude", resp.TestType)
	})

	t.Run("valid random within tolerance", func(t *testing.T) {
		req := base()
		req.SelectionType = "random"
		req.DifficultyDistribution = dist(10, 33.33, 33.33, 33.3)
		resp, err := svc.CreateTest(context.Background(), recruiterID, req)
		require.NoError(t, err)
		require.NotNil(t, resp.DifficultyDistribution)
		assert.Equal(t, 10, resp.DifficultyDistribution.TotalQuestions)
		assert.Empty(t, resp.ManualQuestions)

		stored, err := svc.GetTest(context.Background(), resp.ID, recruiterID)
		require.NoError(t, err)
		require.NotNil(t, stored.DifficultyDistribution)
		assert.Equal(t, 33.3, stored.DifficultyDistribution.HardPercent)
	})
}

func TestTestService_Ownership(t *testing.T) {
	f := newFixture(t)
	q := f.seedChoice(t, 5)
	svc := NewTestService(f.tests, f.questions)
	ctx := context.Background()

	created, err := svc.CreateTest(ctx, recruiterID, dto.TestUpsertDTO{
		Title: "Screening", DurationMinutes: 20, SelectionType: "manual", ManualQuestions: []uint{q.ID},
	})
	require.NoError(t, err)

	_, err = svc.GetTest(ctx, created.ID, recruiterID+1)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	assert.True(t, apperr.Is(svc.DeleteTest(ctx, created.ID, recruiterID+1), apperr.CodeUnauthorized))

	updated, err := svc.UpdateTest(ctx, created.ID, recruiterID, dto.TestUpsertDTO{
		Title: "Screening v2", DurationMinutes: 25, SelectionType: "manual", ManualQuestions: []uint{q.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Screening v2", updated.Title)
	assert.Equal(t, created.ID, updated.ID)

	list, err := svc.ListTests(ctx, recruiterID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteTest(ctx, created.ID, recruiterID))
	_, err = svc.GetTest(ctx, created.ID, recruiterID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
