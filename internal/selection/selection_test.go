package selection

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type stubCatalog struct {
	questions []model.Question
}

func (c *stubCatalog) FindByIDs(_ context.Context, ids []uint) ([]model.Question, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Question
	// Deliberately returned in catalog order, not request order.
	for _, q := range c.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (c *stubCatalog) FindByDifficulty(_ context.Context, d model.Difficulty) ([]model.Question, error) {
	var out []model.Question
	for _, q := range c.questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out, nil
}

func bank(perTier int) *stubCatalog {
	c := &stubCatalog{}
	id := uint(1)
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard, model.DifficultyExpert} {
		for i := 0; i < perTier; i++ {
			c.questions = append(c.questions, model.Question{
				ID: id, Type: model.QuestionTypeSubjective, Difficulty: d, Points: 10,
			})
			id++
		}
	}
	return c
}

func fixedSource(seed uint64) func() rand.Source {
	return func() rand.Source { return rand.NewPCG(seed, seed) }
}

func randomTest(total int, easy, medium, hard float64) *model.Test {
	return &model.Test{
		ID:            7,
		SelectionType: model.SelectionRandom,
		DifficultyDistribution: datatypes.NewJSONType(&model.DifficultyDistribution{
			TotalQuestions: total, EasyPercent: easy, MediumPercent: medium, HardPercent: hard,
		}),
	}
}

func countByDifficulty(snaps []model.QuestionSnapshot) map[model.Difficulty]int {
	out := map[model.Difficulty]int{}
	for _, s := range snaps {
		out[s.Difficulty]++
	}
	return out
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name  string
		dist  model.DifficultyDistribution
		plan  Counts
		draws Counts
	}{
		{"even split", model.DifficultyDistribution{TotalQuestions: 10, EasyPercent: 30, MediumPercent: 50, HardPercent: 20}, Counts{3, 5, 2}, Counts{3, 5, 2}},
		{"hard absorbs remainder", model.DifficultyDistribution{TotalQuestions: 7, EasyPercent: 33.3, MediumPercent: 33.3, HardPercent: 33.4}, Counts{2, 2, 3}, Counts{2, 2, 3}},
		{"rounding overshoot", model.DifficultyDistribution{TotalQuestions: 3, EasyPercent: 50, MediumPercent: 50}, Counts{2, 2, -1}, Counts{2, 1, 0}},
		{"overshoot beyond medium", model.DifficultyDistribution{TotalQuestions: 1, EasyPercent: 50, MediumPercent: 50}, Counts{1, 1, -1}, Counts{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Plan(tt.dist)
			assert.Equal(t, tt.plan, plan)
			draws := plan.Draws()
			assert.Equal(t, tt.draws, draws)
			assert.LessOrEqual(t, draws.Total(), tt.dist.TotalQuestions)
		})
	}
}

func TestSelectManualPreservesOrder(t *testing.T) {
	s := New(bank(3), WithSource(fixedSource(1)))
	test := &model.Test{ID: 1, SelectionType: model.SelectionManual, ManualQuestions: []uint{9, 2, 5}}

	snaps, err := s.Select(context.Background(), test)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, uint(9), snaps[0].QuestionID)
	assert.Equal(t, uint(2), snaps[1].QuestionID)
	assert.Equal(t, uint(5), snaps[2].QuestionID)
}

func TestSelectManualMissingQuestion(t *testing.T) {
	s := New(bank(1))
	test := &model.Test{ID: 1, SelectionType: model.SelectionManual, ManualQuestions: []uint{1, 404}}

	_, err := s.Select(context.Background(), test)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConfiguration))
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"404"}, e.Details)
}

func TestSelectRandomDistribution(t *testing.T) {
	s := New(bank(10), WithSource(fixedSource(42)))

	snaps, err := s.Select(context.Background(), randomTest(10, 30, 50, 20))
	require.NoError(t, err)
	require.Len(t, snaps, 10)

	counts := countByDifficulty(snaps)
	assert.Equal(t, 3, counts[model.DifficultyEasy])
	assert.Equal(t, 5, counts[model.DifficultyMedium])
	assert.Equal(t, 2, counts[model.DifficultyHard])
	assert.Zero(t, counts[model.DifficultyExpert])

	seen := map[uint]bool{}
	for _, snap := range snaps {
		assert.False(t, seen[snap.QuestionID], "question %d drawn twice", snap.QuestionID)
		seen[snap.QuestionID] = true
	}
}

func TestSelectRandomShortTierTakesAll(t *testing.T) {
	s := New(bank(2))

	snaps, err := s.Select(context.Background(), randomTest(10, 100, 0, 0))
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestSelectRandomNeverExceedsTotal(t *testing.T) {
	s := New(bank(5))

	snaps, err := s.Select(context.Background(), randomTest(3, 50, 50, 0))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(snaps), 3)
}

func TestSelectDeterministicWithFixedSource(t *testing.T) {
	test := randomTest(6, 50, 50, 0)

	a, err := New(bank(10), WithSource(fixedSource(7))).Select(context.Background(), test)
	require.NoError(t, err)
	b, err := New(bank(10), WithSource(fixedSource(7))).Select(context.Background(), test)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectShufflesOptionsPerAttempt(t *testing.T) {
	catalog := &stubCatalog{questions: []model.Question{{
		ID:   1,
		Type: model.QuestionTypeMultipleChoice,
		Options: []model.Option{
			{Text: "A", IsCorrect: true}, {Text: "B"}, {Text: "C"}, {Text: "D"},
		},
	}}}
	s := New(catalog)
	test := &model.Test{ID: 1, SelectionType: model.SelectionManual, ManualQuestions: []uint{1}}

	orders := map[string]bool{}
	for i := 0; i < 50; i++ {
		snaps, err := s.Select(context.Background(), test)
		require.NoError(t, err)
		require.Len(t, snaps[0].Options, 4)

		var texts []string
		for _, opt := range snaps[0].Options {
			texts = append(texts, opt.Text)
		}
		orders[strings.Join(texts, "")] = true
	}
	assert.Greater(t, len(orders), 1)

	// The catalog copy is never mutated by the shuffle.
	assert.Equal(t, "A", catalog.questions[0].Options[0].Text)
}

func TestSelectUnknownSelectionType(t *testing.T) {
	_, err := New(bank(1)).Select(context.Background(), &model.Test{SelectionType: "weighted"})
	assert.True(t, apperr.Is(err, apperr.CodeConfiguration))
}
