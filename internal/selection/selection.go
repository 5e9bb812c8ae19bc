// Package selection builds the frozen question set for a new attempt.
package selection

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/model"
)

// Catalog is the read side of the question bank the selector draws from.
type Catalog interface {
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	FindByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]model.Question, error)
}

type Selector struct {
	catalog   Catalog
	newSource func() rand.Source
}

type Option func(*Selector)

// WithSource overrides the PRNG source factory. Each Select call asks for a new
// source.
func WithSource(fn func() rand.Source) Option {
	return func(s *Selector) { s.newSource = fn }
}

func New(catalog Catalog, opts ...Option) *Selector {
	s := &Selector{
		catalog: catalog,
		newSource: func() rand.Source {
			return rand.NewPCG(rand.Uint64(), rand.Uint64())
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the snapshots for a new attempt of test. Multiple choice options
// are shuffled independently per call.
func (s *Selector) Select(ctx context.Context, test *model.Test) ([]model.QuestionSnapshot, error) {
	rng := rand.New(s.newSource())

	var (
		questions []model.Question
		err       error
	)
	switch test.SelectionType {
	case model.SelectionManual:
		questions, err = s.manual(ctx, test)
	case model.SelectionRandom:
		questions, err = s.random(ctx, test, rng)
	default:
		return nil, apperr.Configuration("test %d has unknown selection type %q", test.ID, test.SelectionType)
	}
	if err != nil {
		return nil, err
	}

	snapshots := make([]model.QuestionSnapshot, 0, len(questions))
	for i := range questions {
		snap := questions[i].Snapshot()
		if snap.Type == model.QuestionTypeMultipleChoice {
			rng.Shuffle(len(snap.Options), func(a, b int) {
				snap.Options[a], snap.Options[b] = snap.Options[b], snap.Options[a]
			})
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func (s *Selector) manual(ctx context.Context, test *model.Test) ([]model.Question, error) {
	ids := []uint(test.ManualQuestions)
	if len(ids) == 0 {
		return nil, apperr.Configuration("test %d has no manual questions", test.ID)
	}
	found, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual questions: %w", err)
	}
	byID := make(map[uint]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	ordered := make([]model.Question, 0, len(ids))
	var missing []string
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			missing = append(missing, fmt.Sprint(id))
			continue
		}
		ordered = append(ordered, q)
	}
	if len(missing) > 0 {
		return nil, apperr.WithDetails(
			apperr.Configuration("test %d references questions that no longer exist", test.ID),
			missing...,
		)
	}
	return ordered, nil
}

func (s *Selector) random(ctx context.Context, test *model.Test, rng *rand.Rand) ([]model.Question, error) {
	dist := test.Distribution()
	if dist == nil {
		return nil, apperr.Configuration("test %d has no difficulty distribution", test.ID)
	}
	counts := Plan(*dist).Draws()

	tiers := []struct {
		difficulty model.Difficulty
		n          int
	}{
		{model.DifficultyEasy, counts.Easy},
		{model.DifficultyMedium, counts.Medium},
		{model.DifficultyHard, counts.Hard},
	}

	var out []model.Question
	for _, tier := range tiers {
		if tier.n <= 0 {
			continue
		}
		pool, err := s.catalog.FindByDifficulty(ctx, tier.difficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s questions: %w", tier.difficulty, err)
		}
		out = append(out, sample(pool, tier.n, rng)...)
	}
	return out, nil
}

// sample draws n questions uniformly without replacement, or all of pool when it
// is smaller.
func sample(pool []model.Question, n int, rng *rand.Rand) []model.Question {
	if n >= len(pool) {
		out := append([]model.Question(nil), pool...)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	out := make([]model.Question, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// Counts is the number of questions requested per difficulty tier.
type Counts struct {
	Easy   int
	Medium int
	Hard   int
}

// Plan computes the per-tier counts for a distribution. Hard absorbs the rounding
// remainder and may come out negative.
func Plan(d model.DifficultyDistribution) Counts {
	total := d.TotalQuestions
	easy := int(math.Round(d.EasyPercent / 100 * float64(total)))
	medium := int(math.Round(d.MediumPercent / 100 * float64(total)))
	return Counts{Easy: easy, Medium: medium, Hard: total - easy - medium}
}

// Draws clamps a plan so the sum never exceeds the planned total: a negative Hard
// count is taken back from Medium, then Easy.
func (c Counts) Draws() Counts {
	if c.Hard >= 0 {
		return c
	}
	over := -c.Hard
	c.Hard = 0
	take := min(over, c.Medium)
	c.Medium -= take
	over -= take
	c.Easy -= min(over, c.Easy)
	return c
}

func (c Counts) Total() int { return c.Easy + c.Medium + c.Hard }
