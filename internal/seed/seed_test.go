package seed

import (
	"context"
	"testing"

	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/service"
	"github.com/lshigami/Hireboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(t *testing.T) (*Seeder, repository.ApplicationRepository, repository.QuestionRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	questions := repository.NewQuestionRepository(db)
	tests := repository.NewTestRepository(db)
	applications := repository.NewApplicationRepository(db)
	return &Seeder{
		Users:        repository.NewUserRepository(db),
		Jobs:         repository.NewJobRepository(db),
		Applications: applications,
		Questions:    service.NewQuestionService(questions),
		Tests:        service.NewTestService(tests, questions),
		Rounds:       service.NewApplicationService(applications, tests),
	}, applications, questions
}

func TestRun_LoadsFixtureFile(t *testing.T) {
	f, err := Load("testdata/seed.yaml")
	require.NoError(t, err)
	require.Len(t, f.Questions, 2)

	s, applications, questions := newSeeder(t)
	ctx := context.Background()
	res, err := s.Run(ctx, f)
	require.NoError(t, err)

	assert.Len(t, res.Users, 2)
	assert.Equal(t, model.RoleCandidate, res.Users["cam"].Role)

	coding, err := questions.FindByID(ctx, res.Questions["reverse"])
	require.NoError(t, err)
	assert.Equal(t, model.QuestionTypeCoding, coding.Type)
	assert.Equal(t, model.ScoringPartialByTestCase, coding.ScoringLogic)
	assert.Equal(t, 10.0, coding.TestCasePointsTotal())

	app, err := applications.FindByCandidateAndCurrentTest(ctx, res.Users["cam"].ID, res.Tests["screening"])
	require.NoError(t, err)
	assert.Equal(t, 1, app.Round)
	require.Len(t, app.RoundHistory, 1)
}

func TestRun_RejectsBadReferences(t *testing.T) {
	ctx := context.Background()
	base := func() *File {
		return &File{
			Users: []User{
				{Key: "rita", Name: "Rita", Email: "rita@hireboard.test", Role: model.RoleRecruiter},
				{Key: "cam", Name: "Cam", Email: "cam@hireboard.test", Role: model.RoleCandidate},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(f *File)
		errMsg string
	}{
		{"job owned by candidate", func(f *File) {
			f.Jobs = []Job{{Key: "j", Title: "x", Recruiter: "cam"}}
		}, "is a candidate"},
		{"unknown question in test", func(f *File) {
			f.Tests = []Test{{Key: "t", Owner: "rita", Questions: []string{"nope"}, Spec: map[string]any{"title": "t"}}}
		}, `unknown question "nope"`},
		{"invalid question", func(f *File) {
			f.Questions = []Question{{Key: "q", Owner: "rita", Spec: map[string]any{
				"type": "Multiple Choice", "content": "?", "difficulty": "Easy", "points": 1,
			}}}
		}, `question "q"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newSeeder(t)
			f := base()
			tc.mutate(f)
			_, err := s.Run(ctx, f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
