package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/Hireboard/config"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/selection"
	"github.com/lshigami/Hireboard/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const recruiterID uint = 100

type fixture struct {
	db           *gorm.DB
	questions    repository.QuestionRepository
	tests        repository.TestRepository
	attempts     repository.TestAttemptRepository
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	answers      repository.AnswerRepository

	cfg        *config.Config
	attemptSvc *attemptService
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:           db,
		questions:    repository.NewQuestionRepository(db),
		tests:        repository.NewTestRepository(db),
		attempts:     repository.NewTestAttemptRepository(db),
		applications: repository.NewApplicationRepository(db),
		jobs:         repository.NewJobRepository(db),
		answers:      repository.NewAnswerRepository(db),
		cfg:          &config.Config{Attempt: config.Attempt{GraceSeconds: 30}},
		now:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	svc := NewAttemptService(db, f.tests, f.questions, f.attempts, f.applications,
		selection.New(f.questions), NewScoreConverterService(), f.cfg)
	f.attemptSvc = svc.(*attemptService)
	f.attemptSvc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) seedQuestion(t *testing.T, q model.Question) model.Question {
	t.Helper()
	if q.CreatedBy == 0 {
		q.CreatedBy = recruiterID
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyEasy
	}
	require.NoError(t, f.db.Create(&q).Error)
	return q
}

func (f *fixture) seedChoice(t *testing.T, points float64) model.Question {
	return f.seedQuestion(t, model.Question{
		Type:    model.QuestionTypeMultipleChoice,
		Content: "Which HTTP status means Conflict?",
		Points:  points,
		Options: []model.Option{{Text: "404"}, {Text: "409", IsCorrect: true}, {Text: "500"}},
	})
}

func (f *fixture) seedCoding(t *testing.T) model.Question {
	p := func(v float64) *float64 { return &v }
	return f.seedQuestion(t, model.Question{
		Type:             model.QuestionTypeCoding,
		Content:          "Reverse a string",
		Points:           10,
		ScoringLogic:     model.ScoringPartialByTestCase,
		AllowedLanguages: []string{"go"},
		TestCases: []model.TestCase{
			{Input: "ab", ExpectedOutput: "ba", IsPublic: true, Points: p(4)},
			{Input: "abc", ExpectedOutput: "cba", Points: p(6)},
		},
	})
}

func (f *fixture) seedSubjective(t *testing.T) model.Question {
	return f.seedQuestion(t, model.Question{
		Type:             model.QuestionTypeSubjective,
		Content:          "Explain eventual consistency.",
		Points:           10,
		ExpectedKeywords: []string{"replica", "convergence"},
	})
}

func (f *fixture) seedManualTest(t *testing.T, owner uint, questionIDs ...uint) *model.Test {
	t.Helper()
	test := &model.Test{
		Title:           "Screening",
		DurationMinutes: 30,
		SelectionType:   model.SelectionManual,
		TestType:        model.TestTypeBoth,
		ManualQuestions: questionIDs,
		CreatedBy:       owner,
	}
	require.NoError(t, f.db.Create(test).Error)
	return test
}

func (f *fixture) seedRandomTest(t *testing.T, dist model.DifficultyDistribution) *model.Test {
	t.Helper()
	test := &model.Test{
		Title:                  "Random screening",
		DurationMinutes:        45,
		SelectionType:          model.SelectionRandom,
		TestType:               model.TestTypeAptitude,
		DifficultyDistribution: datatypes.NewJSONType(&dist),
		CreatedBy:              recruiterID,
	}
	require.NoError(t, f.db.Create(test).Error)
	return test
}

func (f *fixture) seedJob(t *testing.T, testID *uint) *model.Job {
	t.Helper()
	job := &model.Job{Title: "Backend Engineer", RecruiterID: recruiterID, TestID: testID}
	require.NoError(t, f.db.Create(job).Error)
	return job
}

// assign creates a candidate and an application to job whose current round is testID.
func (f *fixture) assign(t *testing.T, candidateID, jobID, testID uint, round int) *model.Application {
	t.Helper()
	user := &model.User{
		ID:    candidateID,
		Name:  fmt.Sprintf("Candidate %d", candidateID),
		Email: fmt.Sprintf("candidate%d@example.com", candidateID),
		Role:  model.RoleCandidate,
	}
	require.NoError(t, f.db.Create(user).Error)

	tid := testID
	app := &model.Application{
		CandidateID:        candidateID,
		JobID:              jobID,
		Status:             model.ApplicationPending,
		Round:              round,
		CurrentRoundTestID: &tid,
		RoundHistory: []model.RoundEntry{
			{Round: round, TestID: testID, Status: model.RoundAssigned, AssignedAt: f.now},
		},
	}
	require.NoError(t, f.db.Create(app).Error)
	return app
}

// completedAttempt inserts a finished attempt directly, bypassing grading.
func (f *fixture) completedAttempt(t *testing.T, testID, candidateID uint, score float64, took time.Duration) *model.TestAttempt {
	t.Helper()
	started := f.now
	completed := started.Add(took)
	attempt := &model.TestAttempt{
		TestID:          testID,
		CandidateID:     candidateID,
		StartedAt:       started,
		CompletedAt:     &completed,
		DurationMinutes: 30,
		Score:           score,
		QuestionsSnapshot: []model.QuestionSnapshot{
			{QuestionID: 1, Type: model.QuestionTypeSubjective, Points: 10},
		},
	}
	require.NoError(t, f.db.Create(attempt).Error)
	return attempt
}
