package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalytics(f *fixture) AnalyticsService {
	return NewAnalyticsService(f.tests, f.jobs, f.applications, f.attempts)
}

func TestGetTestAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	test := f.seedManualTest(t, recruiterID, 1)

	f.completedAttempt(t, test.ID, 1, 80, 20*time.Minute)
	fast := f.completedAttempt(t, test.ID, 2, 90, 10*time.Minute)
	slow := f.completedAttempt(t, test.ID, 3, 90, 15*time.Minute)
	f.completedAttempt(t, test.ID, 4, 40, 5*time.Minute)
	f.completedAttempt(t, test.ID, 5, 60, 25*time.Minute)
	f.completedAttempt(t, test.ID, 6, 70, 30*time.Minute)
	// Open attempts are ignored.
	require.NoError(t, f.db.Create(&model.TestAttempt{TestID: test.ID, CandidateID: 7, StartedAt: f.now, Score: 100}).Error)

	resp, err := newAnalytics(f).GetTestAnalytics(ctx, test.ID, recruiterID)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.TotalAttempts)
	assert.InDelta(t, 71.67, resp.AverageScore, 0.01)
	assert.Equal(t, 90.0, resp.HighestScore)
	assert.Equal(t, 40.0, resp.LowestScore)
	assert.InDelta(t, 17.5*60, resp.AverageDurationSeconds, 0.001)

	require.Len(t, resp.TopPerformers, 5)
	assert.Equal(t, fast.ID, resp.TopPerformers[0].AttemptID)
	assert.Equal(t, slow.ID, resp.TopPerformers[1].AttemptID)
	assert.Equal(t, 80.0, resp.TopPerformers[2].Score)
	assert.Equal(t, 70.0, resp.TopPerformers[3].Score)
	assert.Equal(t, 60.0, resp.TopPerformers[4].Score)
}

func TestGetTestAnalytics_AverageDurationIgnoresZeroLengthAttempts(t *testing.T) {
	f := newFixture(t)
	test := f.seedManualTest(t, recruiterID, 1)
	f.completedAttempt(t, test.ID, 1, 50, 10*time.Minute)
	f.completedAttempt(t, test.ID, 2, 70, 20*time.Minute)
	f.completedAttempt(t, test.ID, 3, 90, 0)

	resp, err := newAnalytics(f).GetTestAnalytics(context.Background(), test.ID, recruiterID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalAttempts)
	assert.InDelta(t, 70.0, resp.AverageScore, 0.001)
	assert.InDelta(t, 15*60, resp.AverageDurationSeconds, 0.001)
}

func TestGetTestAnalytics_NoAttempts(t *testing.T) {
	f := newFixture(t)
	test := f.seedManualTest(t, recruiterID, 1)

	resp, err := newAnalytics(f).GetTestAnalytics(context.Background(), test.ID, recruiterID)
	require.NoError(t, err)
	assert.Zero(t, resp.TotalAttempts)
	assert.Zero(t, resp.AverageScore)
	assert.Empty(t, resp.TopPerformers)
}

func TestGetTestAnalytics_Errors(t *testing.T) {
	f := newFixture(t)
	test := f.seedManualTest(t, recruiterID, 1)
	svc := newAnalytics(f)

	_, err := svc.GetTestAnalytics(context.Background(), test.ID, recruiterID+1)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.GetTestAnalytics(context.Background(), 999, recruiterID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestGetJobAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	test := f.seedManualTest(t, recruiterID, 1)
	other := f.seedManualTest(t, recruiterID, 1)
	job := f.seedJob(t, &test.ID)

	f.assign(t, 1, job.ID, test.ID, 1)
	f.assign(t, 2, job.ID, test.ID, 1)
	roundTwo := f.assign(t, 3, job.ID, test.ID, 2)

	f.completedAttempt(t, test.ID, 1, 50, 10*time.Minute)
	f.completedAttempt(t, test.ID, 2, 75, 12*time.Minute)
	f.completedAttempt(t, test.ID, 3, 75, 8*time.Minute)
	// Attempts on other tests or by outsiders do not count.
	f.completedAttempt(t, other.ID, 1, 100, time.Minute)
	f.completedAttempt(t, test.ID, 99, 100, time.Minute)

	svc := newAnalytics(f)
	resp, err := svc.GetJobAnalytics(ctx, job.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, test.ID, resp.TestID)
	assert.Equal(t, 3, resp.TotalApplications)
	require.Len(t, resp.Candidates, 3)
	assert.Equal(t, uint(3), resp.Candidates[0].CandidateID)
	assert.Equal(t, uint(2), resp.Candidates[1].CandidateID)
	assert.Equal(t, uint(1), resp.Candidates[2].CandidateID)
	assert.Equal(t, "Candidate 3", resp.Candidates[0].CandidateName)
	assert.Equal(t, roundTwo.ID, resp.Candidates[0].ApplicationID)
	assert.Equal(t, 2, resp.Candidates[0].Round)
	assert.InDelta(t, 66.67, resp.AverageScore, 0.01)

	round := 1
	resp, err = svc.GetJobAnalytics(ctx, job.ID, &round)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalApplications)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, uint(2), resp.Candidates[0].CandidateID)

	round = 5
	_, err = svc.GetJobAnalytics(ctx, job.ID, &round)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestGetJobAnalytics_FallsBackToApplicationTest(t *testing.T) {
	f := newFixture(t)
	test := f.seedManualTest(t, recruiterID, 1)
	job := f.seedJob(t, nil)
	f.assign(t, 1, job.ID, test.ID, 1)
	f.completedAttempt(t, test.ID, 1, 42, time.Minute)

	resp, err := newAnalytics(f).GetJobAnalytics(context.Background(), job.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, test.ID, resp.TestID)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, 42.0, resp.Candidates[0].Score)
}

func TestGetJobAnalytics_NoApplications(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)

	_, err := newAnalytics(f).GetJobAnalytics(context.Background(), job.ID, nil)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
