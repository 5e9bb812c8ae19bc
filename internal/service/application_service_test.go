package service

import (
	"context"
	"testing"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRound_GrantsAccessToRoundTest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.seedChoice(t, 1)
	first := f.seedManualTest(t, recruiterID, q.ID)
	second := f.seedManualTest(t, recruiterID, q.ID)
	job := f.seedJob(t, nil)
	app := f.assign(t, 1, job.ID, first.ID, 1)

	svc := NewApplicationService(f.applications, f.tests)
	resp, err := svc.AssignRound(ctx, recruiterID, app.ID, dto.AssignRoundDTO{TestID: second.ID, Round: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Round)

	stored, err := f.applications.FindByCandidateAndCurrentTest(ctx, 1, second.ID)
	require.NoError(t, err)
	assert.True(t, stored.InRound(1))
	assert.True(t, stored.InRound(2))
	require.Len(t, stored.RoundHistory, 2)
	assert.Equal(t, model.RoundAssigned, stored.RoundHistory[1].Status)

	_, err = f.applications.FindByCandidateAndCurrentTest(ctx, 1, first.ID)
	assert.Error(t, err, "the previous round's test is no longer startable")

	assigned, err := NewCandidateService(f.applications, f.tests).GetAssignedTests(ctx, 1)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, second.ID, assigned[0].TestID)
	assert.Equal(t, "Backend Engineer", assigned[0].JobTitle)
}

func TestAssignRound_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.seedChoice(t, 1)
	test := f.seedManualTest(t, recruiterID, q.ID)
	job := f.seedJob(t, nil)
	app := f.assign(t, 1, job.ID, test.ID, 1)
	svc := NewApplicationService(f.applications, f.tests)

	_, err := svc.AssignRound(ctx, recruiterID+1, app.ID, dto.AssignRoundDTO{TestID: test.ID, Round: 2})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.AssignRound(ctx, recruiterID, app.ID, dto.AssignRoundDTO{TestID: 4242, Round: 2})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = svc.AssignRound(ctx, recruiterID, 4242, dto.AssignRoundDTO{TestID: test.ID, Round: 2})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestGetAssignedTests_SkipsDeletedAndUnassigned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.seedChoice(t, 1)
	test := f.seedManualTest(t, recruiterID, q.ID)
	job := f.seedJob(t, nil)
	f.assign(t, 1, job.ID, test.ID, 1)

	other := f.seedJob(t, nil)
	require.NoError(t, f.db.Create(&model.Application{CandidateID: 1, JobID: other.ID, Status: model.ApplicationPending}).Error)

	svc := NewCandidateService(f.applications, f.tests)
	assigned, err := svc.GetAssignedTests(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	require.NoError(t, f.tests.Delete(ctx, test.ID))
	assigned, err = svc.GetAssignedTests(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}
