package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"gorm.io/gorm"
)

const topPerformersLimit = 5

type AnalyticsService interface {
	GetTestAnalytics(ctx context.Context, testID, recruiterID uint) (*dto.TestAnalyticsDTO, error)
	GetJobAnalytics(ctx context.Context, jobID uint, round *int) (*dto.JobAnalyticsDTO, error)
}

type analyticsService struct {
	testRepo        repository.TestRepository
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
	testAttemptRepo repository.TestAttemptRepository
}

func NewAnalyticsService(
	testRepo repository.TestRepository,
	jobRepo repository.JobRepository,
	applicationRepo repository.ApplicationRepository,
	testAttemptRepo repository.TestAttemptRepository,
) AnalyticsService {
	return &analyticsService{
		testRepo:        testRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		testAttemptRepo: testAttemptRepo,
	}
}

// rankAttempts orders attempts by score descending, faster completion first on ties.
func rankAttempts(attempts []model.TestAttempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Score != attempts[j].Score {
			return attempts[i].Score > attempts[j].Score
		}
		return attempts[i].DurationSeconds() < attempts[j].DurationSeconds()
	})
}

func (s *analyticsService) GetTestAnalytics(ctx context.Context, testID, recruiterID uint) (*dto.TestAnalyticsDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test %d not found", testID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", testID, err)
	}
	if test.CreatedBy != recruiterID {
		return nil, apperr.Unauthorized("not authorized to view analytics for test %d", testID)
	}

	attempts, err := s.testAttemptRepo.FindCompletedByTest(ctx, testID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	resp := &dto.TestAnalyticsDTO{
		TestID:        test.ID,
		TestTitle:     test.Title,
		TotalAttempts: len(attempts),
		TopPerformers: []dto.TopPerformerDTO{},
	}
	if len(attempts) == 0 {
		return resp, nil
	}

	var totalScore, totalDuration float64
	timed := 0
	resp.HighestScore = attempts[0].Score
	resp.LowestScore = attempts[0].Score
	for _, a := range attempts {
		totalScore += a.Score
		// Zero-length attempts carry no timing signal.
		if d := a.DurationSeconds(); d > 0 {
			totalDuration += d
			timed++
		}
		resp.HighestScore = max(resp.HighestScore, a.Score)
		resp.LowestScore = min(resp.LowestScore, a.Score)
	}
	resp.AverageScore = totalScore / float64(len(attempts))
	if timed > 0 {
		resp.AverageDurationSeconds = totalDuration / float64(timed)
	}

	rankAttempts(attempts)
	for _, a := range attempts[:min(topPerformersLimit, len(attempts))] {
		resp.TopPerformers = append(resp.TopPerformers, dto.TopPerformerDTO{
			AttemptID:       a.ID,
			CandidateID:     a.CandidateID,
			Score:           a.Score,
			DurationSeconds: a.DurationSeconds(),
			CompletedAt:     *a.CompletedAt,
		})
	}
	return resp, nil
}

// GetJobAnalytics ranks the candidates of a job on the job's test. When round is
// given, only applications that went through that round are considered.
func (s *analyticsService) GetJobAnalytics(ctx context.Context, jobID uint, round *int) (*dto.JobAnalyticsDTO, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("job %d not found", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %d: %w", jobID, err)
	}

	applications, err := s.applicationRepo.FindAllByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	if round != nil {
		filtered := applications[:0]
		for _, app := range applications {
			if app.InRound(*round) {
				filtered = append(filtered, app)
			}
		}
		applications = filtered
	}
	if len(applications) == 0 {
		return nil, apperr.NotFound("no applications found for job %d", jobID)
	}

	var testID uint
	switch {
	case job.TestID != nil:
		testID = *job.TestID
	case applications[0].CurrentRoundTestID != nil:
		testID = *applications[0].CurrentRoundTestID
	default:
		return nil, apperr.NotFound("no test is assigned to job %d", jobID)
	}
	test, err := s.testRepo.FindByID(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test %d not found", testID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", testID, err)
	}

	byCandidate := make(map[uint]*model.Application, len(applications))
	candidateIDs := make([]uint, 0, len(applications))
	for i := range applications {
		byCandidate[applications[i].CandidateID] = &applications[i]
		candidateIDs = append(candidateIDs, applications[i].CandidateID)
	}

	attempts, err := s.testAttemptRepo.FindCompletedByTest(ctx, testID, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	rankAttempts(attempts)

	resp := &dto.JobAnalyticsDTO{
		JobID:             job.ID,
		JobTitle:          job.Title,
		Round:             round,
		TestID:            test.ID,
		TestTitle:         test.Title,
		TotalApplications: len(applications),
		TotalAttempts:     len(attempts),
		Candidates:        make([]dto.CandidateResultDTO, 0, len(attempts)),
	}
	var totalScore float64
	for _, a := range attempts {
		totalScore += a.Score
		app := byCandidate[a.CandidateID]
		result := dto.CandidateResultDTO{
			AttemptID:         a.ID,
			CandidateID:       a.CandidateID,
			ApplicationID:     app.ID,
			ApplicationStatus: app.Status,
			Round:             app.Round,
			Score:             a.Score,
			DurationSeconds:   a.DurationSeconds(),
			CompletedAt:       *a.CompletedAt,
		}
		if app.Candidate != nil {
			result.CandidateName = app.Candidate.Name
			result.CandidateEmail = app.Candidate.Email
		}
		resp.Candidates = append(resp.Candidates, result)
	}
	if len(attempts) > 0 {
		resp.AverageScore = totalScore / float64(len(attempts))
	}
	return resp, nil
}
