package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CandidateService interface {
	GetAssignedTests(ctx context.Context, candidateID uint) ([]dto.AssignedTestDTO, error)
}

type candidateService struct {
	applicationRepo repository.ApplicationRepository
	testRepo        repository.TestRepository
}

func NewCandidateService(applicationRepo repository.ApplicationRepository, testRepo repository.TestRepository) CandidateService {
	return &candidateService{applicationRepo: applicationRepo, testRepo: testRepo}
}

// GetAssignedTests lists the current-round test of each of the candidate's
// applications. Only these tests can be started.
func (s *candidateService) GetAssignedTests(ctx context.Context, candidateID uint) ([]dto.AssignedTestDTO, error) {
	applications, err := s.applicationRepo.FindAllByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	resp := []dto.AssignedTestDTO{}
	seen := map[uint]bool{}
	for _, app := range applications {
		if app.CurrentRoundTestID == nil || seen[*app.CurrentRoundTestID] {
			continue
		}
		testID := *app.CurrentRoundTestID
		test, err := s.testRepo.FindByID(ctx, testID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Uint("applicationID", app.ID).Uint("testID", testID).Msg("Assigned test no longer exists")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load test %d: %w", testID, err)
		}
		seen[testID] = true

		item := dto.AssignedTestDTO{
			TestID:          test.ID,
			Title:           test.Title,
			Description:     test.Description,
			DurationMinutes: test.DurationMinutes,
			TestType:        string(test.TestType),
			JobID:           app.JobID,
			ApplicationID:   app.ID,
			Round:           app.Round,
		}
		if app.Job != nil {
			item.JobTitle = app.Job.Title
		}
		resp = append(resp, item)
	}
	return resp, nil
}
