package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ApplicationService interface {
	// AssignRound moves an application to a new round and grants the candidate
	// access to the round's test.
	AssignRound(ctx context.Context, recruiterID, applicationID uint, req dto.AssignRoundDTO) (*dto.ApplicationResponseDTO, error)
}

type applicationService struct {
	applicationRepo repository.ApplicationRepository
	testRepo        repository.TestRepository
}

func NewApplicationService(applicationRepo repository.ApplicationRepository, testRepo repository.TestRepository) ApplicationService {
	return &applicationService{applicationRepo: applicationRepo, testRepo: testRepo}
}

func (s *applicationService) AssignRound(ctx context.Context, recruiterID, applicationID uint, req dto.AssignRoundDTO) (*dto.ApplicationResponseDTO, error) {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("application %d not found", applicationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load application %d: %w", applicationID, err)
	}
	if application.Job == nil || application.Job.RecruiterID != recruiterID {
		return nil, apperr.Unauthorized("not authorized to manage application %d", applicationID)
	}

	if _, err := s.testRepo.FindByID(ctx, req.TestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test %d not found", req.TestID)
		}
		return nil, fmt.Errorf("failed to load test %d: %w", req.TestID, err)
	}

	testID := req.TestID
	application.Round = req.Round
	application.CurrentRoundTestID = &testID
	application.RoundHistory = append(application.RoundHistory, model.RoundEntry{
		Round:      req.Round,
		TestID:     req.TestID,
		Status:     model.RoundAssigned,
		AssignedAt: time.Now(),
	})

	if err := s.applicationRepo.Update(ctx, application); err != nil {
		log.Error().Err(err).Uint("applicationID", applicationID).Msg("Failed to assign round")
		return nil, fmt.Errorf("failed to update application %d: %w", applicationID, err)
	}
	log.Info().Uint("applicationID", applicationID).Int("round", req.Round).Uint("testID", req.TestID).Msg("Round assigned")

	var resp dto.ApplicationResponseDTO
	copyInto(&resp, application)
	return &resp, nil
}
