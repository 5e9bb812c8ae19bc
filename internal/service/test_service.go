package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const percentTolerance = 0.1

type TestService interface {
	CreateTest(ctx context.Context, recruiterID uint, req dto.TestUpsertDTO) (*dto.TestResponseDTO, error)
	GetTest(ctx context.Context, id, recruiterID uint) (*dto.TestResponseDTO, error)
	ListTests(ctx context.Context, recruiterID uint) ([]dto.TestResponseDTO, error)
	UpdateTest(ctx context.Context, id, recruiterID uint, req dto.TestUpsertDTO) (*dto.TestResponseDTO, error)
	DeleteTest(ctx context.Context, id, recruiterID uint) error
}

type testService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) TestService {
	return &testService{testRepo: testRepo, questionRepo: questionRepo}
}

func (s *testService) CreateTest(ctx context.Context, recruiterID uint, req dto.TestUpsertDTO) (*dto.TestResponseDTO, error) {
	test, err := s.buildTest(ctx, req)
	if err != nil {
		return nil, err
	}
	test.CreatedBy = recruiterID

	if err := s.testRepo.Create(ctx, test); err != nil {
		log.Error().Err(err).Msg("Failed to create test")
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	log.Info().Uint("testID", test.ID).Str("selectionType", string(test.SelectionType)).Msg("Test created")
	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) GetTest(ctx context.Context, id, recruiterID uint) (*dto.TestResponseDTO, error) {
	test, err := s.findOwned(ctx, id, recruiterID)
	if err != nil {
		return nil, err
	}
	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) ListTests(ctx context.Context, recruiterID uint) ([]dto.TestResponseDTO, error) {
	tests, err := s.testRepo.FindAllByCreator(ctx, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	resp := make([]dto.TestResponseDTO, 0, len(tests))
	for i := range tests {
		resp = append(resp, toTestResponse(&tests[i]))
	}
	return resp, nil
}

func (s *testService) UpdateTest(ctx context.Context, id, recruiterID uint, req dto.TestUpsertDTO) (*dto.TestResponseDTO, error) {
	existing, err := s.findOwned(ctx, id, recruiterID)
	if err != nil {
		return nil, err
	}
	test, err := s.buildTest(ctx, req)
	if err != nil {
		return nil, err
	}
	test.ID = existing.ID
	test.CreatedBy = existing.CreatedBy
	test.CreatedAt = existing.CreatedAt

	if err := s.testRepo.Update(ctx, test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to update test")
		return nil, fmt.Errorf("failed to update test %d: %w", id, err)
	}
	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) DeleteTest(ctx context.Context, id, recruiterID uint) error {
	if _, err := s.findOwned(ctx, id, recruiterID); err != nil {
		return err
	}
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test %d: %w", id, err)
	}
	return nil
}

func (s *testService) findOwned(ctx context.Context, id, recruiterID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", id, err)
	}
	if test.CreatedBy != recruiterID {
		return nil, apperr.Unauthorized("not authorized to access test %d", id)
	}
	return test, nil
}

// buildTest validates the selection config. Violations are configuration errors;
// the field not matching SelectionType is stored as absent.
func (s *testService) buildTest(ctx context.Context, req dto.TestUpsertDTO) (*model.Test, error) {
	test := &model.Test{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		SelectionType:   model.SelectionType(req.SelectionType),
		TestType:        model.TestType(req.TestType),
	}
	if test.TestType == "" {
		test.TestType = model.TestTypeAptitude
	}
	if test.DurationMinutes <= 0 {
		return nil, apperr.Configuration("duration must be positive")
	}

	switch test.SelectionType {
	case model.SelectionManual:
		if req.DifficultyDistribution != nil {
			return nil, apperr.Configuration("manual tests cannot have a difficulty distribution")
		}
		if err := s.validateManual(ctx, req.ManualQuestions); err != nil {
			return nil, err
		}
		test.ManualQuestions = datatypes.JSONSlice[uint](append([]uint(nil), req.ManualQuestions...))

	case model.SelectionRandom:
		if len(req.ManualQuestions) > 0 {
			return nil, apperr.Configuration("random tests cannot have manual questions")
		}
		dist, err := validateDistribution(req.DifficultyDistribution)
		if err != nil {
			return nil, err
		}
		test.DifficultyDistribution = datatypes.NewJSONType(dist)

	default:
		return nil, apperr.Configuration("unknown selection type %q", req.SelectionType)
	}
	return test, nil
}

func (s *testService) validateManual(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return apperr.Configuration("manual tests need at least one question")
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return apperr.Configuration("question %d is listed more than once", id)
		}
		seen[id] = true
	}

	found, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check manual questions: %w", err)
	}
	if len(found) == len(ids) {
		return nil
	}
	exists := make(map[uint]bool, len(found))
	for _, q := range found {
		exists[q.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !exists[id] {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return apperr.WithDetails(apperr.Configuration("manual questions do not exist"), missing...)
}

func validateDistribution(d *dto.DifficultyDistributionDTO) (*model.DifficultyDistribution, error) {
	if d == nil {
		return nil, apperr.Configuration("random tests need a difficulty distribution")
	}
	if d.TotalQuestions < 1 {
		return nil, apperr.Configuration("total questions must be at least 1")
	}
	for _, pct := range []float64{d.EasyPercent, d.MediumPercent, d.HardPercent} {
		if pct < 0 || pct > 100 {
			return nil, apperr.Configuration("difficulty percentages must be between 0 and 100")
		}
	}
	if sum := d.EasyPercent + d.MediumPercent + d.HardPercent; math.Abs(sum-100) > percentTolerance {
		return nil, apperr.Configuration("difficulty percentages must add up to 100, got %.2f", sum)
	}
	return &model.DifficultyDistribution{
		TotalQuestions: d.TotalQuestions,
		EasyPercent:    d.EasyPercent,
		MediumPercent:  d.MediumPercent,
		HardPercent:    d.HardPercent,
	}, nil
}
