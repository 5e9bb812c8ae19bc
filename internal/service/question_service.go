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

const (
	defaultTimeLimitSeconds = 2.0
	defaultMemoryLimitMB    = 256
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, recruiterID uint, req dto.QuestionUpsertDTO) (*dto.QuestionResponseDTO, error)
	GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponseDTO, error)
	GetAllQuestions(ctx context.Context, filter repository.QuestionFilter) ([]dto.QuestionResponseDTO, error)
	UpdateQuestion(ctx context.Context, id, recruiterID uint, req dto.QuestionUpsertDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(ctx context.Context, id, recruiterID uint) error
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) CreateQuestion(ctx context.Context, recruiterID uint, req dto.QuestionUpsertDTO) (*dto.QuestionResponseDTO, error) {
	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.CreatedBy = recruiterID

	if err := s.repo.Create(ctx, question); err != nil {
		log.Error().Err(err).Msg("Failed to create question in service")
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponseDTO, error) {
	question, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) GetAllQuestions(ctx context.Context, filter repository.QuestionFilter) ([]dto.QuestionResponseDTO, error) {
	questions, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	resp := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		resp = append(resp, toQuestionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id, recruiterID uint, req dto.QuestionUpsertDTO) (*dto.QuestionResponseDTO, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != recruiterID {
		return nil, apperr.Unauthorized("not authorized to update question %d", id)
	}

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.ID = existing.ID
	question.CreatedBy = existing.CreatedBy
	question.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

// DeleteQuestion soft-deletes the question. Attempts already started keep their
// snapshot; submissions referencing it afterwards skip the answer.
func (s *questionService) DeleteQuestion(ctx context.Context, id, recruiterID uint) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != recruiterID {
		return apperr.Unauthorized("not authorized to delete question %d", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

func (s *questionService) find(ctx context.Context, id uint) (*model.Question, error) {
	question, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("question %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load question %d: %w", id, err)
	}
	return question, nil
}

// buildQuestion maps a request to a model, applying per-type defaults and the
// write-time checks.
func buildQuestion(req dto.QuestionUpsertDTO) (*model.Question, error) {
	q := &model.Question{
		Type:       model.QuestionType(req.Type),
		Content:    req.Content,
		Difficulty: model.Difficulty(req.Difficulty),
		Points:     req.Points,
		Tags:       req.Tags,
	}
	if q.Points < 1 {
		return nil, apperr.Invalid("points must be at least 1")
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		if len(req.Options) < 2 {
			return nil, apperr.Invalid("multiple choice questions need at least 2 options")
		}
		correct := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correct++
			}
			q.Options = append(q.Options, model.Option{Text: opt.Text, IsCorrect: opt.IsCorrect})
		}
		if correct != 1 {
			return nil, apperr.Invalid("multiple choice questions need exactly one correct option, got %d", correct)
		}

	case model.QuestionTypeCoding:
		if err := applyCoding(q, req); err != nil {
			return nil, err
		}

	case model.QuestionTypeSubjective:
		if req.MaxWordCount != nil && *req.MaxWordCount < 10 {
			return nil, apperr.Invalid("max word count must be at least 10")
		}
		q.ExpectedKeywords = req.ExpectedKeywords
		q.MaxWordCount = req.MaxWordCount

	default:
		return nil, apperr.Invalid("unknown question type %q", req.Type)
	}
	return q, nil
}

func applyCoding(q *model.Question, req dto.QuestionUpsertDTO) error {
	if len(req.TestCases) == 0 {
		return apperr.Invalid("coding questions need at least one test case")
	}
	if len(req.AllowedLanguages) == 0 {
		return apperr.Invalid("coding questions need at least one allowed language")
	}

	q.ScoringLogic = model.ScoringLogic(req.ScoringLogic)
	if q.ScoringLogic == "" {
		q.ScoringLogic = model.ScoringPartialByTestCase
	}
	q.TimeLimitSeconds = defaultTimeLimitSeconds
	if req.TimeLimitSeconds != nil {
		q.TimeLimitSeconds = *req.TimeLimitSeconds
	}
	if q.TimeLimitSeconds < 0.5 || q.TimeLimitSeconds > 30 {
		return apperr.Invalid("time limit must be between 0.5 and 30 seconds")
	}
	q.MemoryLimitMB = defaultMemoryLimitMB
	if req.MemoryLimitMB != nil {
		q.MemoryLimitMB = *req.MemoryLimitMB
	}
	if q.MemoryLimitMB < 64 || q.MemoryLimitMB > 1024 {
		return apperr.Invalid("memory limit must be between 64 and 1024 MB")
	}

	for _, tc := range req.TestCases {
		if tc.Points != nil && *tc.Points < 0 {
			return apperr.Invalid("test case points cannot be negative")
		}
		q.TestCases = append(q.TestCases, model.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			IsPublic:       tc.IsPublic,
			Points:         tc.Points,
		})
	}
	for _, ex := range req.Examples {
		q.Examples = append(q.Examples, model.Example{Input: ex.Input, Output: ex.Output, Explanation: ex.Explanation})
	}
	q.Constraints = req.Constraints
	q.AllowedLanguages = req.AllowedLanguages
	q.Hints = req.Hints
	if len(req.TemplateCode) > 0 {
		q.TemplateCode = datatypes.NewJSONType(req.TemplateCode)
	}

	if q.ScoringLogic == model.ScoringPartialByTestCase {
		if total := q.TestCasePointsTotal(); math.Abs(total-q.Points) > 1e-9 {
			log.Warn().
				Float64("points", q.Points).
				Float64("testCasePoints", total).
				Msg("Test case points do not add up to question points")
		}
	}
	return nil
}
