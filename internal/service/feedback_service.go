package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FeedbackService attaches AI feedback to subjective answers on a recruiter's
// request. Scores are never touched.
type FeedbackService interface {
	GenerateFeedback(ctx context.Context, recruiterID, attemptID, questionID uint) (*dto.AnswerResultDTO, error)
}

type feedbackService struct {
	testAttemptRepo repository.TestAttemptRepository
	answerRepo      repository.AnswerRepository
	llm             GeminiLLMService
}

func NewFeedbackService(
	testAttemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
	llm GeminiLLMService,
) FeedbackService {
	return &feedbackService{testAttemptRepo: testAttemptRepo, answerRepo: answerRepo, llm: llm}
}

func (s *feedbackService) GenerateFeedback(ctx context.Context, recruiterID, attemptID, questionID uint) (*dto.AnswerResultDTO, error) {
	attempt, err := s.testAttemptRepo.FindByIDWithDetails(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test attempt %d not found", attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}
	if attempt.Test == nil {
		return nil, apperr.NotFound("test for attempt %d no longer exists", attemptID)
	}
	if attempt.Test.CreatedBy != recruiterID {
		return nil, apperr.Unauthorized("not authorized to review attempt %d", attemptID)
	}
	if attempt.IsOpen() {
		return nil, apperr.Conflict("attempt %d has not been submitted yet", attemptID)
	}

	var question *model.QuestionSnapshot
	for i := range attempt.QuestionsSnapshot {
		if attempt.QuestionsSnapshot[i].QuestionID == questionID {
			question = &attempt.QuestionsSnapshot[i]
			break
		}
	}
	if question == nil {
		return nil, apperr.NotFound("question %d is not part of attempt %d", questionID, attemptID)
	}
	if question.Type != model.QuestionTypeSubjective {
		return nil, apperr.Invalid("AI feedback is only available for subjective questions")
	}

	answer, err := s.answerRepo.FindByTestAttemptIDAndQuestionID(ctx, attemptID, questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no answer to question %d in attempt %d", questionID, attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load answer: %w", err)
	}

	feedback, rating, err := s.llm.ReviewSubjectiveAnswer(ctx, question, answer.SubmittedValue)
	if errors.Is(err, ErrLLMUnavailable) {
		return nil, apperr.Configuration("AI feedback is not configured")
	}
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", questionID).Msg("GenerateFeedback: review failed")
		return nil, fmt.Errorf("failed to generate feedback: %w", err)
	}

	answer.AIFeedback = feedback
	answer.AIRating = &rating
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		log.Error().Err(err).Uint("answerID", answer.ID).Msg("GenerateFeedback: failed to store feedback")
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	resp := toAnswerResult(answer)
	return &resp, nil
}
