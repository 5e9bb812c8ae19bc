package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Hireboard/config"
	"github.com/lshigami/Hireboard/internal/apperr"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/grading"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/selection"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService drives an attempt through NotStarted -> Open -> Completed and
// publishes results to candidates.
type AttemptService interface {
	StartAttempt(ctx context.Context, candidateID, testID uint) (*dto.TestAttemptDTO, error)
	SubmitAttempt(ctx context.Context, attemptID, candidateID uint, req dto.TestAttemptSubmitDTO) (*dto.SubmitResultDTO, error)
	GetAttemptsByCandidate(ctx context.Context, candidateID uint) ([]dto.TestAttemptSummaryDTO, error)
	ReleaseResults(ctx context.Context, recruiterID uint, req dto.ReleaseResultsDTO) (*dto.ReleaseResultsResponseDTO, error)
}

type attemptService struct {
	db              *gorm.DB
	testRepo        repository.TestRepository
	questionRepo    repository.QuestionRepository
	testAttemptRepo repository.TestAttemptRepository
	applicationRepo repository.ApplicationRepository
	selector        *selection.Selector
	scoreConverter  ScoreConverterService
	policy          config.Attempt
	now             func() time.Time
}

func NewAttemptService(
	db *gorm.DB,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	testAttemptRepo repository.TestAttemptRepository,
	applicationRepo repository.ApplicationRepository,
	selector *selection.Selector,
	scoreConverter ScoreConverterService,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		db:              db,
		testRepo:        testRepo,
		questionRepo:    questionRepo,
		testAttemptRepo: testAttemptRepo,
		applicationRepo: applicationRepo,
		selector:        selector,
		scoreConverter:  scoreConverter,
		policy:          cfg.Attempt,
		now:             time.Now,
	}
}

// StartAttempt opens an attempt or returns the candidate's existing open one.
func (s *attemptService) StartAttempt(ctx context.Context, candidateID, testID uint) (*dto.TestAttemptDTO, error) {
	application, err := s.applicationRepo.FindByCandidateAndCurrentTest(ctx, candidateID, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("you do not have access to test %d", testID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	test, err := s.testRepo.FindByID(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test %d not found", testID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test %d: %w", testID, err)
	}

	open, err := s.testAttemptRepo.FindOpen(ctx, testID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open attempt: %w", err)
	}
	if open != nil {
		log.Info().Uint("attemptID", open.ID).Uint("candidateID", candidateID).Msg("Resuming open attempt")
		resp := toAttemptDTO(open)
		return &resp, nil
	}

	snapshots, err := s.selector.Select(ctx, test)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("StartAttempt: question selection failed")
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, apperr.Configuration("no questions are available for test %d", testID)
	}

	attempt := &model.TestAttempt{
		TestID:            testID,
		CandidateID:       candidateID,
		Round:             application.Round,
		QuestionsSnapshot: snapshots,
		StartedAt:         s.now(),
		DurationMinutes:   test.DurationMinutes,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.testAttemptRepo.WithTx(tx).Create(ctx, attempt); err != nil {
			return err
		}
		return s.applicationRepo.WithTx(tx).UpdateStatus(ctx, application.ID, model.ApplicationInProgress)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race to a concurrent start; hand back the winner.
		winner, findErr := s.testAttemptRepo.FindOpen(ctx, testID, candidateID)
		if findErr != nil {
			return nil, fmt.Errorf("failed to load concurrent attempt: %w", findErr)
		}
		if winner == nil {
			return nil, apperr.Conflict("attempt for test %d was modified concurrently, retry", testID)
		}
		resp := toAttemptDTO(winner)
		return &resp, nil
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("candidateID", candidateID).Msg("StartAttempt: transaction failed")
		return nil, fmt.Errorf("failed to start attempt: %w", err)
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("testID", testID).
		Uint("candidateID", candidateID).
		Int("questions", len(snapshots)).
		Msg("Attempt started")
	resp := toAttemptDTO(attempt)
	return &resp, nil
}

// SubmitAttempt grades the answers against the live question catalog and closes
// the attempt. Answers to questions that are not part of the attempt, that were
// already answered in the same submission, or that no longer exist are skipped.
func (s *attemptService) SubmitAttempt(ctx context.Context, attemptID, candidateID uint, req dto.TestAttemptSubmitDTO) (*dto.SubmitResultDTO, error) {
	attempt, err := s.testAttemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("test attempt %d not found", attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}
	if attempt.CandidateID != candidateID {
		return nil, apperr.Unauthorized("not authorized to submit attempt %d", attemptID)
	}
	if !attempt.IsOpen() {
		return nil, apperr.Conflict("attempt %d has already been submitted", attemptID)
	}

	now := s.now()
	if s.policy.EnforceDeadline {
		grace := time.Duration(s.policy.GraceSeconds) * time.Second
		if now.After(attempt.Deadline().Add(grace)) {
			return nil, apperr.Conflict("time limit for attempt %d has expired", attemptID)
		}
	}

	// Only the first answer to each question of the attempt is graded. Repeats and
	// questions outside the snapshot are reported as skipped.
	inAttempt := make(map[uint]bool, len(attempt.QuestionsSnapshot))
	for _, q := range attempt.QuestionsSnapshot {
		inAttempt[q.QuestionID] = true
	}
	var (
		accepted []dto.SubmittedAnswerDTO
		skipped  []uint
	)
	seen := make(map[uint]bool, len(req.Answers))
	for _, a := range req.Answers {
		if !inAttempt[a.QuestionID] || seen[a.QuestionID] {
			skipped = append(skipped, a.QuestionID)
			continue
		}
		seen[a.QuestionID] = true
		accepted = append(accepted, a)
	}

	ids := make([]uint, 0, len(accepted))
	for _, a := range accepted {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var (
		answers []model.Answer
		score   float64
	)
	for _, submitted := range accepted {
		question, ok := byID[submitted.QuestionID]
		if !ok {
			skipped = append(skipped, submitted.QuestionID)
			continue
		}
		resp := grading.ResponseFor(question, submitted.SelectedOption, submitted.TestCaseResults)
		result := grading.Grade(question, resp)

		answer := model.Answer{
			QuestionID:     question.ID,
			SubmittedValue: submitted.SelectedOption,
			IsCorrect:      result.IsCorrect,
			PointsAwarded:  result.PointsAwarded,
		}
		if code, isCode := resp.(grading.CodeResponse); isCode && !code.Malformed {
			answer.TestCaseResults = code.Results
		}
		answers = append(answers, answer)
		score += result.PointsAwarded
	}
	if len(skipped) > 0 {
		log.Warn().
			Uint("attemptID", attemptID).
			Int("skipped", len(skipped)).
			Uints("questionIDs", skipped).
			Msg("SubmitAttempt: skipping repeated, foreign or deleted questions")
	}

	attempt.Score = score
	attempt.CompletedAt = &now
	completed, err := s.testAttemptRepo.Complete(ctx, attempt, answers)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("SubmitAttempt: failed to persist submission")
		return nil, fmt.Errorf("failed to submit attempt %d: %w", attemptID, err)
	}
	if !completed {
		return nil, apperr.Conflict("attempt %d has already been submitted", attemptID)
	}

	log.Info().Uint("attemptID", attemptID).Float64("score", score).Int("answers", len(answers)).Msg("Attempt submitted")
	return &dto.SubmitResultDTO{
		AttemptID:          attempt.ID,
		CompletedAt:        now,
		AnsweredCount:      len(answers),
		SkippedQuestionIDs: skipped,
	}, nil
}

func (s *attemptService) GetAttemptsByCandidate(ctx context.Context, candidateID uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.testAttemptRepo.FindAllByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	resp := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		resp = append(resp, s.toSummary(&attempts[i]))
	}
	return resp, nil
}

func (s *attemptService) toSummary(a *model.TestAttempt) dto.TestAttemptSummaryDTO {
	summary := dto.TestAttemptSummaryDTO{
		ID:              a.ID,
		TestID:          a.TestID,
		Round:           a.Round,
		StartedAt:       a.StartedAt,
		CompletedAt:     a.CompletedAt,
		Status:          "in_progress",
		ResultsReleased: a.ResultsReleased,
	}
	if a.Test != nil {
		summary.TestTitle = a.Test.Title
	}
	if !a.IsOpen() {
		summary.Status = "completed"
	}
	if !a.ResultsReleased || a.IsOpen() {
		return summary
	}

	score := a.Score
	maxScore := a.MaxPoints()
	summary.Score = &score
	summary.MaxScore = &maxScore
	if pct, err := s.scoreConverter.ToPercentage(score, maxScore); err == nil {
		summary.Percentage = &pct
	} else {
		log.Warn().Err(err).Uint("attemptID", a.ID).Msg("Could not compute score percentage")
	}
	for i := range a.Answers {
		summary.Answers = append(summary.Answers, toAnswerResult(&a.Answers[i]))
	}
	return summary
}

// ReleaseResults publishes scores for one attempt or every attempt of a test. The
// recruiter must own the test of every resolvable attempt; otherwise nothing is
// released.
func (s *attemptService) ReleaseResults(ctx context.Context, recruiterID uint, req dto.ReleaseResultsDTO) (*dto.ReleaseResultsResponseDTO, error) {
	if req.AttemptID == nil && req.TestID == nil {
		return nil, apperr.Invalid("either attempt_id or test_id is required")
	}

	attempts, err := s.testAttemptRepo.FindForRelease(ctx, repository.ReleaseFilter{
		AttemptID: req.AttemptID,
		TestID:    req.TestID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for release: %w", err)
	}

	var (
		authorized []uint
		skipped    int
	)
	for _, a := range attempts {
		if a.Test == nil {
			skipped++
			log.Warn().Uint("attemptID", a.ID).Uint("testID", a.TestID).Msg("ReleaseResults: test no longer exists, skipping attempt")
			continue
		}
		if a.Test.CreatedBy != recruiterID {
			log.Warn().Uint("attemptID", a.ID).Uint("recruiterID", recruiterID).Msg("ReleaseResults: recruiter does not own the test")
			return nil, apperr.Unauthorized("not authorized to release results for attempt %d", a.ID)
		}
		authorized = append(authorized, a.ID)
	}

	if len(authorized) == 0 {
		return nil, apperr.WithDetails(
			apperr.NotFound("no attempts found to release"),
			fmt.Sprintf("total attempts: %d", len(attempts)),
			fmt.Sprintf("skipped attempts: %d", skipped),
		)
	}

	updated, err := s.testAttemptRepo.MarkResultsReleased(ctx, authorized)
	if err != nil {
		log.Error().Err(err).Int("attempts", len(authorized)).Msg("ReleaseResults: update failed")
		return nil, fmt.Errorf("failed to release results: %w", err)
	}

	log.Info().Int64("updated", updated).Int("skipped", skipped).Msg("Results released")
	return &dto.ReleaseResultsResponseDTO{
		UpdatedCount:  updated,
		SkippedCount:  skipped,
		TotalAttempts: len(attempts),
	}, nil
}
