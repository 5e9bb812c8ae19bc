package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/rs/zerolog/log"
)

func toQuestionResponse(q *model.Question) dto.QuestionResponseDTO {
	resp := dto.QuestionResponseDTO{
		ID:               q.ID,
		Type:             string(q.Type),
		Content:          q.Content,
		Difficulty:       string(q.Difficulty),
		Points:           q.Points,
		Tags:             q.Tags,
		CreatedBy:        q.CreatedBy,
		Constraints:      q.Constraints,
		AllowedLanguages: q.AllowedLanguages,
		TemplateCode:     q.TemplateCode.Data(),
		TimeLimitSeconds: q.TimeLimitSeconds,
		MemoryLimitMB:    q.MemoryLimitMB,
		ScoringLogic:     string(q.ScoringLogic),
		Hints:            q.Hints,
		ExpectedKeywords: q.ExpectedKeywords,
		MaxWordCount:     q.MaxWordCount,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
	copyInto(&resp.Options, []model.Option(q.Options))
	copyInto(&resp.Examples, []model.Example(q.Examples))
	copyInto(&resp.TestCases, []model.TestCase(q.TestCases))
	return resp
}

func toTestResponse(t *model.Test) dto.TestResponseDTO {
	resp := dto.TestResponseDTO{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		TestType:        string(t.TestType),
		SelectionType:   string(t.SelectionType),
		ManualQuestions: t.ManualQuestions,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if dist := t.Distribution(); dist != nil {
		resp.DifficultyDistribution = &dto.DifficultyDistributionDTO{}
		copyInto(resp.DifficultyDistribution, dist)
	}
	return resp
}

// toCandidateQuestion strips the answer key and hidden test cases from a snapshot.
func toCandidateQuestion(s *model.QuestionSnapshot) dto.CandidateQuestionDTO {
	q := dto.CandidateQuestionDTO{
		QuestionID:       s.QuestionID,
		Type:             string(s.Type),
		Content:          s.Content,
		Difficulty:       string(s.Difficulty),
		Points:           s.Points,
		Constraints:      s.Constraints,
		AllowedLanguages: s.AllowedLanguages,
		TemplateCode:     s.TemplateCode,
		TimeLimitSeconds: s.TimeLimitSeconds,
		MemoryLimitMB:    s.MemoryLimitMB,
		Hints:            s.Hints,
		MaxWordCount:     s.MaxWordCount,
	}
	for _, opt := range s.Options {
		q.Options = append(q.Options, dto.CandidateOptionDTO{Text: opt.Text})
	}
	copyInto(&q.Examples, s.Examples)
	for _, tc := range s.TestCases {
		if tc.IsPublic {
			q.PublicTestCases = append(q.PublicTestCases, dto.PublicTestCaseDTO{
				Input:          tc.Input,
				ExpectedOutput: tc.ExpectedOutput,
			})
		}
	}
	return q
}

func toAttemptDTO(a *model.TestAttempt) dto.TestAttemptDTO {
	resp := dto.TestAttemptDTO{
		ID:              a.ID,
		TestID:          a.TestID,
		Round:           a.Round,
		StartedAt:       a.StartedAt,
		DurationMinutes: a.DurationMinutes,
		Deadline:        a.Deadline(),
		Questions:       make([]dto.CandidateQuestionDTO, 0, len(a.QuestionsSnapshot)),
	}
	for i := range a.QuestionsSnapshot {
		resp.Questions = append(resp.Questions, toCandidateQuestion(&a.QuestionsSnapshot[i]))
	}
	return resp
}

func toAnswerResult(a *model.Answer) dto.AnswerResultDTO {
	var resp dto.AnswerResultDTO
	copyInto(&resp, a)
	if a.TestCaseResults != nil {
		passed := 0
		for _, r := range a.TestCaseResults {
			if r.Passed {
				passed++
			}
		}
		resp.TestCasesPassed = &passed
	}
	return resp
}

func copyInto(to, from interface{}) {
	if err := copier.Copy(to, from); err != nil {
		log.Error().Err(err).Msg("Failed to map model to DTO")
	}
}
