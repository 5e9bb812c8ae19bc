package dto

import "time"

// --- Candidate-facing views. Answer keys and hidden test cases never leave the server. ---

type CandidateOptionDTO struct {
	Text string `json:"text"`
}

type PublicTestCaseDTO struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// CandidateQuestionDTO is a frozen question as presented inside an attempt.
type CandidateQuestionDTO struct {
	QuestionID       uint                 `json:"question_id"`
	Type             string               `json:"type"`
	Content          string               `json:"content"`
	Difficulty       string               `json:"difficulty"`
	Points           float64              `json:"points"`
	Options          []CandidateOptionDTO `json:"options,omitempty"`
	Constraints      string               `json:"constraints,omitempty"`
	Examples         []ExampleDTO         `json:"examples,omitempty"`
	PublicTestCases  []PublicTestCaseDTO  `json:"public_test_cases,omitempty"`
	AllowedLanguages []string             `json:"allowed_languages,omitempty"`
	TemplateCode     map[string]string    `json:"template_code,omitempty"`
	TimeLimitSeconds float64              `json:"time_limit_seconds,omitempty"`
	MemoryLimitMB    int                  `json:"memory_limit_mb,omitempty"`
	Hints            []string             `json:"hints,omitempty"`
	MaxWordCount     *int                 `json:"max_word_count,omitempty"`
}

// TestAttemptDTO is returned when an attempt is started or resumed.
type TestAttemptDTO struct {
	ID              uint                   `json:"id"`
	TestID          uint                   `json:"test_id"`
	Round           int                    `json:"round"`
	StartedAt       time.Time              `json:"started_at"`
	DurationMinutes int                    `json:"duration_minutes"`
	Deadline        time.Time              `json:"deadline"`
	Questions       []CandidateQuestionDTO `json:"questions"`
}

type AnswerResultDTO struct {
	QuestionID      uint     `json:"question_id"`
	SubmittedValue  string   `json:"submitted_value"`
	IsCorrect       *bool    `json:"is_correct"`
	PointsAwarded   float64  `json:"points_awarded"`
	TestCasesPassed *int     `json:"test_cases_passed,omitempty"`
	AIFeedback      string   `json:"ai_feedback,omitempty"`
	AIRating        *float64 `json:"ai_rating,omitempty"`
}

// SubmitResultDTO acknowledges a submission. Scores stay hidden until results are
// released.
type SubmitResultDTO struct {
	AttemptID          uint      `json:"attempt_id"`
	CompletedAt        time.Time `json:"completed_at"`
	AnsweredCount      int       `json:"answered_count"`
	SkippedQuestionIDs []uint    `json:"skipped_question_ids,omitempty"`
}

// TestAttemptSummaryDTO lists a candidate's attempt. Score fields are nil until
// the recruiter releases results.
type TestAttemptSummaryDTO struct {
	ID              uint              `json:"id"`
	TestID          uint              `json:"test_id"`
	TestTitle       string            `json:"test_title,omitempty"`
	Round           int               `json:"round"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	Status          string            `json:"status"`
	ResultsReleased bool              `json:"results_released"`
	Score           *float64          `json:"score,omitempty"`
	MaxScore        *float64          `json:"max_score,omitempty"`
	Percentage      *float64          `json:"percentage,omitempty"`
	Answers         []AnswerResultDTO `json:"answers,omitempty"`
}

// AssignedTestDTO is a test a candidate may start through one of their applications.
type AssignedTestDTO struct {
	TestID          uint   `json:"test_id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	TestType        string `json:"test_type"`
	JobID           uint   `json:"job_id"`
	JobTitle        string `json:"job_title,omitempty"`
	ApplicationID   uint   `json:"application_id"`
	Round           int    `json:"round"`
}
