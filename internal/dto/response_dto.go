package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// QuestionResponseDTO is the full question as seen by recruiters, answer key included.
type QuestionResponseDTO struct {
	ID               uint              `json:"id"`
	Type             string            `json:"type"`
	Content          string            `json:"content"`
	Difficulty       string            `json:"difficulty"`
	Points           float64           `json:"points"`
	Tags             []string          `json:"tags,omitempty"`
	CreatedBy        uint              `json:"created_by"`
	Options          []OptionDTO       `json:"options,omitempty"`
	Constraints      string            `json:"constraints,omitempty"`
	Examples         []ExampleDTO      `json:"examples,omitempty"`
	TestCases        []TestCaseDTO     `json:"test_cases,omitempty"`
	AllowedLanguages []string          `json:"allowed_languages,omitempty"`
	TemplateCode     map[string]string `json:"template_code,omitempty"`
	TimeLimitSeconds float64           `json:"time_limit_seconds,omitempty"`
	MemoryLimitMB    int               `json:"memory_limit_mb,omitempty"`
	ScoringLogic     string            `json:"scoring_logic,omitempty"`
	Hints            []string          `json:"hints,omitempty"`
	ExpectedKeywords []string          `json:"expected_keywords,omitempty"`
	MaxWordCount     *int              `json:"max_word_count,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type TestResponseDTO struct {
	ID                     uint                       `json:"id"`
	Title                  string                     `json:"title"`
	Description            string                     `json:"description,omitempty"`
	DurationMinutes        int                        `json:"duration_minutes"`
	TestType               string                     `json:"test_type"`
	SelectionType          string                     `json:"selection_type"`
	ManualQuestions        []uint                     `json:"manual_questions,omitempty"`
	DifficultyDistribution *DifficultyDistributionDTO `json:"difficulty_distribution,omitempty"`
	CreatedBy              uint                       `json:"created_by"`
	CreatedAt              time.Time                  `json:"created_at"`
	UpdatedAt              time.Time                  `json:"updated_at"`
}

type ReleaseResultsResponseDTO struct {
	UpdatedCount  int64 `json:"updated_count"`
	SkippedCount  int   `json:"skipped_count"`
	TotalAttempts int   `json:"total_attempts"`
}

// --- Analytics ---

type TopPerformerDTO struct {
	AttemptID       uint      `json:"attempt_id"`
	CandidateID     uint      `json:"candidate_id"`
	Score           float64   `json:"score"`
	DurationSeconds float64   `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}

type TestAnalyticsDTO struct {
	TestID                 uint              `json:"test_id"`
	TestTitle              string            `json:"test_title"`
	TotalAttempts          int               `json:"total_attempts"`
	AverageScore           float64           `json:"average_score"`
	HighestScore           float64           `json:"highest_score"`
	LowestScore            float64           `json:"lowest_score"`
	AverageDurationSeconds float64           `json:"average_duration_seconds"`
	TopPerformers          []TopPerformerDTO `json:"top_performers"`
}

type CandidateResultDTO struct {
	AttemptID         uint      `json:"attempt_id"`
	CandidateID       uint      `json:"candidate_id"`
	CandidateName     string    `json:"candidate_name"`
	CandidateEmail    string    `json:"candidate_email"`
	ApplicationID     uint      `json:"application_id"`
	ApplicationStatus string    `json:"application_status"`
	Round             int       `json:"round"`
	Score             float64   `json:"score"`
	DurationSeconds   float64   `json:"duration_seconds"`
	CompletedAt       time.Time `json:"completed_at"`
}

type JobAnalyticsDTO struct {
	JobID             uint                 `json:"job_id"`
	JobTitle          string               `json:"job_title"`
	Round             *int                 `json:"round,omitempty"`
	TestID            uint                 `json:"test_id"`
	TestTitle         string               `json:"test_title"`
	TotalApplications int                  `json:"total_applications"`
	TotalAttempts     int                  `json:"total_attempts"`
	AverageScore      float64              `json:"average_score"`
	Candidates        []CandidateResultDTO `json:"candidates"`
}

type ApplicationResponseDTO struct {
	ID                 uint      `json:"id"`
	CandidateID        uint      `json:"candidate_id"`
	JobID              uint      `json:"job_id"`
	Status             string    `json:"status"`
	Round              int       `json:"round"`
	CurrentRoundTestID *uint     `json:"current_round_test_id,omitempty"`
	AppliedAt          time.Time `json:"applied_at"`
}
