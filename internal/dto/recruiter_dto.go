package dto

// OptionDTO is a multiple choice option as authored by a recruiter.
type OptionDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type ExampleDTO struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type TestCaseDTO struct {
	Input          string   `json:"input"`
	ExpectedOutput string   `json:"expected_output"`
	IsPublic       bool     `json:"is_public"`
	Points         *float64 `json:"points,omitempty" binding:"omitempty,gte=0"`
}

// QuestionUpsertDTO creates or replaces a question. Type-specific fields are
// validated by the service.
type QuestionUpsertDTO struct {
	Type       string   `json:"type" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Difficulty string   `json:"difficulty" binding:"required,oneof=Easy Medium Hard Expert"`
	Points     float64  `json:"points" binding:"required,gte=1"`
	Tags       []string `json:"tags,omitempty"`

	Options []OptionDTO `json:"options,omitempty" binding:"omitempty,dive"`

	Constraints      string            `json:"constraints,omitempty"`
	Examples         []ExampleDTO      `json:"examples,omitempty"`
	TestCases        []TestCaseDTO     `json:"test_cases,omitempty" binding:"omitempty,dive"`
	AllowedLanguages []string          `json:"allowed_languages,omitempty"`
	TemplateCode     map[string]string `json:"template_code,omitempty"`
	TimeLimitSeconds *float64          `json:"time_limit_seconds,omitempty"`
	MemoryLimitMB    *int              `json:"memory_limit_mb,omitempty"`
	ScoringLogic     string            `json:"scoring_logic,omitempty" binding:"omitempty,oneof=full_points_on_all_pass partial_by_test_case"`
	Hints            []string          `json:"hints,omitempty"`

	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
	MaxWordCount     *int     `json:"max_word_count,omitempty"`
}

type DifficultyDistributionDTO struct {
	TotalQuestions int     `json:"total_questions"`
	EasyPercent    float64 `json:"easy_percent"`
	MediumPercent  float64 `json:"medium_percent"`
	HardPercent    float64 `json:"hard_percent"`
}

// TestUpsertDTO creates or replaces a test. Exactly one of ManualQuestions or
// DifficultyDistribution must be set, matching SelectionType.
type TestUpsertDTO struct {
	Title                  string                     `json:"title" binding:"required"`
	Description            string                     `json:"description,omitempty"`
	DurationMinutes        int                        `json:"duration_minutes" binding:"required,gt=0"`
	TestType               string                     `json:"test_type,omitempty" binding:"omitempty,oneof=aptitude coding both interview"`
	SelectionType          string                     `json:"selection_type" binding:"required,oneof=manual random"`
	ManualQuestions        []uint                     `json:"manual_questions,omitempty"`
	DifficultyDistribution *DifficultyDistributionDTO `json:"difficulty_distribution,omitempty"`
}

// ReleaseResultsDTO targets a single attempt or every attempt of a test.
type ReleaseResultsDTO struct {
	AttemptID *uint `json:"attempt_id,omitempty"`
	TestID    *uint `json:"test_id,omitempty"`
}

type AssignRoundDTO struct {
	TestID uint `json:"test_id" binding:"required"`
	Round  int  `json:"round" binding:"required,gte=1"`
}
