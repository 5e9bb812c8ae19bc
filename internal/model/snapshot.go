package model

// QuestionSnapshot is the frozen copy of a question taken when an attempt starts.
// Options are stored in the attempt's own shuffled order.
type QuestionSnapshot struct {
	QuestionID       uint              `json:"question_id"`
	Type             QuestionType      `json:"type"`
	Content          string            `json:"content"`
	Difficulty       Difficulty        `json:"difficulty"`
	Tags             []string          `json:"tags,omitempty"`
	Points           float64           `json:"points"`
	Options          []Option          `json:"options,omitempty"`
	Constraints      string            `json:"constraints,omitempty"`
	Examples         []Example         `json:"examples,omitempty"`
	TestCases        []TestCase        `json:"test_cases,omitempty"`
	AllowedLanguages []string          `json:"allowed_languages,omitempty"`
	TemplateCode     map[string]string `json:"template_code,omitempty"`
	TimeLimitSeconds float64           `json:"time_limit_seconds,omitempty"`
	MemoryLimitMB    int               `json:"memory_limit_mb,omitempty"`
	ScoringLogic     ScoringLogic      `json:"scoring_logic,omitempty"`
	Hints            []string          `json:"hints,omitempty"`
	ExpectedKeywords []string          `json:"expected_keywords,omitempty"`
	MaxWordCount     *int              `json:"max_word_count,omitempty"`
}
