package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "Multiple Choice"
	QuestionTypeSubjective     QuestionType = "Subjective"
	QuestionTypeCoding         QuestionType = "Coding"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

type ScoringLogic string

const (
	ScoringFullPointsOnAllPass ScoringLogic = "full_points_on_all_pass"
	ScoringPartialByTestCase   ScoringLogic = "partial_by_test_case"
)

type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is one judge case of a coding question. A nil Points means the case is
// worth 1 point under partial scoring.
type TestCase struct {
	Input          string   `json:"input"`
	ExpectedOutput string   `json:"expected_output"`
	IsPublic       bool     `json:"is_public"`
	Points         *float64 `json:"points,omitempty"`
}

// PointsOrDefault returns the case's weight for partial scoring.
func (tc TestCase) PointsOrDefault() float64 {
	if tc.Points == nil {
		return 1
	}
	return *tc.Points
}

type Question struct {
	ID         uint                        `gorm:"primarykey" json:"id"`
	Type       QuestionType                `json:"type" gorm:"not null;index;index:idx_questions_type_difficulty,priority:1"`
	Content    string                      `json:"content" gorm:"type:text;not null"`
	Difficulty Difficulty                  `json:"difficulty" gorm:"not null;index;index:idx_questions_type_difficulty,priority:2"`
	Tags       datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Points     float64                     `json:"points" gorm:"not null;default:10"`
	CreatedBy  uint                        `json:"created_by" gorm:"not null;index"`

	// Multiple Choice
	Options datatypes.JSONSlice[Option] `json:"options,omitempty"`

	// Coding
	Constraints      string                                `json:"constraints,omitempty" gorm:"type:text"`
	Examples         datatypes.JSONSlice[Example]          `json:"examples,omitempty"`
	TestCases        datatypes.JSONSlice[TestCase]         `json:"test_cases,omitempty"`
	AllowedLanguages datatypes.JSONSlice[string]           `json:"allowed_languages,omitempty"`
	TemplateCode     datatypes.JSONType[map[string]string] `json:"template_code,omitempty"`
	TimeLimitSeconds float64                               `json:"time_limit_seconds,omitempty"`
	MemoryLimitMB    int                                   `json:"memory_limit_mb,omitempty"`
	ScoringLogic     ScoringLogic                          `json:"scoring_logic,omitempty"`
	Hints            datatypes.JSONSlice[string]           `json:"hints,omitempty"`

	// Subjective
	ExpectedKeywords datatypes.JSONSlice[string] `json:"expected_keywords,omitempty"`
	MaxWordCount     *int                        `json:"max_word_count,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CorrectOption returns the option flagged correct, if any.
func (q *Question) CorrectOption() (Option, bool) {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt, true
		}
	}
	return Option{}, false
}

// TestCasePointsTotal is the maximum a partial-scoring submission can earn.
func (q *Question) TestCasePointsTotal() float64 {
	total := 0.0
	for _, tc := range q.TestCases {
		total += tc.PointsOrDefault()
	}
	return total
}

// Snapshot materializes a deep copy of the question for freezing into an attempt.
func (q *Question) Snapshot() QuestionSnapshot {
	s := QuestionSnapshot{
		QuestionID:       q.ID,
		Type:             q.Type,
		Content:          q.Content,
		Difficulty:       q.Difficulty,
		Tags:             append([]string(nil), q.Tags...),
		Points:           q.Points,
		Options:          append([]Option(nil), q.Options...),
		Constraints:      q.Constraints,
		Examples:         append([]Example(nil), q.Examples...),
		AllowedLanguages: append([]string(nil), q.AllowedLanguages...),
		TimeLimitSeconds: q.TimeLimitSeconds,
		MemoryLimitMB:    q.MemoryLimitMB,
		ScoringLogic:     q.ScoringLogic,
		Hints:            append([]string(nil), q.Hints...),
		ExpectedKeywords: append([]string(nil), q.ExpectedKeywords...),
	}
	if q.MaxWordCount != nil {
		n := *q.MaxWordCount
		s.MaxWordCount = &n
	}
	for _, tc := range q.TestCases {
		if tc.Points != nil {
			p := *tc.Points
			tc.Points = &p
		}
		s.TestCases = append(s.TestCases, tc)
	}
	if tmpl := q.TemplateCode.Data(); len(tmpl) > 0 {
		s.TemplateCode = make(map[string]string, len(tmpl))
		for k, v := range tmpl {
			s.TemplateCode[k] = v
		}
	}
	return s
}
