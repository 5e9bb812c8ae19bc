package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SelectionType string

const (
	SelectionManual SelectionType = "manual"
	SelectionRandom SelectionType = "random"
)

type TestType string

const (
	TestTypeAptitude  TestType = "aptitude"
	TestTypeCoding    TestType = "coding"
	TestTypeBoth      TestType = "both"
	TestTypeInterview TestType = "interview"
)

type DifficultyDistribution struct {
	TotalQuestions int     `json:"total_questions"`
	EasyPercent    float64 `json:"easy_percent"`
	MediumPercent  float64 `json:"medium_percent"`
	HardPercent    float64 `json:"hard_percent"`
}

// Test is a reusable assessment. Exactly one of ManualQuestions or
// DifficultyDistribution is populated, matching SelectionType.
type Test struct {
	ID                     uint                                        `gorm:"primarykey" json:"id"`
	Title                  string                                      `json:"title" gorm:"not null"`
	Description            string                                      `json:"description,omitempty"`
	DurationMinutes        int                                         `json:"duration_minutes" gorm:"not null"`
	SelectionType          SelectionType                               `json:"selection_type" gorm:"not null"`
	TestType               TestType                                    `json:"test_type" gorm:"not null;default:'aptitude'"`
	ManualQuestions        datatypes.JSONSlice[uint]                   `json:"manual_questions,omitempty"`
	DifficultyDistribution datatypes.JSONType[*DifficultyDistribution] `json:"difficulty_distribution,omitempty"`
	CreatedBy              uint                                        `json:"created_by" gorm:"not null;index"`
	CreatedAt              time.Time                                   `json:"created_at"`
	UpdatedAt              time.Time                                   `json:"updated_at"`
	DeletedAt              gorm.DeletedAt                              `gorm:"index" json:"-"`
}

// Distribution returns the random-selection config, nil for manual tests.
func (t *Test) Distribution() *DifficultyDistribution {
	return t.DifficultyDistribution.Data()
}
