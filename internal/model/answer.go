package model

import (
	"time"

	"gorm.io/datatypes"
)

// TestCaseResult is the remote judge's verdict for one test case.
type TestCaseResult struct {
	Passed bool `json:"passed"`
}

// Answer is one graded entry of a submitted attempt. IsCorrect is nil when the
// answer was not auto-graded. AIFeedback and AIRating are advisory and never
// change the score.
type Answer struct {
	ID              uint                                `gorm:"primarykey" json:"id"`
	TestAttemptID   uint                                `json:"test_attempt_id" gorm:"not null;index"`
	QuestionID      uint                                `json:"question_id" gorm:"not null;index"`
	SubmittedValue  string                              `json:"submitted_value" gorm:"type:text"`
	TestCaseResults datatypes.JSONSlice[TestCaseResult] `json:"test_case_results,omitempty"`
	IsCorrect       *bool                               `json:"is_correct"`
	PointsAwarded   float64                             `json:"points_awarded" gorm:"not null;default:0"`
	AIFeedback      string                              `json:"ai_feedback,omitempty" gorm:"type:text"`
	AIRating        *float64                            `json:"ai_rating,omitempty"`
	CreatedAt       time.Time                           `json:"created_at"`
	UpdatedAt       time.Time                           `json:"updated_at"`
}
