package model

import (
	"time"

	"gorm.io/datatypes"
)

// TestAttempt is one candidate's sitting of one test. CompletedAt == nil means the
// attempt is open; the partial unique index keeps at most one open attempt per
// (test, candidate).
type TestAttempt struct {
	ID                uint                                  `gorm:"primarykey" json:"id"`
	TestID            uint                                  `json:"test_id" gorm:"not null;index;index:idx_test_attempts_open,unique,where:completed_at IS NULL"`
	Test              *Test                                 `json:"test,omitempty" gorm:"foreignKey:TestID"`
	CandidateID       uint                                  `json:"candidate_id" gorm:"not null;index;index:idx_test_attempts_open,unique,where:completed_at IS NULL"`
	Round             int                                   `json:"round"`
	QuestionsSnapshot datatypes.JSONSlice[QuestionSnapshot] `json:"questions_snapshot"`
	Answers           []Answer                              `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Score             float64                               `json:"score" gorm:"not null;default:0"`
	StartedAt         time.Time                             `json:"started_at" gorm:"not null"`
	CompletedAt       *time.Time                            `json:"completed_at,omitempty" gorm:"index"`
	DurationMinutes   int                                   `json:"duration_minutes"`
	ResultsReleased   bool                                  `json:"results_released" gorm:"not null;default:false"`
	CreatedAt         time.Time                             `json:"created_at"`
	UpdatedAt         time.Time                             `json:"updated_at"`
}

func (a *TestAttempt) IsOpen() bool { return a.CompletedAt == nil }

// DurationSeconds is the time between start and completion, 0 while open.
func (a *TestAttempt) DurationSeconds() float64 {
	if a.CompletedAt == nil {
		return 0
	}
	return a.CompletedAt.Sub(a.StartedAt).Seconds()
}

// Deadline is the advisory end of the attempt's time window.
func (a *TestAttempt) Deadline() time.Time {
	return a.StartedAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// MaxPoints sums the points of every frozen question.
func (a *TestAttempt) MaxPoints() float64 {
	total := 0.0
	for _, q := range a.QuestionsSnapshot {
		total += q.Points
	}
	return total
}
