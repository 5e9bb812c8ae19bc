package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ApplicationPending    = "pending"
	ApplicationInProgress = "in_progress"
	RoundAssigned         = "assigned"
)

type RoundEntry struct {
	Round       int        `json:"round"`
	TestID      uint       `json:"test_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Application links a candidate to a job. CurrentRoundTestID is what grants the
// candidate access to start an attempt.
type Application struct {
	ID                 uint                            `gorm:"primarykey" json:"id"`
	CandidateID        uint                            `json:"candidate_id" gorm:"not null;uniqueIndex:idx_applications_candidate_job"`
	Candidate          *User                           `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	JobID              uint                            `json:"job_id" gorm:"not null;uniqueIndex:idx_applications_candidate_job;index"`
	Job                *Job                            `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Resume             string                          `json:"resume,omitempty"`
	Status             string                          `json:"status" gorm:"not null;default:'pending'"`
	Round              int                             `json:"round" gorm:"not null;default:0"`
	RoundHistory       datatypes.JSONSlice[RoundEntry] `json:"round_history,omitempty"`
	CurrentRoundTestID *uint                           `json:"current_round_test_id,omitempty" gorm:"index"`
	AppliedAt          time.Time                       `json:"applied_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time                       `json:"updated_at"`
}

// InRound reports whether the application was ever assigned to the given round.
func (a *Application) InRound(round int) bool {
	for _, entry := range a.RoundHistory {
		if entry.Round == round {
			return true
		}
	}
	return false
}
