package model

import (
	"time"

	"gorm.io/gorm"
)

// Job is read by the engine only to resolve the test assigned to a posting.
type Job struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	RecruiterID uint           `json:"recruiter_id" gorm:"not null;index"`
	TestID      *uint          `json:"test_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
