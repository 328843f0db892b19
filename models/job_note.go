package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

const NOTE_TYPE_GENERAL = "general"
const NOTE_TYPE_COMPLETION_SUMMARY = "completion_summary"

// JobNote is a free-text note on a job. Internal notes are never shown
// to the customer.
type JobNote struct {
	ID         string     `gorm:"primary_key" json:"id"`
	JobID      string     `gorm:"column:job_id;not null;index" json:"job_id"`
	Note       string     `gorm:"type:text;not null" json:"note"`
	NoteType   string     `gorm:"column:note_type;default:'general'" json:"note_type"`
	IsInternal bool       `gorm:"column:is_internal;default:false" json:"is_internal"`
	CreatedBy  string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (note *JobNote) BeforeCreate(scope *gorm.Scope) error {
	if note.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}
