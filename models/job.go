package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: JOB STATUS ****/
/************************************************/
const JOB_STATUS_SCHEDULED = "scheduled"
const JOB_STATUS_IN_PROGRESS = "in_progress"
const JOB_STATUS_COMPLETED = "completed"
const JOB_STATUS_CANCELLED = "cancelled"

/************************************************
/**** MARK: JOB PRIORITY ****/
/************************************************/
const JOB_PRIORITY_LOW = "low"
const JOB_PRIORITY_NORMAL = "normal"
const JOB_PRIORITY_HIGH = "high"
const JOB_PRIORITY_URGENT = "urgent"

// Job is one concrete, dated unit of work, created directly or generated
// from a RecurringJob. JobNumber ("JOB-00042") is what technicians text in,
// matched by substring so missing prefixes or leading zeros still resolve.
type Job struct {
	ID                 string     `gorm:"primary_key" json:"id"`
	JobNumber          string     `gorm:"column:job_number;not null;unique_index" json:"job_number"`
	CustomerID         string     `gorm:"column:customer_id;not null;index" json:"customer_id" form:"customer_id"`
	Title              string     `gorm:"not null" json:"title" form:"title"`
	Description        string     `gorm:"type:text" json:"description" form:"description"`
	JobType            string     `gorm:"column:job_type" json:"job_type" form:"job_type"`
	Status             string     `gorm:"default:'scheduled';index" json:"status" form:"status"`
	Priority           string     `gorm:"default:'normal'" json:"priority" form:"priority"`
	ScheduledDate      time.Time  `gorm:"column:scheduled_date;not null;index" json:"scheduled_date" form:"scheduled_date"`
	ScheduledStartTime *time.Time `gorm:"column:scheduled_start_time" json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time `gorm:"column:scheduled_end_time" json:"scheduled_end_time"`
	ActualStartTime    *time.Time `gorm:"column:actual_start_time" json:"actual_start_time"`
	ActualEndTime      *time.Time `gorm:"column:actual_end_time" json:"actual_end_time"`
	EstimatedDuration  int        `gorm:"column:estimated_duration" json:"estimated_duration" form:"estimated_duration"` // minutes
	AssignedTo         string     `gorm:"column:assigned_to;index" json:"assigned_to" form:"assigned_to"`
	CreatedBy          string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (job *Job) BeforeCreate(scope *gorm.Scope) error {
	if job.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

func (job Job) MissingFields() string {
	if job.CustomerID == "" {
		return "customer_id"
	} else if job.Title == "" {
		return "title"
	} else if job.ScheduledDate.IsZero() {
		return "scheduled_date"
	}
	return ""
}

func IsValidJobStatus(status string) bool {
	switch status {
	case JOB_STATUS_SCHEDULED, JOB_STATUS_IN_PROGRESS, JOB_STATUS_COMPLETED, JOB_STATUS_CANCELLED:
		return true
	}
	return false
}
