package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: RECURRENCE FREQUENCY ****/
/************************************************/
const FREQUENCY_DAILY = "daily"
const FREQUENCY_WEEKLY = "weekly"
const FREQUENCY_MONTHLY = "monthly"
const FREQUENCY_YEARLY = "yearly"

// RecurringJob is a job template plus a recurrence pattern. Generation walks
// the pattern forward from LastGenerated (or StartDate) and creates one Job
// per occurrence. Rules are never deleted, only deactivated.
//
// DayOfWeek uses 0 = Monday ... 6 = Sunday and only applies to weekly rules.
// DayOfMonth (1-31) only applies to monthly rules.
type RecurringJob struct {
	ID                string     `gorm:"primary_key" json:"id"`
	CustomerID        string     `gorm:"column:customer_id;not null;index" json:"customer_id" form:"customer_id"`
	Title             string     `gorm:"not null" json:"title" form:"title"`
	Description       string     `gorm:"type:text" json:"description" form:"description"`
	JobType           string     `gorm:"column:job_type" json:"job_type" form:"job_type"`
	Frequency         string     `gorm:"not null" json:"frequency" form:"frequency"`
	Interval          int        `gorm:"default:1" json:"interval" form:"interval"`
	DayOfWeek         *int       `gorm:"column:day_of_week" json:"day_of_week"`
	DayOfMonth        *int       `gorm:"column:day_of_month" json:"day_of_month"`
	StartDate         time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate           *time.Time `gorm:"column:end_date" json:"end_date"`
	EstimatedDuration int        `gorm:"column:estimated_duration" json:"estimated_duration" form:"estimated_duration"` // minutes
	Priority          string     `gorm:"default:'normal'" json:"priority" form:"priority"`
	AssignedTo        string     `gorm:"column:assigned_to" json:"assigned_to" form:"assigned_to"`
	IsActive          bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastGenerated     *time.Time `gorm:"column:last_generated" json:"last_generated"`
	CreatedBy         string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

func (rule *RecurringJob) BeforeCreate(scope *gorm.Scope) error {
	if rule.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

func (rule RecurringJob) MissingFields() string {
	if rule.CustomerID == "" {
		return "customer_id"
	} else if rule.Title == "" {
		return "title"
	} else if rule.Frequency == "" {
		return "frequency"
	} else if rule.StartDate.IsZero() {
		return "start_date"
	}
	return ""
}

// InvalidField validates the recurrence pattern itself.
func (rule RecurringJob) InvalidField() string {
	if !IsValidFrequency(rule.Frequency) {
		return "frequency"
	}
	if rule.Interval < 1 {
		return "interval"
	}
	if rule.DayOfWeek != nil && (*rule.DayOfWeek < 0 || *rule.DayOfWeek > 6) {
		return "day_of_week"
	}
	if rule.DayOfMonth != nil && (*rule.DayOfMonth < 1 || *rule.DayOfMonth > 31) {
		return "day_of_month"
	}
	return ""
}

func IsValidFrequency(frequency string) bool {
	switch frequency {
	case FREQUENCY_DAILY, FREQUENCY_WEEKLY, FREQUENCY_MONTHLY, FREQUENCY_YEARLY:
		return true
	}
	return false
}
