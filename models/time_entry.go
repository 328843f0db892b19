package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: TIME ENTRY TYPES ****/
/************************************************/
const TIME_ENTRY_CLOCK_IN = "clock_in"
const TIME_ENTRY_CLOCK_OUT = "clock_out"
const TIME_ENTRY_BREAK_START = "break_start"
const TIME_ENTRY_BREAK_END = "break_end"

// TimeEntry records a punch (clock in/out, break) for an employee,
// optionally tied to a job.
type TimeEntry struct {
	ID         string     `gorm:"primary_key" json:"id"`
	EmployeeID string     `gorm:"column:employee_id;not null;index" json:"employee_id" form:"employee_id"`
	JobID      string     `gorm:"column:job_id" json:"job_id" form:"job_id"`
	EntryType  string     `gorm:"column:entry_type;not null" json:"entry_type" form:"entry_type"`
	EntryTime  time.Time  `gorm:"column:entry_time;not null" json:"entry_time"`
	Latitude   float64    `json:"latitude" form:"latitude"`
	Longitude  float64    `json:"longitude" form:"longitude"`
	Notes      string     `json:"notes" form:"notes"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (entry *TimeEntry) BeforeCreate(scope *gorm.Scope) error {
	if entry.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

func IsValidEntryType(entryType string) bool {
	switch entryType {
	case TIME_ENTRY_CLOCK_IN, TIME_ENTRY_CLOCK_OUT, TIME_ENTRY_BREAK_START, TIME_ENTRY_BREAK_END:
		return true
	}
	return false
}
