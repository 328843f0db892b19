package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: TIMELINE EVENT TYPES ****/
/************************************************/
const TIMELINE_EVENT_ON_MY_WAY = "on_my_way"
const TIMELINE_EVENT_STARTED = "started"
const TIMELINE_EVENT_COMPLETED = "completed"

// JobTimeline is an append-only lifecycle record for a job. Rows are only
// ever created by the SMS command processor, never updated or deleted.
//
// TravelTime is seconds between the latest on_my_way event and started;
// JobDuration is seconds between the latest started event and completed.
// Both stay nil when no prior event exists, never zero or negative.
type JobTimeline struct {
	ID          string     `gorm:"primary_key" json:"id"`
	JobID       string     `gorm:"column:job_id;not null;index" json:"job_id"`
	EventType   string     `gorm:"column:event_type;not null" json:"event_type"`
	EventTime   time.Time  `gorm:"column:event_time;not null" json:"event_time"`
	EmployeeID  string     `gorm:"column:employee_id" json:"employee_id"`
	TravelTime  *int       `gorm:"column:travel_time" json:"travel_time"`   // seconds
	JobDuration *int       `gorm:"column:job_duration" json:"job_duration"` // seconds
	Latitude    string     `json:"latitude"`
	Longitude   string     `json:"longitude"`
	Notes       string     `json:"notes"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (event *JobTimeline) BeforeCreate(scope *gorm.Scope) error {
	if event.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}
