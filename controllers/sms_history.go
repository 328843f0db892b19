package controllers

import (
	"net/http"

	dbpkg "surv/db"
	"surv/models"

	"github.com/gin-gonic/gin"
)

// GET /api/sms/messages/:jobId
func GetJobMessages(c *gin.Context) {
	jobID, ok := ParamID(c, "jobId")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var messages []models.SMSMessage
	if err := db.
		Where("job_id = ?", jobID).
		Order("received_at desc, created_at desc").
		Find(&messages).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gin.H, 0, len(messages))
	for _, msg := range messages {
		out = append(out, gin.H{
			"id":           msg.ID,
			"from_number":  msg.FromNumber,
			"to_number":    msg.ToNumber,
			"body":         msg.Body,
			"direction":    msg.Direction,
			"command_type": msg.CommandType,
			"received_at":  msg.ReceivedAt,
			"sent_at":      msg.SentAt,
			"has_media":    msg.MediaURL != "",
		})
	}
	RespondSuccess(c, gin.H{"messages": out})
}

// GET /api/sms/timeline/:jobId
func GetJobTimeline(c *gin.Context) {
	jobID, ok := ParamID(c, "jobId")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var events []models.JobTimeline
	if err := db.
		Where("job_id = ?", jobID).
		Order("event_time asc").
		Find(&events).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gin.H, 0, len(events))
	for _, event := range events {
		employeeName := "Unknown"
		if event.EmployeeID != "" {
			var employee models.User
			if err := db.Where("id = ?", event.EmployeeID).First(&employee).Error; err == nil {
				employeeName = employee.FullName()
			}
		}

		var travelMinutes, durationMinutes *int
		if event.TravelTime != nil {
			minutes := *event.TravelTime / 60
			travelMinutes = &minutes
		}
		if event.JobDuration != nil {
			minutes := *event.JobDuration / 60
			durationMinutes = &minutes
		}

		out = append(out, gin.H{
			"id":                   event.ID,
			"event_type":           event.EventType,
			"event_time":           event.EventTime,
			"employee_name":        employeeName,
			"travel_time_minutes":  travelMinutes,
			"job_duration_minutes": durationMinutes,
			"notes":                event.Notes,
		})
	}
	RespondSuccess(c, gin.H{"timeline": out})
}
