package controllers

import (
	"net/http"
	"time"

	dbpkg "surv/db"
	"surv/models"
	"surv/schedule"

	"github.com/gin-gonic/gin"
)

type JobRequest struct {
	CustomerID         string     `json:"customer_id" form:"customer_id"`
	Title              string     `json:"title" form:"title"`
	Description        string     `json:"description" form:"description"`
	JobType            string     `json:"job_type" form:"job_type"`
	Priority           string     `json:"priority" form:"priority"`
	ScheduledDate      string     `json:"scheduled_date" form:"scheduled_date"` // YYYY-MM-DD
	ScheduledStartTime *time.Time `json:"scheduled_start_time" form:"scheduled_start_time"`
	ScheduledEndTime   *time.Time `json:"scheduled_end_time" form:"scheduled_end_time"`
	EstimatedDuration  int        `json:"estimated_duration" form:"estimated_duration"`
	AssignedTo         string     `json:"assigned_to" form:"assigned_to"`
	Status             string     `json:"status" form:"status"`
}

// GET /api/jobs
// Technicians only see their own jobs; admins and managers see everything
// and can filter by assignee.
func GetJobs(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.Order("scheduled_date desc, created_at desc")

	if !user.CanDispatch() {
		query = query.Where("assigned_to = ?", user.ID)
	} else if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		query = query.Where("assigned_to = ?", assignedTo)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	dateFrom, ok := QueryDate(c, "date_from")
	if !ok {
		return
	}
	if dateFrom != nil {
		query = query.Where("scheduled_date >= ?", *dateFrom)
	}
	dateTo, ok := QueryDate(c, "date_to")
	if !ok {
		return
	}
	if dateTo != nil {
		query = query.Where("scheduled_date <= ?", *dateTo)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"jobs": jobs})
}

// GET /api/jobs/:id
func GetJobByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var job models.Job
	if err := db.Where("id = ?", id).First(&job).Error; err != nil {
		RespondError(c, "job not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"job": job})
}

// POST /api/jobs
func CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerID == "" {
		RespondError(c, "customer_id is required", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		RespondError(c, "title is required", http.StatusBadRequest)
		return
	}
	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		RespondError(c, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("id = ?", req.CustomerID).First(&customer).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	number, err := schedule.NextJobNumber(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	job := models.Job{
		JobNumber:          number,
		CustomerID:         req.CustomerID,
		Title:              req.Title,
		Description:        req.Description,
		JobType:            req.JobType,
		Status:             models.JOB_STATUS_SCHEDULED,
		Priority:           req.Priority,
		ScheduledDate:      scheduledDate,
		ScheduledStartTime: req.ScheduledStartTime,
		ScheduledEndTime:   req.ScheduledEndTime,
		EstimatedDuration:  req.EstimatedDuration,
		AssignedTo:         req.AssignedTo,
	}
	if job.Priority == "" {
		job.Priority = models.JOB_PRIORITY_NORMAL
	}
	if user, ok := GetUserLogged(c); ok {
		job.CreatedBy = user.ID
	}

	if err := db.Create(&job).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"job": job})
}

// PUT /api/jobs/:id
func UpdateJob(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var job models.Job
	if err := db.Where("id = ?", id).First(&job).Error; err != nil {
		RespondError(c, "job not found", http.StatusNotFound)
		return
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.JobType != "" {
		job.JobType = req.JobType
	}
	if req.Priority != "" {
		job.Priority = req.Priority
	}
	if req.ScheduledDate != "" {
		scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			RespondError(c, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		job.ScheduledDate = scheduledDate
	}
	if req.ScheduledStartTime != nil {
		job.ScheduledStartTime = req.ScheduledStartTime
	}
	if req.ScheduledEndTime != nil {
		job.ScheduledEndTime = req.ScheduledEndTime
	}
	if req.EstimatedDuration > 0 {
		job.EstimatedDuration = req.EstimatedDuration
	}
	if req.AssignedTo != "" {
		job.AssignedTo = req.AssignedTo
	}
	if req.Status != "" {
		if !models.IsValidJobStatus(req.Status) {
			RespondError(c, "invalid status", http.StatusBadRequest)
			return
		}
		job.Status = req.Status
	}

	if err := db.Save(&job).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"job": job})
}

// DELETE /api/jobs/:id (admin/manager) - cancels, never removes
func DeleteJob(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var job models.Job
	if err := db.Where("id = ?", id).First(&job).Error; err != nil {
		RespondError(c, "job not found", http.StatusNotFound)
		return
	}

	job.Status = models.JOB_STATUS_CANCELLED
	if err := db.Save(&job).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"job": job})
}
