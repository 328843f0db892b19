package controllers

import (
	"net/http"
	"strconv"
	"time"

	dbpkg "surv/db"
	"surv/models"
	"surv/schedule"

	"github.com/gin-gonic/gin"
)

type RecurringJobRequest struct {
	CustomerID        string `json:"customer_id" form:"customer_id"`
	Title             string `json:"title" form:"title"`
	Description       string `json:"description" form:"description"`
	JobType           string `json:"job_type" form:"job_type"`
	Frequency         string `json:"frequency" form:"frequency"`
	Interval          int    `json:"interval" form:"interval"`
	DayOfWeek         *int   `json:"day_of_week" form:"day_of_week"`
	DayOfMonth        *int   `json:"day_of_month" form:"day_of_month"`
	StartDate         string `json:"start_date" form:"start_date"` // YYYY-MM-DD
	EndDate           string `json:"end_date" form:"end_date"`     // YYYY-MM-DD, optional
	EstimatedDuration int    `json:"estimated_duration" form:"estimated_duration"`
	Priority          string `json:"priority" form:"priority"`
	AssignedTo        string `json:"assigned_to" form:"assigned_to"`
}

// GET /api/recurring-jobs
func GetRecurringJobs(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	query := db.Order("created_at desc")

	// active rules only, unless explicitly asked otherwise
	if c.DefaultQuery("active_only", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var rules []models.RecurringJob
	if err := query.Find(&rules).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"recurring_jobs": rules})
}

// POST /api/recurring-jobs (admin/manager)
func CreateRecurringJob(c *gin.Context) {
	var req RecurringJobRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		RespondError(c, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			RespondError(c, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		endDate = &t
	}

	rule := models.RecurringJob{
		CustomerID:        req.CustomerID,
		Title:             req.Title,
		Description:       req.Description,
		JobType:           req.JobType,
		Frequency:         req.Frequency,
		Interval:          req.Interval,
		DayOfWeek:         req.DayOfWeek,
		DayOfMonth:        req.DayOfMonth,
		StartDate:         startDate,
		EndDate:           endDate,
		EstimatedDuration: req.EstimatedDuration,
		Priority:          req.Priority,
		AssignedTo:        req.AssignedTo,
		IsActive:          true,
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	if rule.Priority == "" {
		rule.Priority = models.JOB_PRIORITY_NORMAL
	}
	if user, ok := GetUserLogged(c); ok {
		rule.CreatedBy = user.ID
	}

	if missing := rule.MissingFields(); missing != "" {
		RespondError(c, missing+" is required", http.StatusBadRequest)
		return
	}
	if invalid := rule.InvalidField(); invalid != "" {
		RespondError(c, invalid+" is invalid", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("id = ?", rule.CustomerID).First(&customer).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	if err := db.Create(&rule).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"recurring_job": rule})
}

// POST /api/recurring-jobs/:id/generate (admin/manager)
func GenerateRecurringJobs(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	daysAhead := 30
	if v := c.Query("days_ahead"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			RespondError(c, "days_ahead must be a positive integer", http.StatusBadRequest)
			return
		}
		daysAhead = n
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var rule models.RecurringJob
	if err := db.Where("id = ?", id).First(&rule).Error; err != nil {
		RespondError(c, "recurring job not found", http.StatusNotFound)
		return
	}

	actorID := ""
	if user, ok := GetUserLogged(c); ok {
		actorID = user.ID
	}

	created, err := schedule.Generate(db, &rule, daysAhead, actorID)
	if err != nil {
		if err == schedule.ErrInactiveRule {
			RespondError(c, "recurring job is not active", http.StatusBadRequest)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	jobs := make([]gin.H, 0, len(created))
	for _, job := range created {
		jobs = append(jobs, gin.H{
			"id":             job.ID,
			"job_number":     job.JobNumber,
			"scheduled_date": job.ScheduledDate,
		})
	}
	RespondSuccess(c, gin.H{"generated_count": len(created), "jobs": jobs})
}

// DELETE /api/recurring-jobs/:id (admin/manager) - deactivates, never removes
func DeleteRecurringJob(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var rule models.RecurringJob
	if err := db.Where("id = ?", id).First(&rule).Error; err != nil {
		RespondError(c, "recurring job not found", http.StatusNotFound)
		return
	}

	if err := db.Model(&models.RecurringJob{}).
		Where("id = ?", rule.ID).
		Update("is_active", false).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"deactivated": true})
}
