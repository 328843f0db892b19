package controllers

import (
	"net/http"
	"time"

	dbpkg "surv/db"
	"surv/models"

	"github.com/gin-gonic/gin"
)

// GET /api/time-entries
// Technicians only see their own punches.
func GetTimeEntries(c *gin.Context) {
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

	query := db.Order("entry_time desc")

	if !user.CanDispatch() {
		query = query.Where("employee_id = ?", user.ID)
	} else if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	dateFrom, ok := QueryDate(c, "date_from")
	if !ok {
		return
	}
	if dateFrom != nil {
		query = query.Where("entry_time >= ?", *dateFrom)
	}
	dateTo, ok := QueryDate(c, "date_to")
	if !ok {
		return
	}
	if dateTo != nil {
		query = query.Where("entry_time < ?", dateTo.AddDate(0, 0, 1))
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"time_entries": entries})
}

// POST /api/time-entries
func CreateTimeEntry(c *gin.Context) {
	var entry models.TimeEntry
	if err := c.Bind(&entry); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	// technicians punch for themselves only
	if entry.EmployeeID == "" || !user.CanDispatch() {
		entry.EmployeeID = user.ID
	}
	if !models.IsValidEntryType(entry.EntryType) {
		RespondError(c, "invalid entry_type", http.StatusBadRequest)
		return
	}
	if entry.EntryTime.IsZero() {
		entry.EntryTime = time.Now()
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}
	if err := db.Create(&entry).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"time_entry": entry})
}
