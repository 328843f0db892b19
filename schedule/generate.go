package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"surv/models"

	"github.com/jinzhu/gorm"
)

// ErrInactiveRule is returned when generation is attempted for a
// deactivated recurring job.
var ErrInactiveRule = errors.New("recurring job is not active")

// generateMu serializes generation. The de-duplication check and the
// watermark update are read-then-write, so two concurrent generations for
// the same rule could both pass the check and create duplicates.
var generateMu sync.Mutex

// NextJobNumber allocates the next sequential job number ("JOB-00042").
// Allocation is max+1, not count+1, so rows removed out-of-band never make
// the next number collide with the unique index. Numbers are zero-padded to
// five digits; ordering stays lexicographic up to JOB-99999.
func NextJobNumber(db *gorm.DB) (string, error) {
	var job models.Job
	err := db.Model(&models.Job{}).
		Select("job_number").
		Order("job_number desc").
		First(&job).Error
	if gorm.IsRecordNotFoundError(err) {
		return "JOB-00001", nil
	}
	if err != nil {
		return "", err
	}

	var n int
	if _, err := fmt.Sscanf(job.JobNumber, "JOB-%d", &n); err != nil {
		return "", fmt.Errorf("unparseable job number %q", job.JobNumber)
	}
	return fmt.Sprintf("JOB-%05d", n+1), nil
}

// Generate creates one scheduled Job per occurrence of rule within the
// horizon, skipping dates that already have a job for the same
// (customer, scheduled date, title), and advances the rule's watermark.
// Created jobs and the watermark commit in a single transaction: a
// failure partway leaves neither visible. Re-running over an overlapping
// window never creates duplicates.
func Generate(db *gorm.DB, rule *models.RecurringJob, horizonDays int, actorID string) ([]models.Job, error) {
	if !rule.IsActive {
		return nil, ErrInactiveRule
	}

	generateMu.Lock()
	defer generateMu.Unlock()

	now := time.Now()
	dates := Occurrences(*rule, now, horizonDays)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var created []models.Job
	for _, date := range dates {
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		var existing models.Job
		err := tx.
			Where("customer_id = ? AND title = ?", rule.CustomerID, rule.Title).
			Where("scheduled_date >= ? AND scheduled_date < ?", day, day.AddDate(0, 0, 1)).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			tx.Rollback()
			return nil, err
		}

		number, err := NextJobNumber(tx)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		job := models.Job{
			JobNumber:         number,
			CustomerID:        rule.CustomerID,
			Title:             rule.Title,
			Description:       rule.Description,
			JobType:           rule.JobType,
			Status:            models.JOB_STATUS_SCHEDULED,
			Priority:          rule.Priority,
			ScheduledDate:     day,
			EstimatedDuration: rule.EstimatedDuration,
			AssignedTo:        rule.AssignedTo,
			CreatedBy:         actorID,
		}
		if err := tx.Create(&job).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, job)
	}

	if err := tx.Model(&models.RecurringJob{}).
		Where("id = ?", rule.ID).
		Update("last_generated", now).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	rule.LastGenerated = &now
	return created, nil
}
