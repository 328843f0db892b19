package sms

import (
	"strings"

	"surv/models"

	"github.com/jinzhu/gorm"
)

// FindJobByNumber resolves a loosely written job-number token against
// stored job numbers by case-insensitive substring containment, so "100"
// or "job-00100" both find "JOB-00100". Technicians routinely drop the
// JOB- prefix and the casing.
//
// A token can match more than one job; the tie-break is deterministic:
// most recently scheduled first, then most recently created.
func FindJobByNumber(db *gorm.DB, token string) (*models.Job, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}

	pattern := "%" + strings.ToLower(token) + "%"

	var job models.Job
	err := db.
		Where("LOWER(job_number) LIKE ?", pattern).
		Order("scheduled_date desc, created_at desc").
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}
