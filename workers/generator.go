package workers

import (
	"log"
	"time"

	"surv/models"
	"surv/schedule"

	"github.com/jinzhu/gorm"
)

// StartRecurringJobGenerator starts a loop that periodically generates
// job occurrences for every active recurring rule. Rules are processed
// sequentially, so generation for a single rule never runs concurrently
// with itself from this worker.
func StartRecurringJobGenerator(db *gorm.DB, interval time.Duration, horizonDays int) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			generateDueJobs(db, horizonDays)
		}
	}()
}

func generateDueJobs(db *gorm.DB, horizonDays int) {
	var rules []models.RecurringJob
	if err := db.
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&rules).Error; err != nil {
		log.Printf("generator: query error: %v", err)
		return
	}

	for i := range rules {
		rule := &rules[i]
		created, err := schedule.Generate(db, rule, horizonDays, rule.CreatedBy)
		if err != nil {
			log.Printf("generator: rule %s: %v", rule.ID, err)
			continue
		}
		if len(created) > 0 {
			log.Printf("generator: rule %s created %d job(s)", rule.ID, len(created))
		}
	}
}
