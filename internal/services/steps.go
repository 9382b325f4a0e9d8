package services

import (
	"errors"
	"fmt"

	"github.com/footpoets/claimsdb/internal/models"
	"gorm.io/gorm"
)

// StepTracker persists the batch cursor for a resolution run. With Scoped
// set, each (poet, user) pair gets its own cursor so concurrent resolutions
// cannot trample each other. The unscoped mode keeps the single shared key
// for installations that still read it directly.
type StepTracker struct {
	DB     *gorm.DB
	Key    string
	Scoped bool
}

// NewStepTracker creates a StepTracker.
func NewStepTracker(db *gorm.DB, key string, scoped bool) *StepTracker {
	return &StepTracker{DB: db, Key: key, Scoped: scoped}
}

func (t *StepTracker) stepKey(poetID, userID uint64) string {
	if t.Scoped {
		return fmt.Sprintf("%s:poet:%d:user:%d", t.Key, poetID, userID)
	}
	return t.Key
}

// Get returns the current step for the resolution, creating it at zero
// when no cursor exists yet.
func (t *StepTracker) Get(poetID, userID uint64) (int, error) {
	key := t.stepKey(poetID, userID)

	var record models.BatchStep
	err := t.DB.First(&record, "step_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.BatchStep{StepKey: key, Step: 0}
		if err := t.DB.Create(&record).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Step, nil
}

// Increment advances the cursor past the given step.
func (t *StepTracker) Increment(poetID, userID uint64, step int) error {
	key := t.stepKey(poetID, userID)
	return t.DB.Model(&models.BatchStep{}).
		Where("step_key = ?", key).
		Update("step", step+1).Error
}

// Delete removes the cursor, resetting the resolution to its start.
func (t *StepTracker) Delete(poetID, userID uint64) error {
	return t.DB.Delete(&models.BatchStep{}, "step_key = ?", t.stepKey(poetID, userID)).Error
}
