// Package session owns the client-side counting state: the durable local
// counters, their live progress, and the append-only history log.
package session

import (
	"errors"
	"fmt"

	"github.com/zulandar/tasbih/internal/models"
	"gorm.io/gorm"
)

// Target bounds enforced at creation and edit time.
const (
	MinTarget = 1
	MaxTarget = 10000
)

// validateInput checks a (title, target) pair against the counter rules.
func validateInput(title string, target int) error {
	if title == "" {
		return fmt.Errorf("session: title is required: %w", ErrValidation)
	}
	if target < MinTarget || target > MaxTarget {
		return fmt.Errorf("session: target %d outside [%d, %d]: %w", target, MinTarget, MaxTarget, ErrValidation)
	}
	return nil
}

// CreateCounter adds a counter to the local store.
func CreateCounter(db *gorm.DB, title string, target int) (*models.Counter, error) {
	if err := validateInput(title, target); err != nil {
		return nil, err
	}

	c := models.Counter{Title: title, Target: target}
	if err := db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("session: create counter: %w", err)
	}
	return &c, nil
}

// ListCounters returns all counters in creation order.
func ListCounters(db *gorm.DB) ([]models.Counter, error) {
	var counters []models.Counter
	if err := db.Order("id ASC").Find(&counters).Error; err != nil {
		return nil, fmt.Errorf("session: list counters: %w", err)
	}
	return counters, nil
}

// GetCounter retrieves a counter by id.
func GetCounter(db *gorm.DB, id uint) (*models.Counter, error) {
	var c models.Counter
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session: counter %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("session: get counter %d: %w", id, err)
	}
	return &c, nil
}

// EditCounter changes a counter's title and target in place. History is
// untouched; live progress above a lowered target is clamped so the next
// tap completes the run instead of overshooting.
func EditCounter(db *gorm.DB, id uint, title string, target int) (*models.Counter, error) {
	if err := validateInput(title, target); err != nil {
		return nil, err
	}

	c, err := GetCounter(db, id)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		c.Title = title
		c.Target = target
		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("session: edit counter %d: %w", id, err)
		}

		var lp models.LiveProgress
		if err := tx.First(&lp, "counter_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("session: edit counter %d: read progress: %w", id, err)
		}
		if lp.Current > target {
			lp.Current = target
			if err := tx.Save(&lp).Error; err != nil {
				return fmt.Errorf("session: edit counter %d: clamp progress: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCounter removes a counter and cascades to its history entries and
// its live-progress record, leaving no orphans.
func DeleteCounter(db *gorm.DB, id uint) error {
	if _, err := GetCounter(db, id); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.HistoryEntry{}, "counter_id = ?", id).Error; err != nil {
			return fmt.Errorf("session: delete counter %d: history: %w", id, err)
		}
		if err := tx.Delete(&models.LiveProgress{}, "counter_id = ?", id).Error; err != nil {
			return fmt.Errorf("session: delete counter %d: progress: %w", id, err)
		}
		if err := tx.Delete(&models.Counter{}, id).Error; err != nil {
			return fmt.Errorf("session: delete counter %d: %w", id, err)
		}
		return nil
	})
}

// ListHistory returns all history entries, oldest first.
func ListHistory(db *gorm.DB) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := db.Order("timestamp ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("session: list history: %w", err)
	}
	return entries, nil
}

// DeleteHistoryEntry removes a single history entry by id.
func DeleteHistoryEntry(db *gorm.DB, id uint) error {
	res := db.Delete(&models.HistoryEntry{}, id)
	if res.Error != nil {
		return fmt.Errorf("session: delete history entry %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session: history entry %d: %w", id, ErrNotFound)
	}
	return nil
}
