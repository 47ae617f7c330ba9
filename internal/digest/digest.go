// Package digest pushes a scheduled daily summary of completed runs
// through the notifier fanout.
package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/tasbih/internal/history"
	"github.com/zulandar/tasbih/internal/models"
	"github.com/zulandar/tasbih/internal/notify"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextRun parses a 5-field cron expression and returns the next fire time
// after from.
func NextRun(expr string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("digest: parse cron %q: %w", expr, err)
	}
	return sched.Next(from), nil
}

// BuildEvent summarizes one calendar day's entries into a notification
// event. ok is false when the day has no completed runs.
func BuildEvent(entries []models.HistoryEntry, day time.Time) (evt notify.Event, ok bool) {
	s := history.Summarize(entries)
	if s.TotalAchieved == 0 && len(entries) == 0 {
		return notify.Event{}, false
	}

	return notify.Event{
		Title:    fmt.Sprintf("Daily summary for %s", day.Format("Jan 02")),
		Body:     fmt.Sprintf("%d runs completed, %d counts in total", len(entries), s.TotalAchieved),
		Severity: "info",
		Fields: []notify.Field{
			{Name: "Runs", Value: fmt.Sprintf("%d", len(entries))},
			{Name: "Total", Value: fmt.Sprintf("%d", s.TotalAchieved)},
		},
	}, true
}

// entriesForDay loads the history entries of one calendar day.
func entriesForDay(db *gorm.DB, day time.Time) ([]models.HistoryEntry, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var entries []models.HistoryEntry
	if err := db.Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("digest: load entries for %s: %w", start.Format("2006-01-02"), err)
	}
	return entries, nil
}

// Run fires a digest on the given cron schedule until ctx is cancelled.
// Delivery failures are logged; a bad expression stops the loop.
func Run(ctx context.Context, db *gorm.DB, notifier notify.Notifier, expr string) error {
	for {
		next, err := NextRun(expr, time.Now())
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-time.After(time.Until(next)):
			entries, err := entriesForDay(db, now)
			if err != nil {
				log.Printf("digest: %v", err)
				continue
			}
			if evt, ok := BuildEvent(entries, now); ok {
				if err := notifier.Notify(ctx, evt); err != nil {
					log.Printf("digest: notify: %v", err)
				}
			}
		}
	}
}
