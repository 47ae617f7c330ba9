package models

import "time"

// HistoryEntry records one completed run. Entries are append-only: once
// written they are never mutated, only deleted when their counter is
// deleted or the user removes them explicitly.
type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CounterID uint      `gorm:"index;not null"`
	Title     string    `gorm:"not null"`
	Target    int       `gorm:"not null"`
	Achieved  int       `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
}
