package models

import "time"

// Counter is a named, targeted tally ("tasbih") in the local store.
type Counter struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Target      int    `gorm:"not null"`
	CreatedAt   time.Time
	CompletedAt *time.Time

	History []HistoryEntry `gorm:"foreignKey:CounterID"`
}

// LiveProgress is the resumable in-progress tally for a counter, one row
// per counter. It is rewritten on every tap and cleared on restart.
type LiveProgress struct {
	CounterID uint `gorm:"primaryKey"`
	Current   int  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
