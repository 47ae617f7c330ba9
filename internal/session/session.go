package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zulandar/tasbih/internal/api"
	"github.com/zulandar/tasbih/internal/models"
	"github.com/zulandar/tasbih/internal/notify"
	"gorm.io/gorm"
)

// State is the phase of a counting session.
type State int

const (
	StateIdle State = iota
	StateCounting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCounting:
		return "counting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// RemoteWriter is the server-side write path used after a run completes.
// *api.Client satisfies it.
type RemoteWriter interface {
	CompleteRun(ctx context.Context, id uint, count int) (api.CounterPayload, error)
}

var _ RemoteWriter = (*api.Client)(nil)

// Opts holds optional collaborators for a counting session.
type Opts struct {
	Remote   RemoteWriter    // nil disables the server write-behind
	Notifier notify.Notifier // nil disables completion notifications
	RemoteID uint            // server-side counter id; defaults to the local id
}

// Session is one counting run for a single counter. Taps update local
// state first; durable and remote writes follow and never roll local
// state back (optimistic, last write wins).
type Session struct {
	db      *gorm.DB
	counter models.Counter
	current int
	opts    Opts
}

// Open starts (or resumes) a counting session for the given counter.
// Persisted live progress is picked up so a session continues exactly
// where the last one left off.
func Open(db *gorm.DB, counterID uint, opts Opts) (*Session, error) {
	c, err := GetCounter(db, counterID)
	if err != nil {
		return nil, err
	}

	s := &Session{db: db, counter: *c, opts: opts}

	var lp models.LiveProgress
	if err := db.First(&lp, "counter_id = ?", counterID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session: open %d: read progress: %w", counterID, err)
		}
	} else {
		s.current = lp.Current
		if s.current > s.counter.Target {
			s.current = s.counter.Target
		}
	}
	return s, nil
}

// Counter returns the counter this session counts against.
func (s *Session) Counter() models.Counter {
	return s.counter
}

// Current returns the in-progress tally.
func (s *Session) Current() int {
	return s.current
}

// State derives the session state from the current tally.
func (s *Session) State() State {
	switch {
	case s.current == 0:
		return StateIdle
	case s.current >= s.counter.Target:
		return StateComplete
	default:
		return StateCounting
	}
}

// Tap increments the tally by exactly one. A tap at Complete is a no-op.
// Live progress is persisted on every tap; a persistence failure is
// logged and the in-memory tally stays authoritative for the session.
// The tap that reaches the target appends exactly one history entry,
// fires the notifier, and writes through to the server when configured.
func (s *Session) Tap(ctx context.Context) (State, error) {
	if s.current >= s.counter.Target {
		return StateComplete, nil
	}

	s.current++
	s.persistProgress()

	if s.current == s.counter.Target {
		if err := s.complete(ctx); err != nil {
			return StateComplete, err
		}
	}
	return s.State(), nil
}

// Restart clears the tally to zero and removes the persisted live
// progress. History is untouched.
func (s *Session) Restart() error {
	s.current = 0
	if err := s.db.Delete(&models.LiveProgress{}, "counter_id = ?", s.counter.ID).Error; err != nil {
		return fmt.Errorf("session: restart %d: %w", s.counter.ID, err)
	}
	return nil
}

// persistProgress writes the live tally through to the local store.
func (s *Session) persistProgress() {
	lp := models.LiveProgress{CounterID: s.counter.ID, Current: s.current}
	if err := s.db.Save(&lp).Error; err != nil {
		log.Printf("session: persist progress for %d: %v", s.counter.ID, err)
	}
}

// complete records the finished run: one immutable history entry, the
// counter's completion stamp, a best-effort notification, and the
// optimistic server write.
func (s *Session) complete(ctx context.Context) error {
	now := time.Now()
	entry := models.HistoryEntry{
		CounterID: s.counter.ID,
		Title:     s.counter.Title,
		Target:    s.counter.Target,
		Achieved:  s.current,
		Timestamp: now,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("session: record completion for %d: %w", s.counter.ID, err)
	}

	s.counter.CompletedAt = &now
	if err := s.db.Model(&models.Counter{}).Where("id = ?", s.counter.ID).
		Update("completed_at", now).Error; err != nil {
		log.Printf("session: stamp completion for %d: %v", s.counter.ID, err)
	}

	if s.opts.Notifier != nil {
		evt := notify.Event{
			Title:    fmt.Sprintf("%s completed", s.counter.Title),
			Body:     fmt.Sprintf("You have completed %d counts of %s", s.current, s.counter.Title),
			Severity: "success",
			Fields: []notify.Field{
				{Name: "Achieved", Value: fmt.Sprintf("%d", s.current)},
				{Name: "Target", Value: fmt.Sprintf("%d", s.counter.Target)},
			},
		}
		if err := s.opts.Notifier.Notify(ctx, evt); err != nil {
			log.Printf("session: notify completion for %d: %v", s.counter.ID, err)
		}
	}

	if s.opts.Remote != nil {
		id := s.opts.RemoteID
		if id == 0 {
			id = s.counter.ID
		}
		if _, err := s.opts.Remote.CompleteRun(ctx, id, s.current); err != nil {
			// Optimistic: local state is already durable and stays
			// authoritative. Surface the failure, don't roll back.
			log.Printf("session: server write for %d: %v", s.counter.ID, err)
		}
	}
	return nil
}
