// Package notify announces tasbih events (run completions, daily digests)
// to configured channels. Delivery is best-effort: a failed notification
// never changes counting state.
package notify

import (
	"context"
	"log"
)

// Event is a notification-worthy occurrence formatted for display.
type Event struct {
	Title    string  // headline, e.g. "SubhanAllah completed"
	Body     string  // detail text
	Severity string  // "info" or "success"
	Fields   []Field // key-value metadata pairs
}

// Field is a key-value pair displayed alongside an event.
type Field struct {
	Name  string
	Value string
}

// Notifier delivers a single event to one destination.
type Notifier interface {
	Notify(ctx context.Context, evt Event) error
}

// Fanout delivers events to every configured notifier. Errors are logged,
// not returned.
type Fanout struct {
	notifiers []Notifier
}

// NewFanout creates a Fanout over the given notifiers.
func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

// Add appends a notifier to the fanout.
func (f *Fanout) Add(n Notifier) {
	f.notifiers = append(f.notifiers, n)
}

// Len returns the number of configured notifiers.
func (f *Fanout) Len() int {
	return len(f.notifiers)
}

// Notify sends the event to all notifiers, best-effort.
func (f *Fanout) Notify(ctx context.Context, evt Event) error {
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, evt); err != nil {
			log.Printf("notify: %v", err)
		}
	}
	return nil
}
