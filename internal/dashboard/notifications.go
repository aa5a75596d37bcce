package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient feed entry, the stand-in for the UI's toast
// notifications.
type Notification struct {
	ID      uuid.UUID
	Level   Level
	Message string
	At      time.Time
}

// feed is a bounded notification list; the oldest entry is dropped when full.
type feed struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

func newFeed(max int) *feed {
	if max <= 0 {
		max = 20
	}
	return &feed{max: max}
}

func (f *feed) push(level Level, message string) Notification {
	n := Notification{
		ID:      uuid.New(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if len(f.items) > f.max {
		f.items = f.items[len(f.items)-f.max:]
	}
	return n
}

func (f *feed) list() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}
