package notify

import "time"

// Tray holds the toasts currently on screen, oldest first. It is owned by
// the UI update loop and is not safe for concurrent use.
type Tray struct {
	items []Toast
}

func (t *Tray) Add(toast Toast) {
	t.items = append(t.items, toast)
}

func (t *Tray) Dismiss(id string) bool {
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// Expire drops every toast whose lifetime has elapsed at now and reports how
// many were removed.
func (t *Tray) Expire(now time.Time) int {
	kept := t.items[:0:0]
	for _, toast := range t.items {
		if now.Before(toast.ExpiresAt()) {
			kept = append(kept, toast)
		}
	}
	removed := len(t.items) - len(kept)
	t.items = kept
	return removed
}

func (t *Tray) Items() []Toast {
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Tray) Len() int {
	return len(t.items)
}

// NextExpiry is the earliest time a toast will expire.
func (t *Tray) NextExpiry() (time.Time, bool) {
	var next time.Time
	for _, toast := range t.items {
		if exp := toast.ExpiresAt(); next.IsZero() || exp.Before(next) {
			next = exp
		}
	}
	return next, !next.IsZero()
}
