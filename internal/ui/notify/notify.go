package notify

import (
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/platform/clock"
	"skillsetu/internal/platform/id"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

const DefaultDuration = 3 * time.Second

type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}

func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(t.Duration)
}

// Broker fans toasts out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full misses the toast.
type Broker struct {
	clock  clock.Clock
	ids    id.Generator
	logger hclog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]chan Toast
}

func NewBroker(clk clock.Clock, ids id.Generator, logger hclog.Logger) *Broker {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if ids == nil {
		ids = id.RandomHex{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Broker{clock: clk, ids: ids, logger: logger, subs: map[int]chan Toast{}}
}

// Subscribe returns a channel of toasts and a cancel func that closes it.
func (b *Broker) Subscribe() (<-chan Toast, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := b.nextID
	b.nextID++
	ch := make(chan Toast, 16)
	b.subs[key] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, key)
			close(ch)
		})
	}
}

func (b *Broker) Publish(message string, severity Severity, duration time.Duration) Toast {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if severity == "" {
		severity = SeverityInfo
	}
	toast := Toast{
		ID:        b.ids.New(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: b.clock.Now(),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, ch := range b.subs {
		select {
		case ch <- toast:
		default:
			b.logger.Warn("dropping toast for slow subscriber", "subscriber", key, "toast", toast.ID)
		}
	}
	return toast
}

func (b *Broker) Success(message string) Toast {
	return b.Publish(message, SeveritySuccess, 0)
}

func (b *Broker) Error(message string) Toast {
	return b.Publish(message, SeverityError, 0)
}

func (b *Broker) Info(message string) Toast {
	return b.Publish(message, SeverityInfo, 0)
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
