package notify

import (
	"sync"

	logx "github.com/qkart/storefront/pkg/logger"
)

// Variant mirrors the severity levels a user-facing toast can have.
type Variant string

const (
	Success Variant = "success"
	Info    Variant = "info"
	Warning Variant = "warning"
	Error   Variant = "error"
)

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(variant Variant, message string)
}

// Func adapts a plain function to Notifier.
type Func func(variant Variant, message string)

func (f Func) Notify(variant Variant, message string) { f(variant, message) }

// LogNotifier writes notifications through the structured logger.
type LogNotifier struct{}

func (LogNotifier) Notify(variant Variant, message string) {
	switch variant {
	case Error:
		logx.Error().Str("variant", string(variant)).Msg(message)
	case Warning:
		logx.Warn().Str("variant", string(variant)).Msg(message)
	default:
		logx.Info().Str("variant", string(variant)).Msg(message)
	}
}

// Notification is one recorded message.
type Notification struct {
	Variant Variant
	Message string
}

// Recorder keeps every notification in order. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(variant Variant, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Variant: variant, Message: message})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(variant Variant, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(variant, message)
		}
	}
}
