package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultNotificationTTL = 3 * time.Second

// Notifier shows notifications on a view and dismisses each one after ttl.
type Notifier struct {
	view   View
	ttl    time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewNotifier(view View, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}

	return &Notifier{
		view:   view,
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

func (n *Notifier) Success(message string) Notification {
	return n.notify(KindSuccess, message)
}

func (n *Notifier) Error(message string) Notification {
	return n.notify(KindError, message)
}

func (n *Notifier) notify(kind NotificationKind, message string) Notification {
	notification := Notification{
		ID:      uuid.New().String(),
		Kind:    kind,
		Message: message,
	}

	n.view.ShowNotification(notification)

	n.mu.Lock()
	n.timers[notification.ID] = time.AfterFunc(n.ttl, func() {
		n.dismiss(notification.ID)
	})
	n.mu.Unlock()

	return notification
}

func (n *Notifier) dismiss(id string) {
	n.mu.Lock()
	_, pending := n.timers[id]
	delete(n.timers, id)
	n.mu.Unlock()

	if pending {
		n.view.DismissNotification(id)
	}
}

// Pending returns how many notifications are still waiting to be dismissed.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.timers)
}

// Stop cancels every pending dismissal. Notifications already shown stay.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
}
