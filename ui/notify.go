// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"sync"
	"time"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultNotificationTTL is how long a notification stays visible
const DefaultNotificationTTL = 4 * time.Second

type Notification struct {
	ID        int64
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Notifier is a queue of transient notifications that dismiss themselves
type Notifier struct {
	ttl  time.Duration
	sink func(Notification)

	mu     sync.Mutex
	nextID int64
	items  []Notification
	timers map[int64]*time.Timer
	closed bool
}

// NewNotifier creates a queue; ttl <= 0 disables auto-dismiss.
// sink, if set, is called for every added notification.
func NewNotifier(ttl time.Duration, sink func(Notification)) *Notifier {
	return &Notifier{ttl: ttl, sink: sink, timers: map[int64]*time.Timer{}}
}

// Add queues a message and returns its id
func (n *Notifier) Add(message string, kind Kind) int64 {
	if kind == "" {
		kind = KindInfo
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return 0
	}
	n.nextID++
	item := Notification{ID: n.nextID, Message: message, Kind: kind, CreatedAt: time.Now()}
	n.items = append(n.items, item)
	if n.ttl > 0 {
		id := item.ID
		n.timers[id] = time.AfterFunc(n.ttl, func() { n.Remove(id) })
	}
	n.mu.Unlock()

	if n.sink != nil {
		n.sink(item)
	}
	return item.ID
}

func (n *Notifier) Success(message string) int64 { return n.Add(message, KindSuccess) }

func (n *Notifier) Error(message string) int64 { return n.Add(message, KindError) }

// Remove dismisses a notification; unknown ids are ignored
func (n *Notifier) Remove(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i:i], n.items[i+1:]...)
			return
		}
	}
}

// List returns the visible notifications, oldest first
func (n *Notifier) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Close stops pending timers and drops all notifications
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.items = nil
	n.closed = true
}
