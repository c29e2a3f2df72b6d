package store

import (
	"deskmate/internal/logs"
)

// EventKind tells observers what kind of mutation happened.
type EventKind int

const (
	EventAdded EventKind = iota
	EventUpdated
	EventRemoved
	// EventReset signals a wholesale collection swap (import). No per-task
	// events accompany it.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event describes a single store mutation. ID is empty for reset events.
type Event struct {
	Kind EventKind
	ID   string
}

// Handler receives mutation events synchronously.
type Handler func(Event)

// Subscription is an opaque token returned by Subscribe.
type Subscription int

type subscriber struct {
	token   Subscription
	handler Handler
}

// Notifier is an observer list owned by a Store instance. Handlers run
// synchronously in registration order. A panicking handler is recovered and
// logged so it cannot take down the other observers.
type Notifier struct {
	next Subscription
	subs []subscriber
}

func (n *Notifier) Subscribe(h Handler) Subscription {
	n.next++
	n.subs = append(n.subs, subscriber{token: n.next, handler: h})
	return n.next
}

// Unsubscribe removes a handler. It is a no-op for tokens already removed.
func (n *Notifier) Unsubscribe(token Subscription) {
	for i, s := range n.subs {
		if s.token == token {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

func (n *Notifier) notify(ev Event) {
	for _, s := range n.subs {
		invoke(s.handler, ev)
	}
}

func invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logs.Logger.Printf("store observer panicked on %s event: %v", ev.Kind, r)
		}
	}()
	h(ev)
}
