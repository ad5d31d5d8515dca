// Package notify delivers table events to subscribed observers.
//
// Delivery is synchronous: Notify returns after every matching observer has
// run, in subscription order. Observers run outside the notifier lock and
// may subscribe or unsubscribe from within a callback.
package notify

import (
	"sort"
	"sync"
)

// Observer is called for each delivered event.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	observer Observer
	// kinds filters delivery; empty means every kind.
	kinds map[Kind]struct{}
}

// Notifier manages event subscriptions.
type Notifier struct {
	mu sync.RWMutex

	observers map[uint64]entry
	nextID    uint64
	closed    bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]entry),
	}
}

// Subscribe registers an observer for every event.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.subscribe(observer, nil)
}

// SubscribeKind registers an observer for the listed event kinds.
func (n *Notifier) SubscribeKind(observer Observer, kinds ...Kind) *Subscription {
	set := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return n.subscribe(observer, set)
}

func (n *Notifier) subscribe(observer Observer, kinds map[Kind]struct{}) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = entry{observer: observer, kinds: kinds}

	return &Subscription{id: id, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Notify delivers event to every matching observer.
// A nil notifier or a closed one drops the event.
func (n *Notifier) Notify(event Event) {
	if n == nil || event == nil {
		return
	}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	ids := make([]uint64, 0, len(n.observers))
	for id, e := range n.observers {
		if len(e.kinds) > 0 {
			if _, ok := e.kinds[event.Kind()]; !ok {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.observers[id].observer
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(event)
	}
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.observers = make(map[uint64]entry)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
