// Package pubsub is an in-process publish/subscribe channel with
// latest-value-only delivery.
package pubsub

import "sync"

// Topic fans a value out to handlers and mailboxes.
//
// Handlers run synchronously inside Publish. Mailboxes hold at most one value:
// a publish replaces any value the watcher has not read yet, so a slow reader
// only ever sees the most recent one.
type Topic[T any] struct {
	mu        sync.Mutex
	nextID    int
	handlers  map[int]func(T)
	mailboxes map[int]chan T
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{
		handlers:  make(map[int]func(T)),
		mailboxes: make(map[int]chan T),
	}
}

// Subscribe registers fn and returns an idempotent unsubscribe func.
func (t *Topic[T]) Subscribe(fn func(T)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.handlers[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.handlers, id)
			t.mu.Unlock()
		})
	}
}

// Watch returns a single-slot mailbox and a cancel func that closes it.
func (t *Topic[T]) Watch() (<-chan T, func()) {
	ch := make(chan T, 1)
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.mailboxes[id] = ch
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.mailboxes, id)
			t.mu.Unlock()
			close(ch)
		})
	}
}

// Publish stores v in every mailbox, then runs every handler in
// subscription order outside the lock.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	handlers := make([]func(T), 0, len(t.handlers))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.handlers[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	for _, ch := range t.mailboxes {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
	t.mu.Unlock()

	for _, fn := range handlers {
		fn(v)
	}
}

// Subscribers counts handlers plus mailboxes.
func (t *Topic[T]) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handlers) + len(t.mailboxes)
}
