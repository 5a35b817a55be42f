package store

import "sync"

// Listener receives the state after each publish.
type Listener[S any] func(S)

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

// Store is a subscribable value. Mutations swap the state under a lock and
// then notify listeners on the mutating goroutine, in registration order.
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	nextID    uint64
	listeners []subscription[S]
}

// New returns a Store holding initial.
func New[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the state and publishes it.
func (s *Store[S]) Set(v S) {
	s.Update(func(S) S { return v })
}

// Update derives the next state from the current one and publishes it.
// fn runs under the store lock and must not call back into the store.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	next := fn(s.state)
	s.state = next
	listeners := s.snapshot()
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
	return next
}

// Subscribe registers fn, calls it once with the current state, and
// returns a function that removes it.
func (s *Store[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: fn})
	current := s.state
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store[S]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Store[S]) snapshot() []subscription[S] {
	out := make([]subscription[S], len(s.listeners))
	copy(out, s.listeners)
	return out
}
