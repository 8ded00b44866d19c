// Package store holds page state behind a reducer. State values are treated as
// immutable: reducers return a new value and never mutate the one passed in.
package store

import (
	"context"
	"sync"
)

type Reducer[S, A any] func(state S, action A) S

type Store[S, A any] struct {
	mu      sync.RWMutex
	state   S
	reduce  Reducer[S, A]
	version uint64
}

func New[S, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{state: initial, reduce: reduce}
}

func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version increases by one on every applied action.
func (s *Store[S, A]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reduce(s.state, action)
	s.version++
	return s.state
}

// DispatchIfActive applies action only while ctx is live. A result that
// arrives after its caller went away is dropped and the state is left as is.
func (s *Store[S, A]) DispatchIfActive(ctx context.Context, action A) (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return s.state, false
	}
	s.state = s.reduce(s.state, action)
	s.version++
	return s.state, true
}
