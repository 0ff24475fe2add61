// Package store holds the process-wide state container. A single goroutine
// owns the state tree and applies dispatched actions one at a time; thunks
// run asynchronously and feed their follow-up actions into the same inbox.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/iurnickita/entitlementsupport/internal/metrics"
	"github.com/iurnickita/entitlementsupport/internal/state"
)

type Dispatch func(action state.Action)

type Middleware func(next Dispatch) Dispatch

// Thunk is an asynchronous action. ctx is cancelled when the store closes.
type Thunk func(ctx context.Context, dispatch Dispatch)

// Listener runs on the store goroutine after every reduced action and must
// not call Dispatch itself.
type Listener func(s state.State)

var ErrClosed = errors.New("store closed")

type envelope struct {
	action  state.Action
	applied chan struct{}
}

type listenerEntry struct {
	id       int
	listener Listener
}

type Store struct {
	reducer  state.Reducer
	dispatch Dispatch

	inbox chan envelope
	done  chan struct{}

	mu        sync.RWMutex
	current   state.State
	listeners []listenerEntry
	nextID    int
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
	loop   sync.WaitGroup
}

// New starts the store goroutine. The first middleware is the outermost.
func New(reducer state.Reducer, initial state.State, middleware ...Middleware) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		reducer: reducer,
		current: initial,
		inbox:   make(chan envelope),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	dispatch := Dispatch(s.enqueue)
	for i := len(middleware) - 1; i >= 0; i-- {
		dispatch = middleware[i](dispatch)
	}
	s.dispatch = dispatch

	s.loop.Add(1)
	go s.run()

	return s
}

func (s *Store) run() {
	defer s.loop.Done()
	for {
		select {
		case env := <-s.inbox:
			next := s.reducer(s.current, env.action)

			s.mu.Lock()
			s.current = next
			listeners := make([]listenerEntry, len(s.listeners))
			copy(listeners, s.listeners)
			s.mu.Unlock()

			for _, entry := range listeners {
				entry.listener(next)
			}
			close(env.applied)
		case <-s.done:
			return
		}
	}
}

// Dispatch returns once the action is reduced and every listener has seen the
// new state. Actions dispatched after Close are dropped.
func (s *Store) Dispatch(action state.Action) {
	s.dispatch(action)
}

func (s *Store) enqueue(action state.Action) {
	env := envelope{action: action, applied: make(chan struct{})}
	select {
	case s.inbox <- env:
		<-env.applied
	case <-s.done:
	}
}

// Run starts thunk in its own goroutine. The returned channel is closed when
// the thunk returns.
func (s *Store) Run(thunk Thunk) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.tasks.Add(1)
	s.mu.Unlock()

	done := make(chan struct{})
	metrics.ThunksInFlight.Inc()
	go func() {
		defer s.tasks.Done()
		defer close(done)
		defer metrics.ThunksInFlight.Dec()
		thunk(s.ctx, s.Dispatch)
	}()
	return done, nil
}

func (s *Store) GetState() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers l and returns a function removing it. Listeners see every
// reduced state in dispatch order.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, listener: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Wait blocks until every running thunk has finished.
func (s *Store) Wait() {
	s.tasks.Wait()
}

// Close cancels running thunks, lets them dispatch their last actions and
// stops the store goroutine.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.tasks.Wait()
	close(s.done)
	s.loop.Wait()
}
