package synth

import (
	"sync"
	"sync/atomic"
)

// ParamStore hands parameter snapshots from control threads to the audio
// thread. Readers never block; writers are serialized and notify
// observers after each assignment.
type ParamStore struct {
	cur atomic.Pointer[Params]

	mu        sync.Mutex
	observers []*observer
}

type observer struct {
	fn func(Params)
}

// NewParamStore returns a store holding p, clamped.
func NewParamStore(p Params) *ParamStore {
	s := &ParamStore{}
	c := p.Clamped()
	s.cur.Store(&c)

	return s
}

// Load returns the current snapshot.
func (s *ParamStore) Load() Params {
	return *s.cur.Load()
}

// Store replaces the whole snapshot.
func (s *ParamStore) Store(p Params) {
	s.update(func(cur *Params) error {
		*cur = p
		return nil
	})
}

// Set assigns one parameter, clamped to its range.
func (s *ParamStore) Set(name string, v float64) error {
	return s.update(func(cur *Params) error {
		return cur.Set(name, v)
	})
}

// Nudge adds delta to one parameter and returns the clamped result.
func (s *ParamStore) Nudge(name string, delta float64) (float64, error) {
	var out float64

	err := s.update(func(cur *Params) error {
		v, err := cur.Get(name)
		if err != nil {
			return err
		}

		if err := cur.Set(name, v+delta); err != nil {
			return err
		}

		out, _ = cur.Get(name)

		return nil
	})

	return out, err
}

// Observe registers fn to run after every successful assignment. Observers
// run on the writing goroutine, never on the audio thread. The returned
// function unregisters fn.
func (s *ParamStore) Observe(fn func(Params)) (cancel func()) {
	o := &observer{fn: fn}

	s.mu.Lock()
	s.observers = append(s.observers[:len(s.observers):len(s.observers)], o)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		kept := make([]*observer, 0, len(s.observers))
		for _, x := range s.observers {
			if x != o {
				kept = append(kept, x)
			}
		}

		s.observers = kept
	}
}

func (s *ParamStore) update(mutate func(*Params) error) error {
	s.mu.Lock()

	next := *s.cur.Load()
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}

	next = next.Clamped()
	s.cur.Store(&next)
	observers := s.observers
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(next)
	}

	return nil
}
