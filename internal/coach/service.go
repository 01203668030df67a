package coach

import (
	"context"
	"errors"
	"sync"
)

// Service produces explanations in the background so the quiz never waits
// on the network. One slot holds the latest result; a newer request
// replaces an older one.
type Service struct {
	explainer Explainer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	gen     uint64
	pending *Explanation
	err     error
	ready   bool
}

// NewService creates a Service over explainer.
func NewService(explainer Explainer) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{explainer: explainer, ctx: ctx, cancel: cancel}
}

// Request starts explaining in. Any earlier result not yet consumed is
// discarded.
func (s *Service) Request(in Input) {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.pending, s.err, s.ready = nil, nil, false
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		exp, err := s.explainer.Explain(s.ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || s.ctx.Err() != nil {
			return
		}
		s.pending, s.err, s.ready = exp, err, true
	}()
}

// Consume reports whether the latest request has finished and, if so,
// clears the slot and returns its outcome. A failed request returns ready
// with a nil explanation and the explainer's error.
func (s *Service) Consume() (exp *Explanation, ready bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false, nil
	}
	exp, err = s.pending, s.err
	s.pending, s.err, s.ready = nil, nil, false
	if exp == nil && err == nil {
		err = errors.New("explainer returned no explanation")
	}
	return exp, true, err
}

// Discard drops pending work, typically when the quiz moves on.
func (s *Service) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending, s.err, s.ready = nil, nil, false
}

// Close cancels in-flight work and waits for it to stop.
func (s *Service) Close() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}
