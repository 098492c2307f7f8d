// Package testutil provides scripted translation backends for tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"
)

// StubPort is a scripted translation backend. The zero value uppercases
// its input; Replies and Errs override behavior per source text. It
// tracks every call and the maximum number of calls in flight at once.
type StubPort struct {
	// Replies maps source text to the translation to return.
	Replies map[string]string
	// Errs maps source text to an error to return instead.
	Errs map[string]error
	// Delay is how long each call holds its slot before returning.
	Delay time.Duration
	// DelayFor overrides Delay for specific texts, e.g. to force
	// out-of-submission-order completion.
	DelayFor map[string]time.Duration

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

// Translate implements the translation.Port interface.
func (s *StubPort) Translate(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	delay := s.Delay
	if d, ok := s.DelayFor[text]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	if err, ok := s.Errs[text]; ok {
		return "", err
	}
	if reply, ok := s.Replies[text]; ok {
		return reply, nil
	}
	return strings.ToUpper(text), nil
}

// Calls returns a copy of the texts translated so far.
func (s *StubPort) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount returns how many calls the stub has served.
func (s *StubPort) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// MaxInFlight returns the highest number of simultaneous calls observed.
func (s *StubPort) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}
