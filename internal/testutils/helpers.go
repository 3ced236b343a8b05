package testutils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
)

// Entry is one diagnostic captured by Sink.
type Entry struct {
	Err   bool
	Msg   string
	Stack []domain.StateID
}

// Sink is an hsm.Sink that keeps every message for assertions.
type Sink struct {
	mu      sync.Mutex
	entries []Entry
}

var _ hsm.Sink = (*Sink)(nil)

// Log implements hsm.Sink.
func (s *Sink) Log(m hsm.Inspector, msg string) { s.add(false, m, msg) }

// LogError implements hsm.Sink.
func (s *Sink) LogError(m hsm.Inspector, msg string) { s.add(true, m, msg) }

func (s *Sink) add(isErr bool, m hsm.Inspector, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Err: isErr, Msg: msg, Stack: m.Stack()})
}

// Entries returns every captured message in order.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Errors returns the messages sent through LogError.
func (s *Sink) Errors() []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.Err {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any message contains substr.
func (s *Sink) Contains(substr string) bool {
	for _, e := range s.Entries() {
		if strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// RecoverErr runs fn and returns the error it panicked with, if any.
func RecoverErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
