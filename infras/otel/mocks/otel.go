// Package mocks provides in-memory otel.Otel implementations for handler and middleware tests.
package mocks

import (
	"context"
	"shareit/infras/otel"
	"sync"
)

// Recorder is an otel.Otel that keeps the name, attributes and errors of every scope it opens.
type Recorder struct {
	mu     sync.Mutex
	Scopes []*RecordedScope
}

type RecordedScope struct {
	Name       string
	Attributes map[string]any
	Events     []string
	Errors     []error
	Ended      bool

	recorder *Recorder
}

// NewOtel returns a Recorder whose output is usually ignored.
func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &RecordedScope{
		Name:       spanName,
		Attributes: map[string]any{},
		recorder:   r,
	}

	r.mu.Lock()
	r.Scopes = append(r.Scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

// Find returns the first scope opened with the given span name.
func (r *Recorder) Find(name string) (*RecordedScope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scope := range r.Scopes {
		if scope.Name == name {
			return scope, true
		}
	}

	return nil, false
}

func (s *RecordedScope) End() {
	s.recorder.mu.Lock()
	s.Ended = true
	s.recorder.mu.Unlock()
}

func (s *RecordedScope) TraceError(err error) {
	s.recorder.mu.Lock()
	s.Errors = append(s.Errors, err)
	s.recorder.mu.Unlock()
}

func (s *RecordedScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *RecordedScope) AddEvent(name string) {
	s.recorder.mu.Lock()
	s.Events = append(s.Events, name)
	s.recorder.mu.Unlock()
}

func (s *RecordedScope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	s.Attributes[key] = value
	s.recorder.mu.Unlock()
}

func (s *RecordedScope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
