// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"sync"

	"github.com/danielhkuo/exam-archive/models"
)

// Remote is the authoritative exam collection the store mirrors
type Remote interface {
	List(ctx context.Context) ([]models.Exam, error)
	Insert(ctx context.Context, in models.ExamInput) (models.Exam, error)
	Update(ctx context.Context, id string, patch models.ExamPatch) (models.Exam, error)
	Delete(ctx context.Context, id string) error
}

// Result is the outcome of a store operation: either success with the
// affected exam (when there is one) or failure with the upstream message.
type Result struct {
	Success bool         `json:"success"`
	Data    *models.Exam `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`

	err error
}

// Err returns the underlying error of a failed result, or nil
func (r Result) Err() error {
	return r.err
}

func succeeded(exam *models.Exam) Result {
	return Result{Success: true, Data: exam}
}

func failed(err error) Result {
	return Result{Success: false, Error: err.Error(), err: err}
}

// Status describes the last load
type Status struct {
	Loading bool   `json:"loading"`
	Loaded  bool   `json:"loaded"`
	Error   string `json:"error,omitempty"`
	Count   int    `json:"count"`
}

// Store holds the in-memory snapshot of the exam collection.
// Every mutation goes to the remote first; the snapshot is only patched
// with the row the remote returns.
type Store struct {
	remote Remote

	mu      sync.RWMutex
	exams   []models.Exam
	loading bool
	loaded  bool
	loadErr error
}

func NewStore(remote Remote) *Store {
	return &Store{remote: remote, exams: []models.Exam{}}
}

// Load replaces the snapshot with the remote list (newest first).
// On failure the previous snapshot is kept and the error is recorded.
func (s *Store) Load(ctx context.Context) Result {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	exams, err := s.remote.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = err
		return failed(err)
	}
	if exams == nil {
		exams = []models.Exam{}
	}
	s.exams = exams
	s.loaded = true
	s.loadErr = nil
	return succeeded(nil)
}

// Add inserts an exam remotely and prepends the created row
func (s *Store) Add(ctx context.Context, in models.ExamInput) Result {
	exam, err := s.remote.Insert(ctx, in)
	if err != nil {
		return failed(err)
	}

	s.mu.Lock()
	next := make([]models.Exam, 0, len(s.exams)+1)
	next = append(next, exam)
	for _, e := range s.exams {
		if e.ID != exam.ID {
			next = append(next, e)
		}
	}
	s.exams = next
	s.mu.Unlock()

	return succeeded(&exam)
}

// Update patches an exam remotely and replaces the local entry in place.
// There is no local existence check; the remote decides.
func (s *Store) Update(ctx context.Context, id string, patch models.ExamPatch) Result {
	exam, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		return failed(err)
	}

	s.mu.Lock()
	next := make([]models.Exam, len(s.exams))
	for i, e := range s.exams {
		if e.ID == id {
			e = exam
		}
		next[i] = e
	}
	s.exams = next
	s.mu.Unlock()

	return succeeded(&exam)
}

// Delete removes an exam remotely, then locally (no-op if absent)
func (s *Store) Delete(ctx context.Context, id string) Result {
	if err := s.remote.Delete(ctx, id); err != nil {
		return failed(err)
	}

	s.mu.Lock()
	next := make([]models.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		if e.ID != id {
			next = append(next, e)
		}
	}
	s.exams = next
	s.mu.Unlock()

	return succeeded(nil)
}

// Snapshot returns a copy of the current exams
func (s *Store) Snapshot() []models.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exam, len(s.exams))
	copy(out, s.exams)
	return out
}

// Get looks an exam up in the snapshot
func (s *Store) Get(id string) (models.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exam{}, false
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{Loading: s.loading, Loaded: s.loaded, Count: len(s.exams)}
	if s.loadErr != nil {
		st.Error = s.loadErr.Error()
	}
	return st
}
