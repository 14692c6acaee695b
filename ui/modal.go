// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/models"
)

const (
	msgUpdated      = "Examen actualizado exitosamente"
	msgUpdateFailed = "Error al actualizar el examen: "
	msgDeleted      = "Examen eliminado exitosamente"
	msgDeleteFailed = "Error al eliminar el examen: "
)

// EditModal tracks the exam being edited
type EditModal struct {
	mu      sync.Mutex
	editing *models.Exam
}

func (m *EditModal) Open(exam models.Exam) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = &exam
}

func (m *EditModal) Current() (models.Exam, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		return models.Exam{}, false
	}
	return *m.editing, true
}

func (m *EditModal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = nil
}

// Save submits patch for the open exam. On success the modal closes; on
// failure it stays open with the error reported through n.
func (m *EditModal) Save(ctx context.Context, store *catalog.Store, n *Notifier, patch models.ExamPatch) catalog.Result {
	exam, ok := m.Current()
	if !ok {
		return catalog.Result{Success: false, Error: "no exam is being edited"}
	}

	res := catalog.Edit(ctx, store, exam.ID, patch)
	if !res.Success {
		n.Error(msgUpdateFailed + res.Error)
		return res
	}

	n.Success(msgUpdated)
	m.Close()
	return res
}

// DeleteExam asks for confirmation, deletes, and reports the outcome.
// A declined confirmation returns Cancelled without touching the store.
func DeleteExam(ctx context.Context, d *ConfirmDialog, store *catalog.Store, n *Notifier, exam models.Exam) (catalog.Result, Decision) {
	question := fmt.Sprintf("¿Estás seguro de que quieres eliminar el examen %q?", exam.Title)
	if d.Ask(ctx, question) != Confirmed {
		return catalog.Result{}, Cancelled
	}

	res := store.Delete(ctx, exam.ID)
	if !res.Success {
		n.Error(msgDeleteFailed + res.Error)
	} else {
		n.Success(msgDeleted)
	}
	return res, Confirmed
}
