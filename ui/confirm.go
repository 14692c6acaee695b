// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"context"
	"sync"
)

type Decision int

const (
	Cancelled Decision = iota
	Confirmed
)

func (d Decision) String() string {
	if d == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

type confirmRequest struct {
	message string
	reply   chan Decision
}

// ConfirmDialog holds at most one pending yes/no question.
// Ask blocks until Confirm or Cancel answers it.
type ConfirmDialog struct {
	prompt func(message string)

	mu      sync.Mutex
	pending *confirmRequest
}

// NewConfirmDialog creates a dialog. prompt, if set, runs in its own
// goroutine whenever a question becomes pending; it is expected to end up
// calling Confirm or Cancel.
func NewConfirmDialog(prompt func(message string)) *ConfirmDialog {
	return &ConfirmDialog{prompt: prompt}
}

// Ask shows message and waits for the answer. A cancelled ctx, or a newer
// Ask replacing this one, yields Cancelled.
func (d *ConfirmDialog) Ask(ctx context.Context, message string) Decision {
	req := &confirmRequest{message: message, reply: make(chan Decision, 1)}

	d.mu.Lock()
	if d.pending != nil {
		d.pending.reply <- Cancelled
	}
	d.pending = req
	d.mu.Unlock()

	if d.prompt != nil {
		go d.prompt(message)
	}

	select {
	case decision := <-req.reply:
		return decision
	case <-ctx.Done():
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.pending == req {
			d.pending = nil
			return Cancelled
		}
		// Already answered; the reply was sent before pending moved on
		return <-req.reply
	}
}

// Pending returns the question waiting for an answer, if any
func (d *ConfirmDialog) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return "", false
	}
	return d.pending.message, true
}

// Confirm answers the pending question with yes; false if none was pending
func (d *ConfirmDialog) Confirm() bool {
	return d.resolve(Confirmed)
}

// Cancel answers the pending question with no; false if none was pending
func (d *ConfirmDialog) Cancel() bool {
	return d.resolve(Cancelled)
}

func (d *ConfirmDialog) resolve(decision Decision) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return false
	}
	d.pending.reply <- decision
	d.pending = nil
	return true
}
