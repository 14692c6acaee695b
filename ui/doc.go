// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ui holds the interaction state behind the admin screens.

  - Notifier: transient info/success/error messages that dismiss themselves
  - ConfirmDialog: a single pending yes/no question; Ask blocks until answered
  - EditModal: the exam currently being edited, saved through catalog.Edit
  - DeleteExam: confirm, delete through the store, report the outcome

Nothing here renders anything. Front ends (the examctl CLI, for one) drive
these types and display what they expose.
*/
package ui
