// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Exam: one past exam, identified by a service-assigned id
  - ExamInput: insert payload (everything but id and created_at)
  - ExamPatch: partial update, nil fields untouched
  - Career: program key and display name
  - Admin, AdminSession: persisted admin accounts and their sessions
  - User, Session: the authenticated identity handed to clients

# Request Types

  - LoginRequest: email, password

# Response Types

  - ExamListResponse: exams, count, load_error
  - CareerExamsResponse: career, exams, count
  - CareerSummary: key, name, count
  - YearsResponse: years
  - ReloadResponse: count
  - ErrorResponse: error, message

# Constants

Exam types:

	TypeParcial      = "Parcial"
	TypeFinal        = "Final"
	TypeSustitutorio = "Sustitutorio"

Periods:

	PeriodFirst  = "1"
	PeriodSecond = "2"

Auth events:

	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventTokenRefreshed = "TOKEN_REFRESHED"

Cycles are the strings "1" through "10".
*/
package models
