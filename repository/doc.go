// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package repository is the SQL persistence layer.

  - ExamRepository: the exam collection; satisfies catalog.Remote
  - AdminRepository: admin accounts, upserted by email
  - SessionRepository: admin session rows backing access tokens

Queries use $N placeholders, which both lib/pq and modernc.org/sqlite
accept. Missing rows are reported as ErrNotFound (wrapped with the id for
exams).
*/
package repository
