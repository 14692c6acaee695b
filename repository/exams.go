// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/exam-archive/models"
)

var ErrNotFound = errors.New("not found")

const examColumns = `id, title, course, career, cycle, type, period, year, exam_url, created_at`

// ExamRepository is the SQL-backed exam collection
type ExamRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewExamRepository(db *sql.DB) *ExamRepository {
	return &ExamRepository{db: db, now: time.Now}
}

// List returns every exam, newest first
func (r *ExamRepository) List(ctx context.Context) ([]models.Exam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+examColumns+`
		FROM exams
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exams: %w", err)
	}
	defer rows.Close()

	exams := []models.Exam{}
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exams: %w", err)
	}

	return exams, nil
}

// Get returns one exam by id
func (r *ExamRepository) Get(ctx context.Context, id string) (models.Exam, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	exam, err := scanExam(row)
	if err == sql.ErrNoRows {
		return models.Exam{}, fmt.Errorf("exam %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Exam{}, fmt.Errorf("failed to query exam: %w", err)
	}
	return exam, nil
}

// Insert stores a new exam and returns it with its id and created_at
func (r *ExamRepository) Insert(ctx context.Context, in models.ExamInput) (models.Exam, error) {
	exam := models.Exam{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Course:    in.Course,
		Career:    in.Career,
		Cycle:     in.Cycle,
		Type:      in.Type,
		Period:    in.Period,
		Year:      in.Year,
		ExamURL:   in.ExamURL,
		CreatedAt: r.now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exams (`+examColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, exam.ID, exam.Title, exam.Course, exam.Career, exam.Cycle, exam.Type,
		exam.Period, exam.Year, exam.ExamURL, exam.CreatedAt)
	if err != nil {
		return models.Exam{}, fmt.Errorf("failed to insert exam: %w", err)
	}

	return exam, nil
}

// Update applies a patch and returns the stored row
func (r *ExamRepository) Update(ctx context.Context, id string, patch models.ExamPatch) (models.Exam, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Course != nil {
		add("course", *patch.Course)
	}
	if patch.Career != nil {
		add("career", *patch.Career)
	}
	if patch.Cycle != nil {
		add("cycle", *patch.Cycle)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Period != nil {
		add("period", *patch.Period)
	}
	if patch.Year != nil {
		add("year", *patch.Year)
	}
	if patch.ExamURL != nil {
		add("exam_url", *patch.ExamURL)
	}

	// Nothing to change: report the current row
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE exams SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Exam{}, fmt.Errorf("failed to update exam: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return models.Exam{}, fmt.Errorf("failed to update exam: %w", err)
	}
	if n == 0 {
		return models.Exam{}, fmt.Errorf("exam %s: %w", id, ErrNotFound)
	}

	return r.Get(ctx, id)
}

// Delete removes an exam; a missing id is an error
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exam %s: %w", id, ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExam(s scanner) (models.Exam, error) {
	var exam models.Exam
	err := s.Scan(
		&exam.ID, &exam.Title, &exam.Course, &exam.Career, &exam.Cycle,
		&exam.Type, &exam.Period, &exam.Year, &exam.ExamURL, &exam.CreatedAt,
	)
	exam.CreatedAt = exam.CreatedAt.UTC()
	return exam, err
}
