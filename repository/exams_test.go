// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/exam-archive/db"
	"github.com/danielhkuo/exam-archive/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, "sqlite"))
	return conn
}

// fixedClock returns a clock that advances one second per call
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func sampleInput(title string) models.ExamInput {
	return models.ExamInput{
		Title:   title,
		Course:  "Cálculo I",
		Career:  "civil",
		Cycle:   "1",
		Type:    models.TypeParcial,
		Period:  models.PeriodFirst,
		Year:    2024,
		ExamURL: "https://files.example.com/" + title + ".pdf",
	}
}

func TestExamRepository_InsertAndGet(t *testing.T) {
	repo := NewExamRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, sampleInput("parcial"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, created.CreatedAt.Location())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.ExamURL, got.ExamURL)
	assert.Equal(t, 2024, got.Year)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExamRepository_ListNewestFirst(t *testing.T) {
	repo := NewExamRepository(openTestDB(t))
	repo.now = fixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, sampleInput(title))
		require.NoError(t, err)
	}

	exams, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 3)
	assert.Equal(t, "third", exams[0].Title)
	assert.Equal(t, "second", exams[1].Title)
	assert.Equal(t, "first", exams[2].Title)
}

func TestExamRepository_ListEmpty(t *testing.T) {
	repo := NewExamRepository(openTestDB(t))

	exams, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, exams)
	assert.Empty(t, exams)
}

func TestExamRepository_Update(t *testing.T) {
	repo := NewExamRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, sampleInput("parcial"))
	require.NoError(t, err)

	title := "Parcial Cálculo I"
	year := 2023
	updated, err := repo.Update(ctx, created.ID, models.ExamPatch{Title: &title, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 2023, updated.Year)
	assert.Equal(t, created.Course, updated.Course)
	assert.Equal(t, created.ID, updated.ID)

	t.Run("empty patch returns current row", func(t *testing.T) {
		got, err := repo.Update(ctx, created.ID, models.ExamPatch{})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, "missing", models.ExamPatch{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExamRepository_Delete(t *testing.T) {
	repo := NewExamRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, sampleInput("final"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}
