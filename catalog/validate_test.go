// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/exam-archive/models"
)

func validInput() models.ExamInput {
	return models.ExamInput{
		Title:   "Algoritmos - Parcial A",
		Course:  "Algoritmos y Estructuras de Datos",
		Career:  "informatica",
		Cycle:   "3",
		Type:    "Parcial",
		Period:  "1",
		Year:    2024,
		ExamURL: "https://repositorio.urp.edu.pe/handle/123456789/examen.pdf",
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ExamInput)
		wantErr bool
	}{
		{"valid", func(in *models.ExamInput) {}, false},
		{"optional fields empty", func(in *models.ExamInput) { in.Cycle, in.Type, in.Period = "", "", "" }, false},
		{"missing title", func(in *models.ExamInput) { in.Title = "" }, true},
		{"missing course", func(in *models.ExamInput) { in.Course = "" }, true},
		{"unknown career", func(in *models.ExamInput) { in.Career = "medicina" }, true},
		{"malformed url", func(in *models.ExamInput) { in.ExamURL = "not-a-url" }, true},
		{"cycle out of range", func(in *models.ExamInput) { in.Cycle = "11" }, true},
		{"unnormalised type", func(in *models.ExamInput) { in.Type = "Susti" }, true},
		{"bad period", func(in *models.ExamInput) { in.Period = "3" }, true},
		{"year too old", func(in *models.ExamInput) { in.Year = 2019 }, true},
		{"year too far ahead", func(in *models.ExamInput) { in.Year = time.Now().Year() + 2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateInput(in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExam)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInput_FieldNames(t *testing.T) {
	in := validInput()
	in.ExamURL = "not-a-url"

	err := ValidateInput(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"exam_url must be a valid URL"}, verr.Fields)
}

func TestValidatePatch(t *testing.T) {
	empty := ""
	badURL := "nope"
	goodURL := "https://repositorio.urp.edu.pe/x.pdf"
	year := 2010

	assert.ErrorIs(t, ValidatePatch(models.ExamPatch{}), ErrInvalidExam)
	assert.ErrorIs(t, ValidatePatch(models.ExamPatch{Title: &empty}), ErrInvalidExam)
	assert.ErrorIs(t, ValidatePatch(models.ExamPatch{ExamURL: &badURL}), ErrInvalidExam)
	assert.ErrorIs(t, ValidatePatch(models.ExamPatch{Year: &year}), ErrInvalidExam)
	assert.NoError(t, ValidatePatch(models.ExamPatch{ExamURL: &goodURL}))
}

func TestNormalize(t *testing.T) {
	in := Normalize(models.ExamInput{Title: "  T  ", Cycle: "viii", Type: "Susti", ExamURL: " https://x.pe/a "})

	assert.Equal(t, "T", in.Title)
	assert.Equal(t, "8", in.Cycle)
	assert.Equal(t, models.TypeSustitutorio, in.Type)
	assert.Equal(t, "https://x.pe/a", in.ExamURL)

	assert.Equal(t, "10", NormalizeCycle("X"))
	assert.Equal(t, "7", NormalizeCycle("7"))
	assert.Equal(t, models.TypeFinal, NormalizeType("final"))
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://repositorio.urp.edu.pe/handle/1"))
	assert.False(t, ValidURL("not-a-url"))
	assert.False(t, ValidURL("/relative/path"))
	assert.False(t, ValidURL(""))
}

func TestUpload_RejectsBadURLBeforeStore(t *testing.T) {
	remote := &fakeRemote{}
	s := NewStore(remote)

	res := Upload(context.Background(), s, models.ExamInput{
		Title: "X", Course: "Y", Career: "civil", ExamURL: "not-a-url",
	})

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err(), ErrInvalidExam)
	assert.Equal(t, 0, remote.calls)
	assert.Empty(t, s.Snapshot())
}

func TestUpload_NormalisesAndDefaultsYear(t *testing.T) {
	remote := &fakeRemote{}
	s := NewStore(remote)

	res := Upload(context.Background(), s, models.ExamInput{
		Title: "X", Course: "Y", Career: "civil", Cycle: "IV", Type: "Susti",
		ExamURL: "https://repositorio.urp.edu.pe/x.pdf",
	})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, time.Now().Year(), res.Data.Year)
	assert.Equal(t, "4", res.Data.Cycle)
	assert.Equal(t, models.TypeSustitutorio, res.Data.Type)
	assert.Equal(t, res.Data.ID, s.Snapshot()[0].ID)
}

func TestEdit(t *testing.T) {
	s, remote := loadedStore(t)
	calls := remote.calls

	bad := "ftp"
	res := Edit(context.Background(), s, "1", models.ExamPatch{ExamURL: &bad})
	assert.False(t, res.Success)
	assert.Equal(t, calls, remote.calls)

	cycle := "II"
	res = Edit(context.Background(), s, "1", models.ExamPatch{Cycle: &cycle})
	require.True(t, res.Success, res.Error)
	e, _ := s.Get("1")
	assert.Equal(t, "2", e.Cycle)
}
