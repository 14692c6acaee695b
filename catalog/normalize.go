// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"strings"

	"github.com/danielhkuo/exam-archive/models"
)

// Cycles are stored as "1".."10"
var Cycles = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// ExamTypes are the canonical exam type labels
var ExamTypes = []string{models.TypeParcial, models.TypeFinal, models.TypeSustitutorio}

var romanCycles = map[string]string{
	"I": "1", "II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9", "X": "10",
}

// NormalizeCycle maps Roman numerals to their decimal form.
// Unknown values are returned trimmed but otherwise unchanged.
func NormalizeCycle(cycle string) string {
	cycle = strings.TrimSpace(cycle)
	if n, ok := romanCycles[strings.ToUpper(cycle)]; ok {
		return n
	}
	return cycle
}

// NormalizeType maps the short "Susti" label to "Sustitutorio" and fixes case
func NormalizeType(t string) string {
	t = strings.TrimSpace(t)
	switch strings.ToLower(t) {
	case "susti", "sustitutorio":
		return models.TypeSustitutorio
	case "parcial":
		return models.TypeParcial
	case "final":
		return models.TypeFinal
	}
	return t
}

// Normalize trims text fields and canonicalises cycle and type
func Normalize(in models.ExamInput) models.ExamInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Course = strings.TrimSpace(in.Course)
	in.Career = strings.TrimSpace(in.Career)
	in.Cycle = NormalizeCycle(in.Cycle)
	in.Type = NormalizeType(in.Type)
	in.Period = strings.TrimSpace(in.Period)
	in.ExamURL = strings.TrimSpace(in.ExamURL)
	return in
}

// NormalizePatch is Normalize for the fields a patch sets
func NormalizePatch(p models.ExamPatch) models.ExamPatch {
	trim := func(s *string, f func(string) string) *string {
		if s == nil {
			return nil
		}
		v := f(*s)
		return &v
	}
	p.Title = trim(p.Title, strings.TrimSpace)
	p.Course = trim(p.Course, strings.TrimSpace)
	p.Career = trim(p.Career, strings.TrimSpace)
	p.Cycle = trim(p.Cycle, NormalizeCycle)
	p.Type = trim(p.Type, NormalizeType)
	p.Period = trim(p.Period, strings.TrimSpace)
	p.ExamURL = trim(p.ExamURL, strings.TrimSpace)
	return p
}
