// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/exam-archive/models"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSort accepts "newest", "oldest" or "" (newest)
func ParseSort(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Filter selects and orders exams. Empty fields match everything.
type Filter struct {
	// Career scopes the result to one program
	Career string
	// Q is a case-insensitive substring of title or course, used as is
	Q      string
	Cycle  string
	Type   string
	Period string
	// Year is compared against the decimal year
	Year string
	Sort SortOrder
}

// Active reports whether any user-adjustable filter is set
func (f Filter) Active() bool {
	return f.Q != "" || f.Cycle != "" || f.Type != "" || f.Period != "" || f.Year != ""
}

// Query returns the exams of snapshot matching f, ordered by year.
// The snapshot is not modified.
func Query(snapshot []models.Exam, f Filter) []models.Exam {
	q := strings.ToLower(f.Q)
	cycle := NormalizeCycle(f.Cycle)
	examType := NormalizeType(f.Type)

	result := []models.Exam{}
	if f.Career != "" {
		if _, ok := models.FindCareer(f.Career); !ok {
			return result
		}
	}
	for _, e := range snapshot {
		if f.Career != "" && e.Career != f.Career {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Course), q) {
			continue
		}
		if cycle != "" && NormalizeCycle(e.Cycle) != cycle {
			continue
		}
		if examType != "" && NormalizeType(e.Type) != examType {
			continue
		}
		if f.Period != "" && e.Period != f.Period {
			continue
		}
		if f.Year != "" && strconv.Itoa(e.Year) != f.Year {
			continue
		}
		result = append(result, e)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	case SortNewest, "":
		sort.SliceStable(result, func(i, j int) bool { return result[i].Year > result[j].Year })
	}

	return result
}

// Years returns the distinct exam years, newest first
func Years(snapshot []models.Exam) []int {
	seen := map[int]bool{}
	years := []int{}
	for _, e := range snapshot {
		if !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// CountByCareer counts exams per career key; every known career is present
func CountByCareer(snapshot []models.Exam) map[string]int {
	counts := make(map[string]int, len(models.Careers))
	for _, c := range models.Careers {
		counts[c.Key] = 0
	}
	for _, e := range snapshot {
		if _, ok := counts[e.Career]; ok {
			counts[e.Career]++
		}
	}
	return counts
}
