// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/exam-archive/models"
)

func printExams(w io.Writer, exams []models.Exam) {
	if len(exams) == 0 {
		fmt.Fprintln(w, "No se encontraron exámenes")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOURSE\tCAREER\tCYCLE\tTYPE\tPERIOD\tUPLOADED")
	for _, e := range exams {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, e.Course, e.Career, dash(e.Cycle), dash(e.Type),
			period(e), humanize.Time(e.CreatedAt))
	}
	tw.Flush()
	fmt.Fprintf(w, "%s exámenes\n", humanize.Comma(int64(len(exams))))
}

func printExam(w io.Writer, e models.Exam) {
	career := e.Career
	if c, ok := models.FindCareer(e.Career); ok {
		career = c.Name
	}
	fmt.Fprintf(w, "%s\n", e.Title)
	fmt.Fprintf(w, "  Curso:    %s\n", e.Course)
	fmt.Fprintf(w, "  Carrera:  %s\n", career)
	fmt.Fprintf(w, "  Ciclo:    %s\n", dash(e.Cycle))
	fmt.Fprintf(w, "  Tipo:     %s\n", dash(e.Type))
	fmt.Fprintf(w, "  Periodo:  %s\n", period(e))
	fmt.Fprintf(w, "  Subido:   %s\n", humanize.Time(e.CreatedAt))
	fmt.Fprintf(w, "  URL:      %s\n", e.ExamURL)
}

// period renders "2024-1" style academic periods
func period(e models.Exam) string {
	if e.Period == "" {
		return fmt.Sprint(e.Year)
	}
	return fmt.Sprintf("%d-%s", e.Year, strings.TrimSpace(e.Period))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
