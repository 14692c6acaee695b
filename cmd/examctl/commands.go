// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/session"
	"github.com/danielhkuo/exam-archive/ui"
)

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := newApp(in, out)

	root := &cobra.Command{
		Use:           "examctl",
		Short:         "Browse and manage the URP past exam archive",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.setup(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&a.server, "server", "", "Archive server URL (default $EXAMCTL_SERVER or "+defaultServer+")")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Where the admin session is kept")

	root.AddCommand(
		careersCmd(a),
		listCmd(a),
		yearsCmd(a),
		openCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		uploadCmd(a),
		editCmd(a),
		deleteCmd(a),
		refreshCmd(a),
	)

	// PostRun hooks are skipped when RunE fails, so release here instead
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.teardown()
			return run(cmd, args)
		}
	}
	return root
}

func careersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "careers",
		Short: "List careers and how many exams each has",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			careers, err := a.client.Careers(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range careers {
				fmt.Fprintf(a.out, "%-14s %-30s %s\n", c.Key, c.Name, humanize.Comma(int64(c.Count)))
			}
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	var f catalog.Filter
	var sort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exams, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := catalog.ParseSort(sort)
			if err != nil {
				return err
			}
			f.Sort = order

			if f.Career != "" {
				if _, ok := models.FindCareer(f.Career); !ok {
					return fmt.Errorf("unknown career %q", f.Career)
				}
			}
			if f.Year != "" {
				if _, err := strconv.Atoi(f.Year); err != nil {
					return errors.New("year must be a number")
				}
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			exams := a.exams.Snapshot()
			if f.Active() || f.Career != "" || cmd.Flags().Changed("sort") {
				exams = catalog.Query(exams, f)
			}
			printExams(a.out, exams)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Career, "career", "", "Career key")
	cmd.Flags().StringVarP(&f.Q, "query", "q", "", "Search in title and course")
	cmd.Flags().StringVar(&f.Cycle, "cycle", "", "Cycle (1-10 or roman)")
	cmd.Flags().StringVar(&f.Type, "type", "", "Parcial, Final or Sustitutorio")
	cmd.Flags().StringVar(&f.Period, "period", "", "Academic period (1 or 2)")
	cmd.Flags().StringVar(&f.Year, "year", "", "Year")
	cmd.Flags().StringVar(&sort, "sort", "", "newest or oldest")
	return cmd
}

func yearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the years that have exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := a.client.Years(cmd.Context())
			if err != nil {
				return err
			}
			for _, y := range years {
				fmt.Fprintln(a.out, y)
			}
			return nil
		},
	}
}

func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Show an exam and its document link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := a.client.Exam(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !catalog.ValidURL(exam.ExamURL) {
				return fmt.Errorf("exam %s has no valid document link", exam.ID)
			}
			printExam(a.out, exam)
			return nil
		},
	}
}

func loginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = readLine(a.in, a.out, "Email: "); err != nil {
					return err
				}
			}
			password, err := readSecret(a.in, a.out, "Contraseña: ")
			if err != nil {
				return err
			}

			if _, err := a.session(cmd.Context()).Login(cmd.Context(), email, password); err != nil {
				return err
			}
			return printIdentity(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Admin email")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session(cmd.Context()).Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Sesión cerrada")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printIdentity(cmd.Context(), a)
		},
	}
}

func printIdentity(ctx context.Context, a *app) error {
	state, id := a.session(ctx).Current()
	if state != session.StateAuthenticated || id == nil {
		fmt.Fprintln(a.out, "No has iniciado sesión")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", id.Name, id.Email)
	return nil
}

// requireAdmin fails early so write commands never hit the server anonymously
func requireAdmin(ctx context.Context, a *app) error {
	if !a.session(ctx).IsAdmin() {
		return errors.New("not signed in, run examctl login first")
	}
	return nil
}

func uploadCmd(a *app) *cobra.Command {
	var in models.ExamInput

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Add an exam to the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd.Context(), a); err != nil {
				return err
			}
			res := catalog.Upload(cmd.Context(), a.exams, in)
			if !res.Success {
				a.notifier.Error("Error al subir el examen: " + res.Error)
				return res.Err()
			}
			a.notifier.Success("Examen subido exitosamente")
			printExam(a.out, *res.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Exam title")
	cmd.Flags().StringVar(&in.Course, "course", "", "Course name")
	cmd.Flags().StringVar(&in.Career, "career", "", "Career key")
	cmd.Flags().StringVar(&in.Cycle, "cycle", "", "Cycle (1-10 or roman)")
	cmd.Flags().StringVar(&in.Type, "type", "", "Parcial, Final or Sustitutorio")
	cmd.Flags().StringVar(&in.Period, "period", "", "Academic period (1 or 2)")
	cmd.Flags().IntVar(&in.Year, "year", 0, "Year (default current year)")
	cmd.Flags().StringVar(&in.ExamURL, "url", "", "Document URL")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	var (
		title, course, career, cycle, examType, period, examURL string
		year                                                    int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd.Context(), a); err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			var patch models.ExamPatch
			if changed("title") {
				patch.Title = &title
			}
			if changed("course") {
				patch.Course = &course
			}
			if changed("career") {
				patch.Career = &career
			}
			if changed("cycle") {
				patch.Cycle = &cycle
			}
			if changed("type") {
				patch.Type = &examType
			}
			if changed("period") {
				patch.Period = &period
			}
			if changed("year") {
				patch.Year = &year
			}
			if changed("url") {
				patch.ExamURL = &examURL
			}
			if patch.Empty() {
				return errors.New("nothing to change, pass at least one field flag")
			}

			exam, err := a.client.Exam(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var modal ui.EditModal
			modal.Open(exam)
			res := modal.Save(cmd.Context(), a.exams, a.notifier, patch)
			if !res.Success {
				return res.Err()
			}
			printExam(a.out, *res.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Exam title")
	cmd.Flags().StringVar(&course, "course", "", "Course name")
	cmd.Flags().StringVar(&career, "career", "", "Career key")
	cmd.Flags().StringVar(&cycle, "cycle", "", "Cycle (1-10 or roman)")
	cmd.Flags().StringVar(&examType, "type", "", "Parcial, Final or Sustitutorio")
	cmd.Flags().StringVar(&period, "period", "", "Academic period (1 or 2)")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	cmd.Flags().StringVar(&examURL, "url", "", "Document URL")
	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an exam from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd.Context(), a); err != nil {
				return err
			}

			exam, err := a.client.Exam(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			res, decision := ui.DeleteExam(cmd.Context(), a.dialog, a.exams, a.notifier, exam)
			if decision == ui.Cancelled {
				fmt.Fprintln(a.out, "Cancelado")
				return nil
			}
			if !res.Success {
				return res.Err()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func refreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Extend the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd.Context(), a); err != nil {
				return err
			}
			s, err := a.client.RefreshSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Sesión válida hasta %s (%s)\n",
				s.ExpiresAt.Local().Format("2006-01-02 15:04"), humanize.Time(s.ExpiresAt))
			return nil
		},
	}
}
