// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/danielhkuo/exam-archive/apiclient"
	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/session"
	"github.com/danielhkuo/exam-archive/ui"
)

const defaultServer = "http://localhost:3318"

// app holds what every command needs; setup runs before each command
type app struct {
	server      string
	sessionFile string
	assumeYes   bool

	in  *bufio.Reader
	out io.Writer

	client   *apiclient.Client
	exams    *catalog.Store
	auth     *session.Store
	notifier *ui.Notifier
	dialog   *ui.ConfirmDialog
	release  func()
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: bufio.NewReader(in), out: out}
}

func (a *app) setup(ctx context.Context) error {
	if a.server == "" {
		a.server = os.Getenv("EXAMCTL_SERVER")
	}
	if a.server == "" {
		a.server = defaultServer
	}
	if a.sessionFile == "" {
		path, err := defaultSessionFile()
		if err != nil {
			return err
		}
		a.sessionFile = path
	}

	a.client = apiclient.New(a.server,
		apiclient.WithTokenStore(apiclient.NewFileTokenStore(a.sessionFile)))
	a.exams = catalog.NewStore(a.client)
	a.auth = session.NewStore(a.client)
	a.notifier = ui.NewNotifier(ui.DefaultNotificationTTL, func(n ui.Notification) {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Kind, n.Message)
	})
	a.dialog = ui.NewConfirmDialog(a.prompt)
	return nil
}

// session resolves the stored admin session on first use, so public
// commands never ask the server about it
func (a *app) session(ctx context.Context) *session.Store {
	if a.release == nil {
		a.release = a.auth.Initialize(ctx)
	}
	return a.auth
}

func (a *app) teardown() {
	if a.release != nil {
		a.release()
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
}

// prompt answers the confirmation dialog from the input stream
func (a *app) prompt(message string) {
	if a.assumeYes {
		a.dialog.Confirm()
		return
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", message)
	answer, _ := a.in.ReadString('\n')
	switch answer {
	case "y\n", "Y\n", "s\n", "S\n", "yes\n", "si\n", "sí\n":
		a.dialog.Confirm()
	default:
		a.dialog.Cancel()
	}
}

// load fetches the catalog; a failure is reported, not fatal
func (a *app) load(ctx context.Context) error {
	res := a.exams.Load(ctx)
	if !res.Success {
		return fmt.Errorf("failed to load exams: %s", res.Error)
	}
	return nil
}

func defaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config dir, use --session-file: %w", err)
	}
	return filepath.Join(dir, "examctl", "session.json"), nil
}
