// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Examctl browses the exam archive and, for signed-in administrators,
uploads, edits and deletes exams.

Usage:

	examctl [--server URL] [--session-file PATH] <command>

Commands:

	careers          careers with exam counts
	list             exams, filtered by --career, -q, --cycle, --type, --period, --year, --sort
	years            years that have exams
	open <id>        exam details and document link
	login            sign in (-e email; password is prompted)
	logout           end the session
	whoami           show the signed-in admin
	upload           add an exam
	edit <id>        change the fields passed as flags
	delete <id>      remove an exam after confirmation (--yes skips it)
	refresh          extend the session

The server defaults to $EXAMCTL_SERVER, then http://localhost:3318. The
session token is kept in the user config directory (examctl/session.json).
*/
package main
