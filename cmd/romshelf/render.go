package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"romshelf/internal/reconcile"
	"romshelf/internal/scan"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// consoleReporter prints one line per scanned file.
type consoleReporter struct {
	out      io.Writer
	colorize bool
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out, colorize: writerIsTerminal(out)}
}

func (r *consoleReporter) File(report scan.Report) {
	label, color := fileLabel(report)
	detail := fileDetail(report)

	name := filepath.Base(report.Path)
	line := fmt.Sprintf("  %-10s %s", label, name)
	if detail != "" {
		line += "  (" + detail + ")"
	}
	if r.colorize && color != "" {
		line = color + line + ansiReset
	}
	fmt.Fprintln(r.out, line)
}

func fileLabel(report scan.Report) (string, string) {
	if report.Err != nil {
		return "error", ansiRed
	}
	switch report.Action.Kind {
	case reconcile.ActionRenamed:
		return "renamed", ansiGreen
	case reconcile.ActionDedupDeleted:
		return "duplicate", ansiYellow
	case reconcile.ActionInvalidDeleted:
		return "deleted", ansiRed
	case reconcile.ActionRenameConflict:
		return "conflict", ansiRed
	}
	switch report.Result.Outcome {
	case reconcile.OutcomeMatched:
		return "ok", ansiGreen
	case reconcile.OutcomeMismatched:
		return "mismatch", ansiYellow
	default:
		return "not found", ansiRed
	}
}

func fileDetail(report scan.Report) string {
	switch {
	case report.Err != nil:
		return report.Err.Error()
	case report.Action.Kind == reconcile.ActionRenamed:
		return "now " + filepath.Base(report.Action.Dest)
	case report.Action.Kind == reconcile.ActionDedupDeleted:
		return "kept " + filepath.Base(report.Action.Dest)
	case report.Action.Kind == reconcile.ActionRenameConflict:
		return filepath.Base(report.Action.Dest) + " already exists"
	case report.Result.Outcome == reconcile.OutcomeMismatched:
		return "catalog name " + report.Result.Canonical
	case report.Result.RecordMissing:
		return "catalog lists the hash but has no filename for it"
	default:
		return ""
	}
}

type statusKind int

const (
	statusOK statusKind = iota
	statusError
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := "OK"
	color := ansiGreen
	if kind == statusError {
		statusText = "ERROR"
		color = ansiRed
	}
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	line := fmt.Sprintf("  %-20s %s", label+":", statusText)
	if colorize {
		return color + line + ansiReset
	}
	return line
}
