// Package controller provides output front-ends for the tsquiet CLI.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// UI is the display surface for a run. Implementations can print plain text
// or drive an interactive terminal; the workflow does not care which.
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	// Wait blocks until the UI has finished rendering (interactive UIs may
	// outlive the pipeline by a frame or two).
	Wait(ctx context.Context)

	// DisplayBuildInfo announces the build about to run.
	DisplayBuildInfo(ctx context.Context, dir, invocation string)
	// DisplayCollected reports how many diagnostics were found across how
	// many files. A zero count means nothing to fix.
	DisplayCollected(ctx context.Context, found, fileCount int)
	// DisplayDiagnostics renders the collected diagnostics without fixing
	// anything (list mode).
	DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error
	// DisplayFileProgress announces that a file's diagnostics are being patched.
	DisplayFileProgress(ctx context.Context, file m.Path, count int)
	// DisplayPatchResult reports the outcome of one patch attempt.
	DisplayPatchResult(ctx context.Context, report m.FixReport)
	// DisplayVerifying announces the post-run verification build.
	DisplayVerifying(ctx context.Context)
	// DisplayUnfixed lists diagnostics that could not be fixed.
	DisplayUnfixed(ctx context.Context, reports []m.FixReport)
	// DisplaySummary renders the end-of-run totals.
	DisplaySummary(ctx context.Context, summary m.RunSummary)
}

// NewUI selects the interactive UI on a terminal and the plain one elsewhere
// (pipes, CI).
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
