package controller

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream. Its progress
// lines are deliberately stable: counts found, per-file fix counts, total
// fixed, and the remaining-error count after verification.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is done (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayBuildInfo announces the build about to run.
func (s *SimpleUI) DisplayBuildInfo(ctx context.Context, dir, invocation string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Analyzing TypeScript errors...\n")
	slog.Debug("running build", "dir", dir, "command", invocation)
}

// DisplayCollected reports the number of diagnostics found.
func (s *SimpleUI) DisplayCollected(ctx context.Context, found, fileCount int) {
	if ctx.Err() != nil {
		return
	}

	if found == 0 {
		s.printf("No TS6133 errors found!\n")
		return
	}

	s.printf("Found %d unused variable errors\n", found)
	s.printf("Fixing %d files...\n", fileCount)
}

// DisplayDiagnostics renders a per-file diagnostic count table.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(diagnostics) == 0 {
		s.printf("No TS6133 errors found!\n")
		return nil
	}

	batch := m.Partition(diagnostics)

	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Path", "Unused Variables"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, file := range batch.SortedFiles() {
		table.Append([]string{string(file), fmt.Sprintf("%d", len(batch[file]))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(batch)),
		fmt.Sprintf("%d", len(diagnostics)),
	})

	table.Render()

	s.printf("\n%s", buffer.String())

	return nil
}

// DisplayFileProgress prints the per-file diagnostic count before patching.
func (s *SimpleUI) DisplayFileProgress(ctx context.Context, file m.Path, count int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("  %s: %d errors\n", file, count)
}

// DisplayPatchResult logs individual attempts; the per-file and total counts
// carry the signal in plain output.
func (s *SimpleUI) DisplayPatchResult(ctx context.Context, report m.FixReport) {
	if ctx.Err() != nil {
		return
	}

	slog.Debug("patch attempt",
		"file", report.Diagnostic.File,
		"line", report.Diagnostic.Line,
		"identifier", report.Diagnostic.Identifier,
		"status", report.Status.String(),
		"rule", report.Rule,
	)
}

// DisplayVerifying announces the verification build.
func (s *SimpleUI) DisplayVerifying(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\nRunning build to verify...\n")
}

// DisplayUnfixed lists diagnostics that no rule could silence.
func (s *SimpleUI) DisplayUnfixed(ctx context.Context, reports []m.FixReport) {
	if ctx.Err() != nil || len(reports) == 0 {
		return
	}

	s.printf("\nNot fixed:\n")

	for _, report := range reports {
		d := report.Diagnostic
		s.printf("  %s(%d,%d): '%s' (%s)\n", d.File, d.Line, d.Column, d.Identifier, report.Status)
	}
}

// DisplaySummary renders the end-of-run totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.RunSummary) {
	if ctx.Err() != nil {
		return
	}

	if summary.DryRun {
		s.printf("\nWould fix %d unused variables (dry run)\n", summary.Fixed)
	} else {
		s.printf("\nFixed %d unused variables\n", summary.Fixed)
	}

	if len(summary.PerFile) > 0 {
		s.printf("\n%s", renderSummaryTable(summary))
	}

	if summary.Verified {
		s.printf("Remaining TS6133 errors: %d\n", summary.Remaining)
	}
}

func renderSummaryTable(summary m.RunSummary) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Path", "Found", "Fixed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, file := range summary.PerFile {
		table.Append([]string{
			string(file.File),
			fmt.Sprintf("%d", file.Found),
			fmt.Sprintf("%d", file.Fixed),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(summary.PerFile)),
		fmt.Sprintf("%d", summary.Found),
		fmt.Sprintf("%d", summary.Fixed),
	})

	table.Render()

	return buffer.String()
}

// printf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
