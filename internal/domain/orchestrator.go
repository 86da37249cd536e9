package domain

import (
	"context"
	"log/slog"

	"tsquiet.dev/pkg/tsquiet/internal/controller"
	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// ReportSink receives the outcome of every patch attempt. pkg.FileSpill
// satisfies it, letting large runs keep per-diagnostic records off-heap.
type ReportSink interface {
	Append(report m.FixReport) error
}

// Orchestrator walks a batch of diagnostics file by file and drives the
// patcher over each one.
type Orchestrator interface {
	// PatchAll processes files in lexicographic path order and each file's
	// diagnostics in descending line order, so earlier edits never shift the
	// line numbers of diagnostics still to be processed.
	PatchAll(ctx context.Context, batch m.FileEditBatch, sink ReportSink) m.RunSummary
}

type orchestrator struct {
	patcher Patcher
	ui      controller.UI
}

// NewOrchestrator constructs an Orchestrator reporting progress through ui.
func NewOrchestrator(patcher Patcher, ui controller.UI) Orchestrator {
	return &orchestrator{
		patcher: patcher,
		ui:      ui,
	}
}

func (o *orchestrator) PatchAll(ctx context.Context, batch m.FileEditBatch, sink ReportSink) m.RunSummary {
	summary := m.RunSummary{FilesTouched: len(batch)}

	for _, file := range batch.SortedFiles() {
		diagnostics := batch.ByLineDescending(file)

		summary.Found += len(diagnostics)
		o.ui.DisplayFileProgress(ctx, file, len(diagnostics))

		fixed := 0

		for _, diagnostic := range diagnostics {
			report, err := o.patcher.Patch(diagnostic)
			if err != nil {
				// Best-effort: the diagnostic stays unfixed and the run goes on.
				slog.Error("patch attempt failed",
					"file", diagnostic.File,
					"line", diagnostic.Line,
					"error", err,
				)
			}

			if sink != nil {
				if err := sink.Append(report); err != nil {
					slog.Warn("failed to record fix report", "error", err)
				}
			}

			o.ui.DisplayPatchResult(ctx, report)

			if report.Status == m.Fixed || report.Status == m.DryRun {
				fixed++
			}
		}

		summary.Fixed += fixed
		summary.PerFile = append(summary.PerFile, m.FileFixCount{
			File:  file,
			Found: len(diagnostics),
			Fixed: fixed,
		})
	}

	return summary
}
