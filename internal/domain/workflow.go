package domain

import (
	"context"
	"fmt"
	"log/slog"

	"tsquiet.dev/pkg/tsquiet/internal/adapter"
	"tsquiet.dev/pkg/tsquiet/internal/controller"
	m "tsquiet.dev/pkg/tsquiet/internal/model"
	"tsquiet.dev/pkg/tsquiet/pkg"
)

// FixArgs contains the arguments for a fix run.
type FixArgs struct {
	// Verify re-runs the build after patching and reports the remaining
	// TS6133 count.
	Verify bool
	// DryRun reports what would be fixed without writing files.
	DryRun bool
	// Reports is the directory where run summaries are stored.
	Reports m.Path
}

// Workflow is the top-level pipeline:
// collect -> partition -> patch per file -> optionally re-verify -> report.
// Strictly sequential; residual diagnostics never fail the run.
type Workflow interface {
	Fix(ctx context.Context, args FixArgs) error
	List(ctx context.Context) error
}

type workflow struct {
	collector    Collector
	orchestrator Orchestrator
	store        adapter.ReportStore
	ui           controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	collector Collector,
	orchestrator Orchestrator,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		collector:    collector,
		orchestrator: orchestrator,
		store:        store,
		ui:           ui,
	}
}

// Fix runs the full pipeline. The only error it returns is a build that
// could not be started: without compiler output there are no diagnostics and
// the run cannot proceed.
func (w *workflow) Fix(ctx context.Context, args FixArgs) error {
	if err := w.ui.Start(ctx); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	config := w.collector.Config()
	w.ui.DisplayBuildInfo(ctx, config.Root, config.Invocation())

	diagnostics, err := w.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect diagnostics: %w", err)
	}

	batch := m.Partition(diagnostics)
	w.ui.DisplayCollected(ctx, len(diagnostics), len(batch))

	if len(diagnostics) == 0 {
		w.ui.Wait(ctx)
		return nil
	}

	sink := w.openSink()
	if spill, ok := sink.(pkg.FileSpill[m.FixReport]); ok {
		defer func() {
			if err := spill.Close(); err != nil {
				slog.Warn("failed to close report spill", "error", err)
			}
		}()
	}

	summary := w.orchestrator.PatchAll(ctx, batch, sink)
	summary.DryRun = args.DryRun

	if args.Verify && !args.DryRun {
		w.ui.DisplayVerifying(ctx)

		remaining, err := w.collector.CountRemaining(ctx)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}

		summary.Remaining = remaining
		summary.Verified = true
	}

	w.ui.DisplayUnfixed(ctx, w.collectUnfixed(sink))
	w.ui.DisplaySummary(ctx, summary)

	if path, err := w.store.SaveSummary(args.Reports, summary); err != nil {
		// Losing the stored summary does not invalidate the fixes themselves.
		slog.Warn("failed to save run summary", "error", err)
	} else {
		slog.Info("saved run summary", "path", path)
	}

	w.ui.Wait(ctx)

	return nil
}

// List collects diagnostics and displays them without touching any file.
func (w *workflow) List(ctx context.Context) error {
	if err := w.ui.Start(ctx); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	config := w.collector.Config()
	w.ui.DisplayBuildInfo(ctx, config.Root, config.Invocation())

	diagnostics, err := w.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect diagnostics: %w", err)
	}

	if err := w.ui.DisplayDiagnostics(ctx, diagnostics); err != nil {
		return err
	}

	w.ui.Wait(ctx)

	return nil
}

// openSink prefers a disk-backed spill so monorepo-sized runs keep only
// per-file state in memory; it degrades to an in-memory sink when the spill
// cannot be created.
func (w *workflow) openSink() ReportSink {
	spill, err := pkg.NewFileSpill[m.FixReport]()
	if err != nil {
		slog.Warn("failed to create report spill, keeping reports in memory", "error", err)
		return &memorySink{}
	}

	return spill
}

// collectUnfixed extracts the not-fixed attempts for the end-of-run listing.
func (w *workflow) collectUnfixed(sink ReportSink) []m.FixReport {
	var unfixed []m.FixReport

	keep := func(report m.FixReport) {
		switch report.Status {
		case m.Fixed, m.DryRun, m.AlreadyPrefixed:
		default:
			unfixed = append(unfixed, report)
		}
	}

	switch s := sink.(type) {
	case pkg.FileSpill[m.FixReport]:
		err := s.Range(func(_ uint64, report m.FixReport) error {
			keep(report)
			return nil
		})
		if err != nil {
			slog.Warn("failed to read report spill", "error", err)
		}
	case *memorySink:
		for _, report := range s.reports {
			keep(report)
		}
	}

	return unfixed
}

// memorySink is the fallback ReportSink when spilling to disk is unavailable.
type memorySink struct {
	reports []m.FixReport
}

func (s *memorySink) Append(report m.FixReport) error {
	s.reports = append(s.reports, report)
	return nil
}
