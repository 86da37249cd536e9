// Package domain implements the collect -> patch -> verify pipeline.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"tsquiet.dev/pkg/tsquiet/internal/adapter"
	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// BuildConfig carries the external build invocation and project location.
// The original tooling this replaces hard-coded the project path; here it is
// explicit and threaded into the collector and patcher.
type BuildConfig struct {
	// Root is the project directory. The build runs here and diagnostic
	// file paths are resolved against it.
	Root string
	// Command and Args form the build invocation (e.g. "npm", ["run","build"]).
	Command string
	Args    []string
	// Exclude holds regexes; diagnostics whose file path matches any of
	// them are dropped.
	Exclude []string
}

// Invocation returns the build command line for display purposes.
func (c BuildConfig) Invocation() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// diagnosticPattern matches the exact TS6133 diagnostic shape:
//
//	src/file.tsx(12,5): error TS6133: 'name' is declared but its value is never read.
//
// The path charset ([^\s(]+ with a TypeScript extension) follows the
// compiler's own output format: no spaces or parentheses appear in the path
// portion. Any other diagnostic code, malformed line, or localized message
// text fails the match and is silently skipped.
var diagnosticPattern = regexp.MustCompile(
	`([^\s(]+\.(?:d\.)?[cm]?tsx?)\((\d+),(\d+)\): error TS6133: '([^']+)' is declared but its value is never read\.`)

// remainingPattern is the deliberately looser check used for post-run
// verification: it only counts occurrences of the diagnostic code.
var remainingPattern = regexp.MustCompile(`error TS6133:`)

// Collector runs the project build and extracts TS6133 diagnostics from its
// combined output.
type Collector interface {
	// Collect runs the build and returns matching diagnostics in the order
	// they appear in the output stream.
	Collect(ctx context.Context) ([]m.Diagnostic, error)
	// CountRemaining re-runs the build and counts remaining TS6133 mentions.
	CountRemaining(ctx context.Context) (int, error)
	// Config exposes the build configuration for display.
	Config() BuildConfig
}

type collector struct {
	runner  adapter.BuildRunner
	config  BuildConfig
	exclude []*regexp.Regexp
}

// NewCollector constructs a Collector. It fails only when an exclude pattern
// does not compile.
func NewCollector(runner adapter.BuildRunner, config BuildConfig) (Collector, error) {
	exclude := make([]*regexp.Regexp, 0, len(config.Exclude))

	for _, pattern := range config.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}

		exclude = append(exclude, re)
	}

	return &collector{
		runner:  runner,
		config:  config,
		exclude: exclude,
	}, nil
}

func (c *collector) Config() BuildConfig {
	return c.config
}

func (c *collector) Collect(ctx context.Context) ([]m.Diagnostic, error) {
	output, err := c.runner.Run(ctx, c.config.Root, c.config.Command, c.config.Args...)
	if err != nil {
		return nil, fmt.Errorf("run build: %w", err)
	}

	diagnostics := ParseDiagnostics(output)

	if len(c.exclude) > 0 {
		diagnostics = c.filterExcluded(diagnostics)
	}

	slog.Debug("collected diagnostics", "count", len(diagnostics))

	return diagnostics, nil
}

func (c *collector) CountRemaining(ctx context.Context) (int, error) {
	output, err := c.runner.Run(ctx, c.config.Root, c.config.Command, c.config.Args...)
	if err != nil {
		return 0, fmt.Errorf("run verification build: %w", err)
	}

	return CountDiagnostics(output), nil
}

func (c *collector) filterExcluded(diagnostics []m.Diagnostic) []m.Diagnostic {
	kept := make([]m.Diagnostic, 0, len(diagnostics))

	for _, d := range diagnostics {
		if c.isExcluded(string(d.File)) {
			slog.Debug("excluded diagnostic", "file", d.File, "identifier", d.Identifier)
			continue
		}

		kept = append(kept, d)
	}

	return kept
}

func (c *collector) isExcluded(file string) bool {
	for _, re := range c.exclude {
		if re.MatchString(file) {
			return true
		}
	}

	return false
}

// ParseDiagnostics extracts every TS6133 diagnostic from combined compiler
// output, preserving stream order. Interleaving between stdout and stderr is
// not relied upon: each diagnostic is a self-contained line.
func ParseDiagnostics(output string) []m.Diagnostic {
	matches := diagnosticPattern.FindAllStringSubmatch(output, -1)

	diagnostics := make([]m.Diagnostic, 0, len(matches))

	for _, match := range matches {
		line, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		column, err := strconv.Atoi(match[3])
		if err != nil {
			continue
		}

		diagnostics = append(diagnostics, m.Diagnostic{
			File:       m.Path(match[1]),
			Line:       line,
			Column:     column,
			Identifier: match[4],
		})
	}

	return diagnostics
}

// CountDiagnostics counts TS6133 mentions using the loose verification
// pattern, matching what the post-run check has always measured.
func CountDiagnostics(output string) int {
	return len(remainingPattern.FindAllStringIndex(output, -1))
}
