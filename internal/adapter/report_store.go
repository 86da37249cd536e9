package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

const (
	summaryFilePattern = "tsquiet-run-%s.yaml"
	summaryTimeLayout  = "20060102-150405.000000000"
	reportsDirPerm     = 0o750
	reportFilePerm     = 0o600
)

// ReportStore persists run summaries so successive runs can be compared.
type ReportStore interface {
	SaveSummary(dir m.Path, summary m.RunSummary) (m.Path, error)
	LoadSummaries(dir m.Path) ([]m.RunSummary, error)
}

// YAMLReportStore stores one YAML file per run under the reports directory.
type YAMLReportStore struct {
	now func() time.Time
}

// NewReportStore constructs a YAMLReportStore using the wall clock.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{now: time.Now}
}

// SaveSummary writes the summary as a timestamped YAML file and returns its path.
func (s *YAMLReportStore) SaveSummary(dir m.Path, summary m.RunSummary) (m.Path, error) {
	if err := os.MkdirAll(string(dir), reportsDirPerm); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	stamp := s.now().Format(summaryTimeLayout)
	summary.Timestamp = s.now().Format(time.RFC3339)

	data, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	path := filepath.Join(string(dir), fmt.Sprintf(summaryFilePattern, stamp))
	if err := os.WriteFile(path, data, reportFilePerm); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	return m.Path(path), nil
}

// LoadSummaries reads every stored summary in filename (chronological) order.
func (s *YAMLReportStore) LoadSummaries(dir m.Path) ([]m.RunSummary, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	summaries := make([]m.RunSummary, 0, len(names))

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(string(dir), name))
		if err != nil {
			return nil, fmt.Errorf("read summary %s: %w", name, err)
		}

		var summary m.RunSummary
		if err := yaml.Unmarshal(data, &summary); err != nil {
			return nil, fmt.Errorf("parse summary %s: %w", name, err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
