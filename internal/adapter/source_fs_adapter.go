package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the patcher relies on.
// It hides direct `os` access so the patching logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check existence.
	FileInfo(path m.Path) (os.FileInfo, error)

	// ReadLines loads a file and splits it into lines. The split preserves
	// the file's structure exactly: joining the result with "\n" reproduces
	// the original bytes, including any trailing newline.
	ReadLines(path m.Path) ([]string, error)

	// WriteLines joins lines with "\n" and rewrites the whole file.
	WriteLines(path m.Path, lines []string, perm os.FileMode) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the os package.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadLines loads file contents and splits them on "\n". Carriage returns
// are left in place so CRLF files round-trip untouched.
func (a *LocalSourceFSAdapter) ReadLines(path m.Path) ([]string, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	return strings.Split(string(content), "\n"), nil
}

// WriteLines rewrites the entire file from the line sequence.
func (a *LocalSourceFSAdapter) WriteLines(path m.Path, lines []string, perm os.FileMode) error {
	return os.WriteFile(string(path), []byte(strings.Join(lines, "\n")), perm)
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
