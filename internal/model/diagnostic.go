// Package model defines the data structures for diagnostic collection and fixing.
package model

import "sort"

// Diagnostic represents a single TS6133 unused-variable diagnostic parsed
// from compiler output. Immutable once parsed.
type Diagnostic struct {
	// File is the project-rooted relative path as it appears in the
	// compiler output (e.g. "src/components/Button.tsx").
	File Path
	// Line and Column are 1-based positions from the compiler.
	Line   int
	Column int
	// Identifier is the declared-but-never-read name.
	Identifier string
}

// FileEditBatch groups diagnostics by file path for one run.
// It is built transiently per run and never persisted.
type FileEditBatch map[Path][]Diagnostic

// Partition groups diagnostics by their file path, preserving the order in
// which they appeared in the compiler output within each file.
func Partition(diagnostics []Diagnostic) FileEditBatch {
	batch := make(FileEditBatch)
	for _, d := range diagnostics {
		batch[d.File] = append(batch[d.File], d)
	}

	return batch
}

// SortedFiles returns the batch's file paths in lexicographic order so runs
// produce reproducible output.
func (b FileEditBatch) SortedFiles() []Path {
	files := make([]Path, 0, len(b))
	for file := range b {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i] < files[j]
	})

	return files
}

// ByLineDescending returns the file's diagnostics sorted by line number
// descending. Patching from the bottom of the file up means earlier edits
// never shift the positions of later ones.
func (b FileEditBatch) ByLineDescending(file Path) []Diagnostic {
	diags := make([]Diagnostic, len(b[file]))
	copy(diags, b[file])

	sort.Slice(diags, func(i, j int) bool {
		return diags[i].Line > diags[j].Line
	})

	return diags
}
