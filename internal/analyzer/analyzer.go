package analyzer

import (
	"context"

	"csweep/internal/parser"
	"csweep/internal/storage"
)

// Result holds everything one analysis run produces
type Result struct {
	File        string
	Lines       []parser.SourceLine
	Allocations []parser.AllocationRecord
	Lifetimes   *LifetimeTable
	Findings    []parser.Finding
	Fingerprint uint64
}

// Analyzer runs the allocation lifetime passes over source text
type Analyzer struct {
	store *storage.Store
}

// NewAnalyzer creates a new analyzer reading files through store
func NewAnalyzer(store *storage.Store) *Analyzer {
	return &Analyzer{store: store}
}

// AnalyzeFile reads path in full and analyzes it
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	content, err := a.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return Analyze(path, content)
}

// Analyze runs every pass over content. All tables live only for this call.
func Analyze(file string, content []byte) (*Result, error) {
	fingerprint, err := Fingerprint(content)
	if err != nil {
		return nil, err
	}

	lines := parser.Normalize(string(content))
	words := make(wordMatchers)

	// Pass 1: allocation sites (typed, then bare)
	table := NewLifetimeTable()
	allocations := scanAllocations(lines, table)

	// Pass 2: last whole-word use of every discovered variable
	trackLastUse(lines, table, words)

	// Pass 3: hygiene
	findings := checkReassignments(lines)
	findings = append(findings, checkUnusedFuncInits(lines, words)...)
	for i := range findings {
		findings[i].File = file
	}

	return &Result{
		File:        file,
		Lines:       lines,
		Allocations: allocations,
		Lifetimes:   table,
		Findings:    findings,
		Fingerprint: fingerprint,
	}, nil
}
