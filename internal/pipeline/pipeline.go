// Package pipeline runs analysis, augmentation and compilation in sequence,
// cleaning up intermediate artifacts afterwards.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"csweep/internal/analyzer"
	"csweep/internal/augment"
	"csweep/internal/config"
	"csweep/internal/mapping"
	"csweep/internal/reporter"
	"csweep/internal/storage"
)

// Pipeline wires the sweep steps together
type Pipeline struct {
	cfg      *config.Config
	store    *storage.Store
	reporter *reporter.Reporter
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a pipeline. Findings go to rep, progress to stdout, failures to stderr.
func New(cfg *config.Config, store *storage.Store, rep *reporter.Reporter, stdout, stderr io.Writer) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		reporter: rep,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Analyze analyzes source, writes the mapping artifact and reports findings.
// A failed mapping write is only reported; Augment verifies the artifact.
func (p *Pipeline) Analyze(ctx context.Context, source, mappingPath string) (*analyzer.Result, error) {
	result, err := analyzer.NewAnalyzer(p.store).AnalyzeFile(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := p.store.Write(ctx, mappingPath, mapping.Encode(result.Lifetimes)); err != nil {
		fmt.Fprintf(p.stderr, "Warning: %v\n", err)
	}

	if err := p.reporter.Report(result.Findings); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(p.stdout, "Output written to %s\n", mappingPath)
	return result, nil
}

// Augment reads the mapping artifact and writes the augmented source.
// fingerprint may be zero when the analysis happened in another run.
func (p *Pipeline) Augment(ctx context.Context, mappingPath, source string, fingerprint uint64) (*augment.Output, error) {
	ok, err := p.store.Exists(ctx, mappingPath)
	if err != nil {
		return nil, fmt.Errorf("%w: checking mapping file %s: %v", storage.ErrInputUnavailable, mappingPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: mapping file %s was not produced", storage.ErrInputUnavailable, mappingPath)
	}
	data, err := p.store.Read(ctx, mappingPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		fmt.Fprintf(p.stdout, "No allocations recorded in %s\n", mappingPath)
	}

	records, err := mapping.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mappingPath, err)
	}

	out, err := augment.NewAugmenter(p.store).Augment(ctx, records, source, augment.Options{
		Prefix:      p.cfg.Prefix,
		Fingerprint: fingerprint,
	})
	if err != nil {
		return nil, err
	}
	if err := p.reporter.Report(out.Findings); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(p.stdout, "Updated code written to: %s\n", out.Path)
	return out, nil
}

// Run executes the full sweep for source
func (p *Pipeline) Run(ctx context.Context, source string) error {
	mappingPath := p.cfg.MappingFile
	generated := augment.OutputPath(source, p.cfg.Prefix)

	result, err := p.Analyze(ctx, source, mappingPath)
	if err != nil {
		return fmt.Errorf("parser failed: %w", err)
	}

	if _, err := p.Augment(ctx, mappingPath, source, result.Fingerprint); err != nil {
		p.cleanup(ctx, mappingPath, generated)
		return fmt.Errorf("augment failed: %w", err)
	}

	tc := p.cfg.Toolchain()
	tc.Stdout, tc.Stderr = p.stdout, p.stderr
	if err := tc.Compile(ctx, generated); err != nil {
		p.cleanup(ctx, mappingPath, generated)
		return err
	}

	p.cleanup(ctx, mappingPath, generated)
	fmt.Fprintf(p.stdout, "CSweep completed successfully. Executable saved as %s\n", p.cfg.Output)
	return nil
}

func (p *Pipeline) cleanup(ctx context.Context, paths ...string) {
	if p.cfg.KeepIntermediates {
		return
	}
	for _, path := range paths {
		if err := p.store.Remove(ctx, path); err != nil {
			fmt.Fprintf(p.stderr, "Warning: %v\n", err)
		}
	}
}
