// Package augment inserts release calls after each variable's last use and
// writes the result next to the original source.
package augment

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"csweep/internal/analyzer"
	"csweep/internal/mapping"
	"csweep/internal/parser"
	"csweep/internal/storage"
)

// DefaultPrefix is prepended to the base name of the generated file
const DefaultPrefix = "sweeped"

const releaseIndent = "    "

// Options controls one augmentation
type Options struct {
	Prefix string
	// Fingerprint of the source at analysis time; zero skips the check
	Fingerprint uint64
}

// Output describes a generated file
type Output struct {
	Path     string
	Replaced int
	Findings []parser.Finding
}

// Augmenter writes augmented sources through a store
type Augmenter struct {
	store *storage.Store
}

// NewAugmenter creates an augmenter
func NewAugmenter(store *storage.Store) *Augmenter {
	return &Augmenter{store: store}
}

// OutputPath returns <dir><prefix><base>.c for source
func OutputPath(source, prefix string) string {
	dir, filename := "", source
	if slash := strings.LastIndexAny(source, "/\\"); slash >= 0 {
		dir, filename = source[:slash+1], source[slash+1:]
	}
	base := filename
	if dot := strings.LastIndex(filename, "."); dot >= 0 {
		base = filename[:dot]
	}
	return dir + prefix + base + ".c"
}

// Insertions maps line numbers to replacement text. lines holds trimmed source
// lines; records pointing past the end are ignored. When variables share a line
// the last record wins, so only one release is inserted there.
func Insertions(records []mapping.Record, lines []string) map[int]string {
	updated := make(map[int]string)
	for _, record := range records {
		if record.Line < 1 || record.Line > len(lines) {
			continue
		}
		updated[record.Line] = lines[record.Line-1] + "\n" + releaseIndent + "free(" + record.Name + ");"
	}
	return updated
}

// Render rewrites raw source lines, substituting replacements
func Render(raw []string, updated map[int]string) []byte {
	var buf bytes.Buffer
	for i, line := range raw {
		if replacement, ok := updated[i+1]; ok && replacement != "" {
			buf.WriteString(replacement)
		} else {
			buf.WriteString(line)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Augment reads source fresh, applies records and writes the generated file
func (a *Augmenter) Augment(ctx context.Context, records []mapping.Record, source string, opts Options) (*Output, error) {
	content, err := a.store.Read(ctx, source)
	if err != nil {
		return nil, err
	}

	out := &Output{Path: OutputPath(source, prefixOrDefault(opts.Prefix))}
	if opts.Fingerprint != 0 {
		current, err := analyzer.Fingerprint(content)
		if err != nil {
			return nil, err
		}
		if current != opts.Fingerprint {
			out.Findings = append(out.Findings, parser.Finding{
				File:     source,
				Kind:     parser.KindSourceChanged,
				Reason:   "source changed since analysis; release lines may be misplaced",
				Severity: "warning",
			})
		}
	}

	raw := parser.SplitLines(string(content))
	trimmed := make([]string, len(raw))
	for i, line := range raw {
		trimmed[i] = parser.Trim(line)
	}

	updated := Insertions(records, trimmed)
	out.Replaced = len(updated)
	if err := a.store.Write(ctx, out.Path, Render(raw, updated)); err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}
	return out, nil
}

func prefixOrDefault(prefix string) string {
	if prefix == "" {
		return DefaultPrefix
	}
	return prefix
}
