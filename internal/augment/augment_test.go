package augment

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csweep/internal/analyzer"
	"csweep/internal/mapping"
	"csweep/internal/parser"
	"csweep/internal/storage"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"main.c", "sweepedmain.c"},
		{"src/prog.c", "src/sweepedprog.c"},
		{`C:\code\leak.cpp`, `C:\code\sweepedleak.c`},
		{"dir/noext", "dir/sweepednoext.c"},
		{"dir/archive.tar.c", "dir/sweepedarchive.tar.c"},
	}
	for _, tc := range tests {
		t.Run(tc.source, func(t *testing.T) {
			assert.Equal(t, tc.want, OutputPath(tc.source, DefaultPrefix))
		})
	}
}

func TestInsertions(t *testing.T) {
	lines := []string{"int* a = (int*)malloc(4);", "use(a, b);", "return 0;"}
	records := []mapping.Record{
		{Name: "a", Line: 2},
		{Name: "b", Line: 2},
		{Name: "c", Line: 9},
		{Name: "d", Line: 0},
	}
	assert.Equal(t, map[int]string{
		2: "use(a, b);\n    free(b);",
	}, Insertions(records, lines))
}

func TestInsertionsSharedLineKeepsLastName(t *testing.T) {
	lines := []string{"a = (int*)malloc(4);", "b = (int*)malloc(4);", "use(a, b);"}
	records := []mapping.Record{{Name: "a", Line: 3}, {Name: "b", Line: 3}}

	updated := Insertions(records, lines)
	assert.Equal(t, map[int]string{3: "use(a, b);\n    free(b);"}, updated)
	assert.Equal(t, "a = (int*)malloc(4);\nb = (int*)malloc(4);\nuse(a, b);\n    free(b);\n",
		string(Render(lines, updated)))
}

func TestRender(t *testing.T) {
	raw := []string{"  int x;", "\tuse(x);\r", "}"}
	out := Render(raw, map[int]string{2: "use(x);\n    free(x);", 3: ""})
	assert.Equal(t, "  int x;\nuse(x);\n    free(x);\n}\n", string(out))
}

func TestAugmentEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	source := filepath.Join(dir, "prog.c")
	code := "int* a = (int*)malloc(40);\n    for(i=0;i<10;i++){ a[i]=i; }\nreturn 0;"
	require.NoError(t, os.WriteFile(source, []byte(code), 0644))

	result, err := analyzer.Analyze(source, []byte(code))
	require.NoError(t, err)
	records, err := mapping.Parse(bytes.NewReader(mapping.Encode(result.Lifetimes)))
	require.NoError(t, err)

	out, err := NewAugmenter(storage.New()).Augment(ctx, records, source, Options{Fingerprint: result.Fingerprint})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sweepedprog.c"), out.Path)
	assert.Equal(t, 1, out.Replaced)
	assert.Empty(t, out.Findings)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, "int* a = (int*)malloc(40);\nfor(i=0;i<10;i++){ a[i]=i; }\n    free(a);\nreturn 0;\n", string(data))
}

func TestAugmentDetectsChangedSource(t *testing.T) {
	ctx := context.Background()
	source := filepath.Join(t.TempDir(), "prog.c")
	require.NoError(t, os.WriteFile(source, []byte("x = 1;\n"), 0644))

	out, err := NewAugmenter(storage.New()).Augment(ctx, nil, source, Options{Prefix: "swept_", Fingerprint: 42})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(source), "swept_prog.c"), out.Path)
	require.Len(t, out.Findings, 1)
	assert.Equal(t, parser.KindSourceChanged, out.Findings[0].Kind)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n", string(data))
}

func TestAugmentMissingSource(t *testing.T) {
	_, err := NewAugmenter(storage.New()).Augment(context.Background(), nil, filepath.Join(t.TempDir(), "nope.c"), Options{})
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
}
