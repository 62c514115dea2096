package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(context.Background(), append([]string{"csweep"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "loop.c")
	mappingFile := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(source, []byte("int* a = (int*)malloc(40);\nfor(i=0;i<10;i++){ a[i]=i; }\nreturn 0;"), 0644))

	stdout, _, err := runApp(t, "analyze", "-m", mappingFile, source)
	require.NoError(t, err)
	assert.Equal(t, "Output written to "+mappingFile+"\n", stdout)

	data, err := os.ReadFile(mappingFile)
	require.NoError(t, err)
	assert.Equal(t, "a : 2\n", string(data))

	stdout, _, err = runApp(t, "augment", mappingFile, source)
	require.NoError(t, err)
	generated := filepath.Join(dir, "sweepedloop.c")
	assert.Equal(t, "Updated code written to: "+generated+"\n", stdout)

	data, err = os.ReadFile(generated)
	require.NoError(t, err)
	assert.Equal(t, "int* a = (int*)malloc(40);\nfor(i=0;i<10;i++){ a[i]=i; }\n    free(a);\nreturn 0;\n", string(data))
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), []byte("char* s = getLine();\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "b.c"), []byte("char* t = getLine();\n"), 0644))

	stdout, _, err := runApp(t, "check", "--format", "json", "--exclude", "vendor", dir)
	require.NoError(t, err)

	var doc struct {
		Findings []struct {
			File     string `json:"file"`
			Line     int    `json:"line"`
			Variable string `json:"variable"`
			Kind     string `json:"kind"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, filepath.Join(dir, "a.c"), doc.Findings[0].File)
	assert.Equal(t, "s", doc.Findings[0].Variable)
	assert.Equal(t, 1, doc.Findings[0].Line)
	assert.Equal(t, "unused-function-pointer", doc.Findings[0].Kind)
}

func TestCheckCommandBadFormat(t *testing.T) {
	_, _, err := runApp(t, "check", "--format", "xml", t.TempDir())
	assert.Error(t, err)
}

func TestRunCommandMissingFile(t *testing.T) {
	_, _, err := runApp(t, "run", filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestRunCommandUsage(t *testing.T) {
	_, _, err := runApp(t, "run")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"vendor", "build"}, splitList(" vendor, ,build "))
	assert.Nil(t, splitList(""))
}
