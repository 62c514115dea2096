// Package mapping reads and writes the variable to last-use line artifact.
//
// Each record is one line of the form "<name> : <line>", sorted by name.
package mapping

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"csweep/internal/analyzer"
)

// Separator divides name and line in a record
const Separator = " : "

// ErrInvalidMapping is returned when a record's line number is not an integer
var ErrInvalidMapping = errors.New("invalid mapping record")

// Record is one persisted variable and line
type Record struct {
	Name string
	Line int
}

// Write serializes the table, one record per line, sorted by name
func Write(w io.Writer, table *analyzer.LifetimeTable) error {
	for _, entry := range table.Entries() {
		if _, err := fmt.Fprintf(w, "%s%s%d\n", entry.Name, Separator, entry.Line); err != nil {
			return err
		}
	}
	return nil
}

// Encode returns the serialized table
func Encode(table *analyzer.LifetimeTable) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, table)
	return buf.Bytes()
}

// Parse reads records. Lines without the separator are skipped and a repeated
// name keeps its last line. The result is sorted by name.
func Parse(r io.Reader) ([]Record, error) {
	lines := make(map[string]int)
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			lineNo++
			if rerr := parseRecord(text, lineNo, lines); rerr != nil {
				return nil, rerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	records := make([]Record, 0, len(lines))
	for name, line := range lines {
		records = append(records, Record{Name: name, Line: line})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func parseRecord(text string, lineNo int, lines map[string]int) error {
	text = strings.TrimSuffix(text, "\n")
	pos := strings.Index(text, Separator)
	if pos < 0 {
		return nil
	}
	key := strings.Trim(text[:pos], " \t\r\n")
	value := strings.Trim(text[pos+len(Separator):], " \t\r\n")
	line, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w at line %d: %q", ErrInvalidMapping, lineNo, value)
	}
	lines[key] = line
	return nil
}
