package analyzer

import "sort"

// Entry is one variable and its last relevant line
type Entry struct {
	Name string
	Line int
}

// LifetimeTable maps allocated variables to their best-known last line.
// Names keeps discovery order; a name may appear more than once.
type LifetimeTable struct {
	names []string
	lines map[string]int
}

// NewLifetimeTable creates an empty table
func NewLifetimeTable() *LifetimeTable {
	return &LifetimeTable{lines: make(map[string]int)}
}

// Discover appends name to the discovery list
func (t *LifetimeTable) Discover(name string) {
	t.names = append(t.names, name)
}

// Set overwrites the line recorded for name
func (t *LifetimeTable) Set(name string, line int) {
	t.lines[name] = line
}

// Has reports whether name has a recorded line
func (t *LifetimeTable) Has(name string) bool {
	_, ok := t.lines[name]
	return ok
}

// Line returns the recorded line for name
func (t *LifetimeTable) Line(name string) (int, bool) {
	line, ok := t.lines[name]
	return line, ok
}

// Names returns the discovery list, duplicates included
func (t *LifetimeTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of distinct variables
func (t *LifetimeTable) Len() int {
	return len(t.lines)
}

// Entries returns one entry per variable sorted by name
func (t *LifetimeTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.lines))
	for name, line := range t.lines {
		entries = append(entries, Entry{Name: name, Line: line})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
