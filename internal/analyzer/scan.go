package analyzer

import (
	"csweep/internal/parser"
)

// scanAllocations records allocation sites into table and returns every match.
// Typed declarations are scanned over the whole text first, then bare assignments.
func scanAllocations(lines []parser.SourceLine, table *LifetimeTable) []parser.AllocationRecord {
	var records []parser.AllocationRecord

	for _, line := range lines {
		// Loop lines use the same patterns; InLoop only tags the record.
		match := typedAllocPattern.FindStringSubmatch(line.Text)
		if match == nil {
			continue
		}
		name := match[2]
		table.Discover(name)
		table.Set(name, line.Number)
		records = append(records, parser.AllocationRecord{
			VarName: name,
			Origin:  parser.OriginDeclared,
			Line:    line.Number,
			InLoop:  isLoopLine(line.Text),
		})
	}

	for _, line := range lines {
		match := bareAllocPattern.FindStringSubmatch(line.Text)
		if match == nil {
			continue
		}
		name := match[1]
		if !table.Has(name) {
			table.Discover(name)
		}
		table.Set(name, line.Number)
		records = append(records, parser.AllocationRecord{
			VarName: name,
			Origin:  parser.OriginAssigned,
			Line:    line.Number,
			InLoop:  isLoopLine(line.Text),
		})
	}

	return records
}

// trackLastUse overwrites each discovered variable's line with the last line that
// mentions it as a whole word
func trackLastUse(lines []parser.SourceLine, table *LifetimeTable, words wordMatchers) {
	for _, name := range table.Names() {
		for _, line := range lines {
			if words.match(name, line.Text) {
				table.Set(name, line.Number)
			}
		}
	}
}
