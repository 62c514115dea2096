package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"csweep/internal/parser"
)

type releaseState int

const (
	stateUnknown releaseState = iota
	stateReleased
	stateUnreleased
)

// checkReassignments flags a bare allocation to a variable whose previous
// allocation has not been released yet
func checkReassignments(lines []parser.SourceLine) []parser.Finding {
	var findings []parser.Finding
	states := make(map[string]releaseState)

	for _, line := range lines {
		if match := bareAllocPattern.FindStringSubmatch(line.Text); match != nil {
			name := match[1]
			if states[name] == stateUnreleased {
				findings = append(findings, newFinding(parser.KindReassigned, name, line.Number,
					fmt.Sprintf("Variable '%s' reassigned without being freed at line %d", name, line.Number)))
			}
			states[name] = stateUnreleased
		}

		if match := freePattern.FindStringSubmatch(line.Text); match != nil {
			states[match[1]] = stateReleased
		}
	}

	return findings
}

type funcInit struct {
	line int
	used bool
}

// checkUnusedFuncInits flags pointers initialised from a plain function call that
// are never mentioned again. A line containing "<name> =" never counts as a use.
func checkUnusedFuncInits(lines []parser.SourceLine, words wordMatchers) []parser.Finding {
	inits := make(map[string]*funcInit)
	for _, line := range lines {
		if match := funcPtrInitPattern.FindStringSubmatch(line.Text); match != nil {
			inits[match[2]] = &funcInit{line: line.Number}
		}
	}

	for _, line := range lines {
		for name, fi := range inits {
			if words.match(name, line.Text) && !strings.Contains(line.Text, name+" =") {
				fi.used = true
			}
		}
	}

	var findings []parser.Finding
	for name, fi := range inits {
		if fi.used {
			continue
		}
		findings = append(findings, newFinding(parser.KindUnusedFuncInit, name, fi.line,
			fmt.Sprintf("Function-initialized pointer '%s' at line %d is never used.", name, fi.line)))
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].VarName < findings[j].VarName
	})
	return findings
}

func newFinding(kind parser.FindingKind, name string, line int, reason string) parser.Finding {
	return parser.Finding{
		Line:     line,
		VarName:  name,
		Kind:     kind,
		Reason:   reason,
		Severity: "warning",
	}
}
