package analyzer

import (
	"regexp"
	"strings"
)

var (
	// typedAllocPattern matches "int x = (int*)malloc(" and captures x in group 2.
	// A '*' between the type and the name defeats it; such lines fall through to
	// bareAllocPattern.
	typedAllocPattern = regexp.MustCompile(`(int|float|double|char)\s*\b([a-zA-Z_]\w*)\b\s*=\s*\([^)]+\)\s*(malloc|calloc|realloc)\s*\(`)

	// bareAllocPattern matches "x = (int*)malloc(" and captures x in group 1
	bareAllocPattern = regexp.MustCompile(`\b([a-zA-Z_]\w*)\s*=\s*\([^)]+\)\s*(malloc|calloc|realloc)\s*\(`)

	// freePattern has no leading word boundary, so "myfree(p)" counts as a release
	freePattern = regexp.MustCompile(`free\s*\(\s*([a-zA-Z_]\w*)\s*\)`)

	// funcPtrInitPattern matches "char* s = getLine()" and captures s in group 2
	funcPtrInitPattern = regexp.MustCompile(`(int|float|double|char)\s*\*+\s*([a-zA-Z_]\w*)\s*=\s*([a-zA-Z_]\w*)\s*\([^;]*\)`)
)

func isLoopLine(text string) bool {
	return strings.Contains(text, "for") || strings.Contains(text, "while")
}

// wordMatchers caches whole-word patterns for one analysis run
type wordMatchers map[string]*regexp.Regexp

func (w wordMatchers) match(name, text string) bool {
	re, ok := w[name]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		w[name] = re
	}
	return re.MatchString(text)
}
