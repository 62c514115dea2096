package parser

import (
	"regexp"
	"strings"
)

// inlineBlockComment only matches "/*/" and "/.*/"; longer block comments are left alone.
var inlineBlockComment = regexp.MustCompile(`/\.?\*/`)

const whitespace = " \t\r\n"

// StripComments removes a trailing // comment and the narrow inline block comment form
func StripComments(line string) string {
	if pos := strings.Index(line, "//"); pos >= 0 {
		line = line[:pos]
	}
	return inlineBlockComment.ReplaceAllString(line, "")
}

// Trim removes leading and trailing spaces, tabs, CR and LF
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}

// NormalizeLine applies comment stripping then trimming
func NormalizeLine(line string) string {
	return Trim(StripComments(line))
}

// SplitLines splits text the way a line reader does: a trailing newline does not
// produce an extra empty line, and empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Normalize turns raw text into numbered, normalized source lines
func Normalize(text string) []SourceLine {
	raw := SplitLines(text)
	result := make([]SourceLine, 0, len(raw))
	for i, line := range raw {
		result = append(result, SourceLine{
			Number: i + 1,
			Text:   NormalizeLine(line),
		})
	}
	return result
}
