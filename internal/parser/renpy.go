package parser

import (
	"fmt"
	"regexp"
	"strings"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// RenPyParser extracts dialogue from Ren'Py scripts. Each line is
// matched for an optional leading bare identifier (the speaker) followed
// by a double-quoted string spanning the rest of the line; only the
// quoted payload becomes an entry. Backslash-escaped quotes are kept
// as-is inside the payload.
type RenPyParser struct{}

func NewRenPyParser() *RenPyParser { return &RenPyParser{} }

func (p *RenPyParser) Engine() format.Engine { return format.EngineRenPy }

// renpyLinePattern captures the prefix up to and including the opening
// quote, the payload with escaped quotes allowed, and the closing quote
// with trailing whitespace. The applier re-matches the same pattern to
// replace only the payload, preserving the speaker prefix exactly.
var renpyLinePattern = regexp.MustCompile(`^(\s*(?:[A-Za-z_][A-Za-z0-9_]*\s+)?")((?:[^"\\]|\\.)*)("\s*)$`)

// MatchRenPyLine splits a dialogue line into prefix (through the opening
// quote), quoted payload, and suffix (closing quote plus trailing
// whitespace). ok is false for lines that are not dialogue.
func MatchRenPyLine(line string) (prefix, payload, suffix string, ok bool) {
	m := renpyLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

func (p *RenPyParser) Parse(filename, content string) ([]project.Entry, error) {
	var entries []project.Entry
	for n, line := range strings.Split(content, "\n") {
		_, payload, _, ok := MatchRenPyLine(strings.TrimSuffix(line, "\r"))
		if !ok || strings.TrimSpace(payload) == "" {
			continue
		}
		path := fmt.Sprintf("line-%d", n)
		entries = append(entries, project.Entry{
			ID:       project.EntryID(format.EngineRenPy, filename, path),
			File:     filename,
			Original: payload,
			Path:     path,
		})
	}
	return entries, nil
}
