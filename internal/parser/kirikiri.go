package parser

import (
	"fmt"
	"regexp"
	"strings"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// KiriKiriParser extracts dialogue lines from KiriKiri/KAG scenario
// scripts. It is line-oriented, not a full lexer: labels, commands,
// comments and tag-only lines are skipped; everything else is dialogue
// and is kept byte-for-byte so inline markup (ruby annotations, wait
// tags) survives translation untouched.
type KiriKiriParser struct{}

func NewKiriKiriParser() *KiriKiriParser { return &KiriKiriParser{} }

func (p *KiriKiriParser) Engine() format.Engine { return format.EngineKiriKiri }

// tagOnlyPattern matches a line consisting solely of one or more
// bracketed tag groups with no other visible characters.
var tagOnlyPattern = regexp.MustCompile(`^(\[[^\[\]]*\])+$`)

func (p *KiriKiriParser) Parse(filename, content string) ([]project.Entry, error) {
	var entries []project.Entry
	for n, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "@") {
			continue
		}
		if tagOnlyPattern.MatchString(trimmed) {
			continue
		}
		path := fmt.Sprintf("line-%d", n)
		entries = append(entries, project.Entry{
			ID:       project.EntryID(format.EngineKiriKiri, filename, path),
			File:     filename,
			Original: strings.TrimSuffix(line, "\r"),
			Path:     path,
		})
	}
	return entries, nil
}
