package parser

import (
	"strings"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// FallbackPath is the fixed non-addressable path of a whole-file entry.
// Reinjection for this path is a full-file overwrite.
const FallbackPath = "file"

// FallbackParser wraps an entire unrecognized file (or JSON that failed
// to parse) in a single generic entry.
type FallbackParser struct{}

func NewFallbackParser() *FallbackParser { return &FallbackParser{} }

func (p *FallbackParser) Engine() format.Engine { return format.EngineGeneric }

func (p *FallbackParser) Parse(filename, content string) ([]project.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	return []project.Entry{{
		ID:       project.EntryID(format.EngineGeneric, filename, FallbackPath),
		File:     filename,
		Original: content,
		Path:     FallbackPath,
	}}, nil
}
