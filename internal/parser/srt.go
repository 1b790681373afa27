package parser

import (
	"fmt"
	"strings"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// SRTParser extracts subtitle text from SubRip files. Content splits on
// blank-line-delimited blocks; a valid block has at least an index line,
// a timecode line and one text line. The entry text joins all remaining
// lines of the block.
type SRTParser struct{}

func NewSRTParser() *SRTParser { return &SRTParser{} }

func (p *SRTParser) Engine() format.Engine { return format.EngineSubtitles }

// SplitSRTBlocks splits subtitle content into blocks on blank lines.
// Block indices in entry paths refer to positions in this split, so the
// applier uses the same function to relocate blocks.
func SplitSRTBlocks(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
}

func (p *SRTParser) Parse(filename, content string) ([]project.Entry, error) {
	var entries []project.Entry
	for b, block := range SplitSRTBlocks(content) {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}
		text := strings.Join(lines[2:], "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		path := fmt.Sprintf("block-%d", b)
		entries = append(entries, project.Entry{
			ID:       project.EntryID(format.EngineSubtitles, filename, path),
			File:     filename,
			Original: text,
			Path:     path,
			Context:  strings.TrimSpace(lines[1]),
		})
	}
	return entries, nil
}
