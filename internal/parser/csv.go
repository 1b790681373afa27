package parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// CSVParser extracts cells from comma-separated files. Rows are split on
// raw commas with no quoted-field handling, so a field containing a
// comma is mis-split. That limitation is part of the addressing
// contract; fixing it would silently change every row/col path of
// previously exported projects.
type CSVParser struct{}

func NewCSVParser() *CSVParser { return &CSVParser{} }

func (p *CSVParser) Engine() format.Engine { return format.EngineGeneric }

func isCSV(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

func (p *CSVParser) Parse(filename, content string) ([]project.Entry, error) {
	var entries []project.Entry
	for r, row := range strings.Split(content, "\n") {
		row = strings.TrimSuffix(row, "\r")
		for c, cell := range strings.Split(row, ",") {
			text := strings.TrimSpace(cell)
			if text == "" || isNumeric(text) {
				continue
			}
			path := fmt.Sprintf("row-%d-col-%d", r, c)
			entries = append(entries, project.Entry{
				ID:       project.EntryID(format.EngineGeneric, filename, path),
				File:     filename,
				Original: text,
				Path:     path,
			})
		}
	}
	return entries, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
