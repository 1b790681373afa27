package project

import (
	"fmt"

	"script-translator/internal/format"
)

// Provenance of an entry's current translation relative to the project
// engine. A translation-memory hit recorded under the same engine carries
// more confidence than one recorded under a different engine.
const (
	ProvenanceSameEngine  = "same"
	ProvenanceOtherEngine = "other"
)

// Entry is one addressable unit of translatable text extracted from a
// source file. Original and Path never change after extraction; only
// Translated and Provenance are mutable.
type Entry struct {
	// ID is deterministic: identical inputs always reproduce identical
	// ids. See EntryID for the format.
	ID         string `json:"id"`
	File       string `json:"file"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	// Path is the structural address used by the applier to relocate
	// the extracted value inside a fresh parse of the file.
	Path       string `json:"path"`
	Context    string `json:"context,omitempty"`
	Provenance string `json:"provenance,omitempty"`
}

// EntryID builds the deterministic entry id from the engine tag, the
// source filename and the structural path. The format is part of the
// addressing contract; prior exports and TM entries depend on it.
func EntryID(engine format.Engine, filename, path string) string {
	return fmt.Sprintf("%s:%s:%s", engine, filename, path)
}

// FileSnapshot preserves a file's raw decoded text as imported. The
// applier always starts from this snapshot, never from parser state.
type FileSnapshot struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Project is an ordered collection of entries plus the original file
// snapshots they were extracted from.
type Project struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Engine  format.Engine  `json:"engine"`
	Entries []Entry        `json:"entries"`
	Files   []FileSnapshot `json:"files"`
}
