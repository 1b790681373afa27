package parser

import (
	"script-translator/internal/format"
	"script-translator/internal/project"
)

// Parser extracts translatable entries from decoded file content.
// Parsers are pure functions of (filename, content); they hold no state
// between calls, and the applier never reuses anything they produced
// beyond the entries themselves.
type Parser interface {
	// Engine returns the format tag this parser produces entries for.
	Engine() format.Engine
	// Parse extracts entries in document order. A nil error with zero
	// entries is valid (nothing translatable). An error means the file
	// contributes nothing; other files are unaffected.
	Parse(filename, content string) ([]project.Entry, error)
}

// Select runs format detection and returns the parser for the detected
// engine along with the engine tag. CSV files and unrecognized content
// share the generic engine tag but use different parsers; the entry path
// distinguishes them at reinjection time.
func Select(filename, content string) (Parser, format.Engine) {
	engine := format.Detect(filename, content)
	switch engine {
	case format.EngineRPGMaker:
		return NewRPGMakerParser(), engine
	case format.EngineKiriKiri:
		return NewKiriKiriParser(), engine
	case format.EngineRenPy:
		return NewRenPyParser(), engine
	case format.EngineJSON:
		return NewJSONParser(), engine
	case format.EngineSubtitles:
		return NewSRTParser(), engine
	default:
		if isCSV(filename) {
			return NewCSVParser(), format.EngineGeneric
		}
		return NewFallbackParser(), format.EngineGeneric
	}
}
