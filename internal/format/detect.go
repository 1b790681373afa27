package format

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Detect classifies a (filename, content) pair into an engine tag.
// The decision is ordered first-match: a .json extension triggers a parse
// probe, known script extensions map directly, and everything else
// (including JSON that fails to parse) falls back to the generic engine.
// Detection never fails.
func Detect(filename, content string) Engine {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return detectJSON(content)
	case ".ks", ".tjs":
		return EngineKiriKiri
	case ".rpy":
		return EngineRenPy
	case ".csv":
		return EngineGeneric
	case ".srt":
		return EngineSubtitles
	default:
		return EngineGeneric
	}
}

// detectJSON probes parsed JSON for the RPG Maker family: either a
// top-level object with an "events" array, or an array whose first
// element is null (the 1-based record convention of RPG Maker data
// tables). Anything else that parses is generic JSON.
func detectJSON(content string) Engine {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return EngineGeneric
	}
	switch t := v.(type) {
	case map[string]any:
		if _, ok := t["events"].([]any); ok {
			return EngineRPGMaker
		}
	case []any:
		if len(t) > 0 && t[0] == nil {
			return EngineRPGMaker
		}
	}
	return EngineJSON
}
