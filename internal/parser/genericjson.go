package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// JSONParser handles Unity tables and any other generic JSON: an
// unrestricted depth-first traversal where every non-empty string leaf
// becomes an entry. No field filtering. Object keys are visited in
// sorted order so two parses of the same file yield identical id/path
// sequences.
type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Engine() format.Engine { return format.EngineJSON }

func (p *JSONParser) Parse(filename, content string) ([]project.Entry, error) {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, fmt.Errorf("parse generic json: %w", err)
	}
	x := &extractor{engine: format.EngineJSON, file: filename}
	walkJSON(x, v, "")
	return x.entries, nil
}

func walkJSON(x *extractor, v any, path string) {
	switch t := v.(type) {
	case string:
		x.add(t, path)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			walkJSON(x, t[k], child)
		}
	case []any:
		for i, el := range t {
			walkJSON(x, el, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}
