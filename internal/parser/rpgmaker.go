package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// RPG Maker event command codes carrying translatable text.
const (
	codeShowText    = 401
	codeShowChoices = 102
)

// RPGMakerParser extracts entries from RPG Maker MV/MZ data files. The
// JSON value is probed for a closed set of structural sub-shapes, tested
// in a fixed priority order independent of the filename. The order is
// load-bearing: several shapes overlap, and the first match wins.
type RPGMakerParser struct{}

func NewRPGMakerParser() *RPGMakerParser { return &RPGMakerParser{} }

func (p *RPGMakerParser) Engine() format.Engine { return format.EngineRPGMaker }

// rpgShape pairs a typed structural predicate with its extraction walker.
type rpgShape struct {
	name    string
	matches func(v any) bool
	extract func(x *extractor, v any)
}

// rpgShapes is evaluated strictly top to bottom.
var rpgShapes = []rpgShape{
	{"map", probeMap, extractMap},
	{"common-events", probeRecordTable("list"), extractCommonEvents},
	{"actors", probeRecordTable("nickname"), extractActors},
	{"system", probeSystem, extractSystem},
	{"entity-table", probeRecordTable("name"), extractEntityTable},
	{"troops", probeRecordTable("members"), extractTroops},
}

func (p *RPGMakerParser) Parse(filename, content string) ([]project.Entry, error) {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, fmt.Errorf("parse rpgmaker json: %w", err)
	}

	x := &extractor{engine: format.EngineRPGMaker, file: filename}
	for _, shape := range rpgShapes {
		if shape.matches(v) {
			x.context = shape.name
			shape.extract(x, v)
			return x.entries, nil
		}
	}
	return nil, nil
}

// probeMap matches map data: a top-level object holding an events array.
func probeMap(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj["events"].([]any)
	return ok
}

// probeRecordTable matches the RPG Maker table convention: an array whose
// element 0 is null, where the first record carries the given field.
func probeRecordTable(field string) func(v any) bool {
	return func(v any) bool {
		arr, ok := v.([]any)
		if !ok || len(arr) < 2 || arr[0] != nil {
			return false
		}
		rec, ok := arr[1].(map[string]any)
		if !ok {
			return false
		}
		_, present := rec[field]
		return present
	}
}

// probeSystem matches System.json: an object with both gameTitle and terms.
func probeSystem(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, hasTitle := obj["gameTitle"]
	_, hasTerms := obj["terms"]
	return hasTitle && hasTerms
}

// extractor accumulates entries with deterministic ids and paths.
type extractor struct {
	engine  format.Engine
	file    string
	context string
	entries []project.Entry
}

func (x *extractor) add(text, path string) {
	if text == "" {
		return
	}
	x.entries = append(x.entries, project.Entry{
		ID:       project.EntryID(x.engine, x.file, path),
		File:     x.file,
		Original: text,
		Path:     path,
		Context:  x.context,
	})
}

func extractMap(x *extractor, v any) {
	obj := v.(map[string]any)
	events, _ := obj["events"].([]any)
	for e, ev := range events {
		evObj, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		pages, _ := evObj["pages"].([]any)
		for pg, page := range pages {
			pageObj, ok := page.(map[string]any)
			if !ok {
				continue
			}
			list, _ := pageObj["list"].([]any)
			x.extractCommandList(list, fmt.Sprintf("events[%d].pages[%d].list", e, pg))
		}
	}
}

// extractCommandList walks an event command list. Code 401 (show text)
// yields one entry from the first parameter; code 102 (show choices)
// yields one entry per choice string in the first parameter's array.
func (x *extractor) extractCommandList(list []any, prefix string) {
	for l, cmd := range list {
		cmdObj, ok := cmd.(map[string]any)
		if !ok {
			continue
		}
		code, ok := cmdObj["code"].(float64)
		if !ok {
			continue
		}
		params, _ := cmdObj["parameters"].([]any)
		switch int(code) {
		case codeShowText:
			if len(params) > 0 {
				if text, ok := params[0].(string); ok {
					x.add(text, fmt.Sprintf("%s[%d].parameters[0]", prefix, l))
				}
			}
		case codeShowChoices:
			if len(params) > 0 {
				choices, _ := params[0].([]any)
				for c, choice := range choices {
					if text, ok := choice.(string); ok {
						x.add(text, fmt.Sprintf("%s[%d].parameters[0][%d]", prefix, l, c))
					}
				}
			}
		}
	}
}

func extractCommonEvents(x *extractor, v any) {
	arr := v.([]any)
	for i, rec := range arr {
		recObj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		list, _ := recObj["list"].([]any)
		x.extractCommandList(list, fmt.Sprintf("[%d].list", i))
	}
}

func extractActors(x *extractor, v any) {
	arr := v.([]any)
	for i, rec := range arr {
		recObj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		for _, field := range []string{"name", "nickname", "profile"} {
			if text, ok := recObj[field].(string); ok {
				x.add(text, fmt.Sprintf("[%d].%s", i, field))
			}
		}
	}
}

// systemTermLists are the terms sub-arrays extracted from System.json.
var systemTermLists = []string{"basic", "commands", "params"}

// systemTypeLists are the top-level type-name arrays of System.json.
var systemTypeLists = []string{"weaponTypes", "armorTypes", "skillTypes", "elements"}

func extractSystem(x *extractor, v any) {
	obj := v.(map[string]any)
	if title, ok := obj["gameTitle"].(string); ok {
		x.add(title, "gameTitle")
	}
	terms, _ := obj["terms"].(map[string]any)
	for _, key := range systemTermLists {
		arr, _ := terms[key].([]any)
		for i, el := range arr {
			if text, ok := el.(string); ok {
				x.add(text, fmt.Sprintf("terms.%s[%d]", key, i))
			}
		}
	}
	if messages, ok := terms["messages"].(map[string]any); ok {
		// Sorted for deterministic id/path sequences across parses.
		keys := make([]string, 0, len(messages))
		for k := range messages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if text, ok := messages[k].(string); ok {
				x.add(text, fmt.Sprintf("terms.messages.%s", k))
			}
		}
	}
	for _, key := range systemTypeLists {
		arr, _ := obj[key].([]any)
		for i, el := range arr {
			if text, ok := el.(string); ok {
				x.add(text, fmt.Sprintf("%s[%d]", key, i))
			}
		}
	}
}

// entityFields are the translatable fields of a generic entity record
// (items, skills, weapons, armors, enemies, states, classes).
var entityFields = []string{
	"name", "description",
	"message1", "message2", "message3", "message4",
	"victoryMessage", "defeatMessage",
}

func extractEntityTable(x *extractor, v any) {
	arr := v.([]any)
	for i, rec := range arr {
		recObj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		for _, field := range entityFields {
			if text, ok := recObj[field].(string); ok {
				x.add(text, fmt.Sprintf("[%d].%s", i, field))
			}
		}
	}
}

func extractTroops(x *extractor, v any) {
	arr := v.([]any)
	for i, rec := range arr {
		recObj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := recObj["name"].(string); ok {
			x.add(name, fmt.Sprintf("[%d].name", i))
		}
		pages, _ := recObj["pages"].([]any)
		for pg, page := range pages {
			pageObj, ok := page.(map[string]any)
			if !ok {
				continue
			}
			list, _ := pageObj["list"].([]any)
			x.extractCommandList(list, fmt.Sprintf("[%d].pages[%d].list", i, pg))
		}
	}
}
