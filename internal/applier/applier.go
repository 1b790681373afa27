package applier

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"script-translator/internal/format"
	"script-translator/internal/parser"
	"script-translator/internal/project"
)

// Status reports what happened to one entry during reinjection. Only
// StatusApplied mutates the output; the other statuses are no-ops kept
// for diagnostics. A path that fails to resolve must never abort a
// whole-file export.
type Status int

const (
	// StatusApplied: the translated value was written at the address.
	StatusApplied Status = iota
	// StatusSkipped: the entry had no translation; nothing to do.
	StatusSkipped
	// StatusPathMiss: the address no longer resolves in the content.
	StatusPathMiss
	// StatusNotString: the address resolves but not to a string value.
	StatusNotString
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusPathMiss:
		return "path-miss"
	case StatusNotString:
		return "not-a-string"
	default:
		return "unknown"
	}
}

// Result is the per-entry outcome of an Apply call.
type Result struct {
	EntryID string
	Path    string
	Status  Status
}

// Apply re-parses the original content independently and rewrites every
// addressed location that has a non-empty translation, producing the
// final file text. Output equals input wherever translations are empty,
// and applying twice with the same entries is idempotent.
func Apply(engine format.Engine, content string, entries []project.Entry) (string, []Result) {
	switch engine {
	case format.EngineRPGMaker, format.EngineJSON:
		return applyJSON(content, entries)
	case format.EngineKiriKiri:
		return applyKiriKiri(content, entries)
	case format.EngineRenPy:
		return applyRenPy(content, entries)
	case format.EngineSubtitles:
		return applySubtitles(content, entries)
	default:
		return applyGeneric(content, entries)
	}
}

// applyJSON patches a parsed JSON tree. Missing intermediate segments
// silently abandon the entry: partial format drift must never abort a
// whole-file export. A parse failure returns the content unchanged.
func applyJSON(content string, entries []project.Entry) (string, []Result) {
	var root any
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		log.Warn().Err(err).Msg("Reinjection target is not valid JSON, leaving content unchanged")
		return content, nil
	}

	results := make([]Result, 0, len(entries))
	applied := 0
	for _, e := range entries {
		st := patchJSON(root, e)
		if st == StatusApplied {
			applied++
		}
		results = append(results, Result{EntryID: e.ID, Path: e.Path, Status: st})
	}
	if applied == 0 {
		return content, results
	}
	return marshalStable(root), results
}

func patchJSON(root any, e project.Entry) Status {
	if e.Translated == "" {
		return StatusSkipped
	}
	segs, err := parsePath(e.Path)
	if err != nil {
		return StatusPathMiss
	}
	container := root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := step(container, seg)
		if !ok {
			return StatusPathMiss
		}
		container = next
	}
	last := segs[len(segs)-1]
	current, ok := step(container, last)
	if !ok {
		return StatusPathMiss
	}
	if _, isString := current.(string); !isString {
		return StatusNotString
	}
	if !assign(container, last, e.Translated) {
		return StatusPathMiss
	}
	return StatusApplied
}

// marshalStable serializes with two-space indentation, HTML escaping off
// and (via encoding/json) sorted object keys, so repeated applications
// serialize identically.
func marshalStable(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("Re-serialize failed")
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// linePath extracts the index from a "line-<n>" address.
func linePath(path string) (int, bool) {
	rest, ok := strings.CutPrefix(path, "line-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

// applyKiriKiri performs full-line replacement at the addressed index.
func applyKiriKiri(content string, entries []project.Entry) (string, []Result) {
	lines := strings.Split(content, "\n")
	results := make([]Result, 0, len(entries))
	applied := 0
	for _, e := range entries {
		st := StatusSkipped
		if e.Translated != "" {
			n, ok := linePath(e.Path)
			if !ok || n < 0 || n >= len(lines) {
				st = StatusPathMiss
			} else {
				// The parser trimmed the \r; keep it so CRLF files
				// come out with uniform line endings.
				if strings.HasSuffix(lines[n], "\r") {
					lines[n] = e.Translated + "\r"
				} else {
					lines[n] = e.Translated
				}
				st = StatusApplied
				applied++
			}
		}
		results = append(results, Result{EntryID: e.ID, Path: e.Path, Status: st})
	}
	if applied == 0 {
		return content, results
	}
	return strings.Join(lines, "\n"), results
}

// applyRenPy re-matches the quoted-string pattern at the addressed line
// and replaces only the payload, preserving the speaker prefix exactly.
func applyRenPy(content string, entries []project.Entry) (string, []Result) {
	lines := strings.Split(content, "\n")
	results := make([]Result, 0, len(entries))
	applied := 0
	for _, e := range entries {
		st := StatusSkipped
		if e.Translated != "" {
			n, ok := linePath(e.Path)
			if !ok || n < 0 || n >= len(lines) {
				st = StatusPathMiss
			} else if prefix, _, suffix, matched := parser.MatchRenPyLine(lines[n]); !matched {
				st = StatusPathMiss
			} else {
				lines[n] = prefix + e.Translated + suffix
				st = StatusApplied
				applied++
			}
		}
		results = append(results, Result{EntryID: e.ID, Path: e.Path, Status: st})
	}
	if applied == 0 {
		return content, results
	}
	return strings.Join(lines, "\n"), results
}

// applySubtitles rebuilds each addressed block as (index line, timecode
// line, translated text), discarding any original text lines beyond the
// two header lines.
func applySubtitles(content string, entries []project.Entry) (string, []Result) {
	blocks := parser.SplitSRTBlocks(content)
	results := make([]Result, 0, len(entries))
	applied := 0
	for _, e := range entries {
		st := StatusSkipped
		if e.Translated != "" {
			rest, ok := strings.CutPrefix(e.Path, "block-")
			b, err := strconv.Atoi(rest)
			if !ok || err != nil || b < 0 || b >= len(blocks) {
				st = StatusPathMiss
			} else {
				lines := strings.Split(blocks[b], "\n")
				if len(lines) < 2 {
					st = StatusPathMiss
				} else {
					blocks[b] = lines[0] + "\n" + lines[1] + "\n" + e.Translated
					st = StatusApplied
					applied++
				}
			}
		}
		results = append(results, Result{EntryID: e.ID, Path: e.Path, Status: st})
	}
	if applied == 0 {
		return content, results
	}
	return strings.Join(blocks, "\n\n"), results
}

// applyGeneric handles the generic engine: whole-file overwrite for the
// fallback path, naive cell replacement for CSV row/col addresses.
func applyGeneric(content string, entries []project.Entry) (string, []Result) {
	out := content
	lines := strings.Split(content, "\n")
	results := make([]Result, 0, len(entries))
	csvApplied := 0
	overwritten := false
	for _, e := range entries {
		st := StatusSkipped
		if e.Translated != "" {
			if e.Path == parser.FallbackPath {
				out = e.Translated
				overwritten = true
				st = StatusApplied
			} else if r, c, ok := csvPath(e.Path); !ok {
				st = StatusPathMiss
			} else if r < 0 || r >= len(lines) {
				st = StatusPathMiss
			} else {
				hadCR := strings.HasSuffix(lines[r], "\r")
				row := strings.Split(strings.TrimSuffix(lines[r], "\r"), ",")
				if c < 0 || c >= len(row) {
					st = StatusPathMiss
				} else {
					row[c] = e.Translated
					lines[r] = strings.Join(row, ",")
					if hadCR {
						lines[r] += "\r"
					}
					st = StatusApplied
					csvApplied++
				}
			}
		}
		results = append(results, Result{EntryID: e.ID, Path: e.Path, Status: st})
	}
	if overwritten {
		return out, results
	}
	if csvApplied == 0 {
		return content, results
	}
	return strings.Join(lines, "\n"), results
}

// csvPath extracts row and column from a "row-<r>-col-<c>" address.
func csvPath(path string) (row, col int, ok bool) {
	rest, found := strings.CutPrefix(path, "row-")
	if !found {
		return 0, 0, false
	}
	rPart, cPart, found := strings.Cut(rest, "-col-")
	if !found {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(rPart)
	c, err2 := strconv.Atoi(cPart)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return r, c, true
}
