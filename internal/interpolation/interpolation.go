package interpolation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Mapping pairs an original placeholder with the token that stood in for
// it while the text was at the provider.
type Mapping struct {
	Original    string
	Placeholder string
	Index       int
}

type span struct {
	start, end int
	value      string
}

// patterns cover the markup and interpolation variables seen in game
// scripts. Providers routinely mangle these, so they are swapped for
// opaque tokens before the call and restored afterwards.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\\[A-Za-z]+\[[^\[\]]*\]`),              // RPG Maker escape codes: \C[2], \N[1]
	regexp.MustCompile(`\[[^\[\]]+\]`),                         // KAG inline tags: [ruby text=...], [wait time=100]
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %.2f
	regexp.MustCompile(`%%`),                                   // literal percent
}

// Protect replaces every markup span with a {{var_N}} token. The
// returned mapping restores the originals after translation.
func Protect(text string) (string, []Mapping) {
	var spans []span
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}
	if len(spans) == 0 {
		return text, nil
	}

	// Position order, longest first on ties, then drop overlaps.
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end-spans[i].start > spans[j].end-spans[j].start
	})
	kept := make([]span, 0, len(spans))
	lastEnd := -1
	for _, s := range spans {
		if s.start >= lastEnd {
			kept = append(kept, s)
			lastEnd = s.end
		}
	}

	mappings := make([]Mapping, len(kept))
	var sb strings.Builder
	prev := 0
	for i, s := range kept {
		token := fmt.Sprintf("{{var_%d}}", i+1)
		mappings[i] = Mapping{Original: s.value, Placeholder: token, Index: i + 1}
		sb.WriteString(text[prev:s.start])
		sb.WriteString(token)
		prev = s.end
	}
	sb.WriteString(text[prev:])
	return sb.String(), mappings
}

// Restore swaps each token back for its original span. Tokens the
// provider dropped simply stay dropped; the ones it kept come back
// byte-identical.
func Restore(translated string, mappings []Mapping) string {
	out := translated
	for _, m := range mappings {
		out = strings.Replace(out, m.Placeholder, m.Original, 1)
	}
	return out
}
