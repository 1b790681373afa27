package translator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"script-translator/internal/interpolation"
	"script-translator/internal/project"
	"script-translator/internal/textutil"
	"script-translator/internal/tm"
	"script-translator/internal/worker"
)

// State of a batch run. Done is never a hard-failure terminal state:
// per-item fallbacks still count as completion.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Runner orchestrates deduplicating batch translation. Distinct original
// strings are collected from the target entries, split into fixed-size
// batches and sent to the provider strictly sequentially. After every
// completed batch the results fan out to all entries in the project
// sharing each original string and are upserted into the translation
// memory, so partial progress is observable mid-run.
type Runner struct {
	store    *project.Store
	memory   *tm.Memory
	provider Provider

	batchSize int
	delay     time.Duration

	mu      sync.Mutex
	state   State
	stopped bool
}

// NewRunner wires a runner. batchSize <= 0 falls back to 10; delay is
// the fixed pause after each provider call, for rate-limited endpoints.
func NewRunner(store *project.Store, memory *tm.Memory, provider Provider, batchSize int, delay time.Duration) *Runner {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Runner{
		store:     store,
		memory:    memory,
		provider:  provider,
		batchSize: batchSize,
		delay:     delay,
	}
}

// State reports the current run state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Stop halts dispatch of further batches. The in-flight batch still
// completes and applies; there is no per-call cancellation token.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

func (r *Runner) stopRequested() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	if s == StateRunning {
		r.stopped = false
	}
	r.mu.Unlock()
}

// Run translates the given entry subset into targetLang. Never returns
// an error: provider failures degrade to echoing original text and the
// run always reaches Done.
func (r *Runner) Run(ctx context.Context, entries []project.Entry, targetLang string) {
	r.setState(StateRunning)
	defer r.setState(StateDone)

	engine := r.store.Engine()
	originals := distinctOriginals(entries)
	batches := worker.Batch(originals, r.batchSize)

	log.Info().
		Int("entries", len(entries)).
		Int("distinct", len(originals)).
		Int("batches", len(batches)).
		Str("lang", targetLang).
		Str("provider", r.provider.Name()).
		Msg("Starting batch translation")

	req := Request{TargetLang: targetLang, FormatHint: string(engine)}

	for i, batch := range batches {
		if r.stopRequested() || ctx.Err() != nil {
			log.Info().Int("batch", i).Msg("Run stopped, skipping remaining batches")
			return
		}

		results, echoed := r.translateBatch(ctx, batch, req)

		for j, original := range batch {
			translated := results[j]
			n := r.store.Propagate(original, translated, project.ProvenanceSameEngine)
			// Echoes fill entries but never reach the memory: caching
			// original→original would shadow the string from every
			// future provider call for this language.
			if !echoed[j] {
				r.memory.Put(ctx, tm.Record{
					Original:   original,
					Translated: translated,
					TargetLang: targetLang,
					Engine:     engine,
				})
			}
			log.Debug().
				Str("text", textutil.Truncate(original, 30)).
				Int("propagated", n).
				Msg("Translation applied")
		}

		log.Info().Int("batch", i+1).Int("total", len(batches)).Msg("Batch complete")

		if r.delay > 0 && i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.delay):
			}
		}
	}
}

// translateBatch calls the provider once and normalizes the response to
// fail-soft semantics: on error, or wherever the response is short or
// empty, the original text stands in for the translation. echoed marks
// those stand-in slots so they are never mistaken for resolved
// translations.
func (r *Runner) translateBatch(ctx context.Context, batch []string, req Request) (out []string, echoed []bool) {
	protected := make([]string, len(batch))
	mappings := make([][]interpolation.Mapping, len(batch))
	for i, text := range batch {
		protected[i], mappings[i] = interpolation.Protect(text)
	}

	echoed = make([]bool, len(batch))
	results, err := r.provider.Translate(ctx, protected, req)
	if err != nil {
		log.Error().Err(err).Int("size", len(batch)).Msg("Provider call failed, echoing originals")
		for i := range echoed {
			echoed[i] = true
		}
		return append([]string(nil), batch...), echoed
	}

	out = make([]string, len(batch))
	for i := range batch {
		if i < len(results) && results[i] != "" {
			out[i] = interpolation.Restore(results[i], mappings[i])
		} else {
			out[i] = batch[i]
			echoed[i] = true
		}
	}
	return out, echoed
}

// distinctOriginals collects the distinct original strings of the given
// entries in first-seen order. Provider cost scales with distinct
// strings, not entries.
func distinctOriginals(entries []project.Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		if _, dup := seen[e.Original]; dup {
			continue
		}
		seen[e.Original] = struct{}{}
		out = append(out, e.Original)
	}
	return out
}
