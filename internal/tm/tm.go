package tm

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"script-translator/internal/format"
	"script-translator/internal/project"
)

// Record is one cached translation pair. Upserts replace the whole
// record; a key is never partially merged.
type Record struct {
	Original   string
	Translated string
	TargetLang string
	Engine     format.Engine
}

// Key builds the cache key. The format is a wire contract shared with
// previously persisted stores.
func Key(targetLang, original string) string {
	return targetLang + ":" + original
}

// Store is the minimal persistence surface behind the memory: get/set/
// remove-all, no transactions.
type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Put(ctx context.Context, key string, rec Record) error
	RemoveAll(ctx context.Context) error
	List(ctx context.Context) ([]Record, error)
}

// Memory is the translation memory: an in-memory map in front of a
// persistent store. Store failures degrade to cache misses; an
// unreadable cache behaves like an empty one.
type Memory struct {
	store Store
	mu    sync.RWMutex
	cache map[string]Record
}

func New(store Store) *Memory {
	return &Memory{store: store, cache: make(map[string]Record)}
}

// Preload pulls every persisted record into the memory layer.
func (m *Memory) Preload(ctx context.Context) error {
	recs, err := m.store.List(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range recs {
		m.cache[Key(r.TargetLang, r.Original)] = r
	}
	log.Info().Int("count", len(recs)).Msg("Preloaded translation memory")
	return nil
}

// Get looks up a pair by target language and original text.
func (m *Memory) Get(ctx context.Context, targetLang, original string) (Record, bool) {
	key := Key(targetLang, original)

	m.mu.RLock()
	if r, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return r, true
	}
	m.mu.RUnlock()

	r, ok, err := m.store.Get(ctx, key)
	if err != nil || !ok {
		return Record{}, false
	}

	m.mu.Lock()
	m.cache[key] = r
	m.mu.Unlock()
	return r, true
}

// Put upserts a pair into both layers. Every resolved translation,
// provider result or manual edit alike, goes through here.
func (m *Memory) Put(ctx context.Context, rec Record) {
	key := Key(rec.TargetLang, rec.Original)

	m.mu.Lock()
	m.cache[key] = rec
	m.mu.Unlock()

	if err := m.store.Put(ctx, key, rec); err != nil {
		log.Warn().Err(err).Str("lang", rec.TargetLang).Msg("Failed to persist TM record")
	}
}

// Clear removes every record from both layers.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.cache = make(map[string]Record)
	m.mu.Unlock()
	return m.store.RemoveAll(ctx)
}

// Len reports the number of records currently in the memory layer.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

// Fill pre-fills every untranslated entry in the store from the memory.
// A hit under the project's own engine is marked "same"; a hit recorded
// under a different engine is surfaced as the weaker "other" signal.
// Runs whenever a project loads or the target language changes.
func (m *Memory) Fill(ctx context.Context, s *project.Store, engine format.Engine, targetLang string) int {
	n := s.FillUntranslated(func(original string) (string, string) {
		rec, ok := m.Get(ctx, targetLang, original)
		if !ok || rec.Translated == "" {
			return "", ""
		}
		if rec.Engine == engine {
			return rec.Translated, project.ProvenanceSameEngine
		}
		return rec.Translated, project.ProvenanceOtherEngine
	})
	if n > 0 {
		log.Info().Int("filled", n).Str("lang", targetLang).Msg("Translation memory pre-fill")
	}
	return n
}
