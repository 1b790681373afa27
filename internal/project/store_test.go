package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"script-translator/internal/format"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore("p1", "test")
	t.Cleanup(s.Close)
	return s
}

func TestStoreAppendAndRead(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a.ks", Content: "Hello"}, format.EngineKiriKiri, []Entry{
		{ID: "kirikiri:a.ks:line-0", File: "a.ks", Original: "Hello", Path: "line-0"},
	})

	assert.Equal(t, format.EngineKiriKiri, s.Engine())
	require.Len(t, s.Entries(), 1)
	require.Len(t, s.Files(), 1)
	assert.Equal(t, "Hello", s.Files()[0].Content)
	assert.Len(t, s.EntriesForFile("a.ks"), 1)
	assert.Empty(t, s.EntriesForFile("b.ks"))
}

func TestStoreDuplicateOriginalsShareTranslation(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a.csv"}, format.EngineGeneric, []Entry{
		{ID: "generic:a.csv:row-0-col-0", File: "a.csv", Original: "Attack"},
	})
	s.AppendFile(FileSnapshot{Name: "b.csv"}, format.EngineGeneric, []Entry{
		{ID: "generic:b.csv:row-3-col-1", File: "b.csv", Original: "Attack"},
		{ID: "generic:b.csv:row-4-col-1", File: "b.csv", Original: "Defend"},
	})

	// Translating either entry reaches every holder of the string.
	n := s.SetTranslation("generic:a.csv:row-0-col-0", "Serang", ProvenanceSameEngine)
	assert.Equal(t, 2, n)

	for _, e := range s.Entries() {
		if e.Original == "Attack" {
			assert.Equal(t, "Serang", e.Translated)
			assert.Equal(t, ProvenanceSameEngine, e.Provenance)
		} else {
			assert.Empty(t, e.Translated)
		}
	}
}

func TestStoreSetTranslationUnknownID(t *testing.T) {
	s := newTestStore(t)
	assert.Zero(t, s.SetTranslation("missing", "x", ProvenanceSameEngine))
}

func TestStoreLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a"}, format.EngineJSON, []Entry{
		{ID: "e1", File: "a", Original: "Hi"},
	})

	s.Propagate("Hi", "first", ProvenanceSameEngine)
	s.Propagate("Hi", "second", ProvenanceOtherEngine)

	got := s.Entries()[0]
	assert.Equal(t, "second", got.Translated)
	assert.Equal(t, ProvenanceOtherEngine, got.Provenance)
}

func TestStoreFillUntranslated(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a"}, format.EngineJSON, []Entry{
		{ID: "e1", File: "a", Original: "Hi", Translated: "already"},
		{ID: "e2", File: "a", Original: "Bye"},
		{ID: "e3", File: "a", Original: "Unknown"},
	})

	n := s.FillUntranslated(func(original string) (string, string) {
		if original == "Bye" {
			return "Tschüss", ProvenanceSameEngine
		}
		return "", ""
	})
	assert.Equal(t, 1, n)

	entries := s.Entries()
	assert.Equal(t, "already", entries[0].Translated)
	assert.Equal(t, "Tschüss", entries[1].Translated)
	assert.Empty(t, entries[2].Translated)
}

func TestStoreMixedEngineLastFileWins(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a.ks"}, format.EngineKiriKiri, nil)
	s.AppendFile(FileSnapshot{Name: "b.json"}, format.EngineRPGMaker, nil)
	assert.Equal(t, format.EngineRPGMaker, s.Engine())
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	s.AppendFile(FileSnapshot{Name: "a"}, format.EngineJSON, []Entry{
		{ID: "e1", File: "a", Original: "Hi"},
	})

	snap := s.Snapshot()
	snap.Entries[0].Translated = "mutated"
	assert.Empty(t, s.Entries()[0].Translated)
}

func TestEntryID(t *testing.T) {
	id := EntryID(format.EngineRPGMaker, "Map001.json", "events[2].pages[0].list[5].parameters[0]")
	assert.Equal(t, "rpgmaker:Map001.json:events[2].pages[0].list[5].parameters[0]", id)
}
