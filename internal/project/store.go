package project

import (
	"github.com/rs/zerolog/log"

	"script-translator/internal/format"
)

// Store owns a Project and serializes every mutation through a single
// writer goroutine. Manual edits and batch-translation writes enter the
// same ordered command queue, so conflicting writes compose under a
// simple rule: the last command to arrive wins per entry id.
type Store struct {
	cmds chan func(*Project)
	done chan struct{}
}

// NewStore creates a store around an empty project and starts its writer.
func NewStore(id, name string) *Store {
	s := &Store{
		cmds: make(chan func(*Project), 64),
		done: make(chan struct{}),
	}
	p := &Project{ID: id, Name: name}
	go func() {
		defer close(s.done)
		for cmd := range s.cmds {
			cmd(p)
		}
	}()
	return s
}

// Close stops the writer goroutine. Pending commands are drained first.
func (s *Store) Close() {
	close(s.cmds)
	<-s.done
}

// exec runs fn on the writer goroutine and waits for it to complete.
func (s *Store) exec(fn func(*Project)) {
	wait := make(chan struct{})
	s.cmds <- func(p *Project) {
		fn(p)
		close(wait)
	}
	<-wait
}

// AppendFile records a file snapshot and its extracted entries, in order.
// The project engine tag is overwritten by whichever file is appended
// last; a mixed-format import therefore misroutes the applier for
// earlier files. Known flaw, surfaced as a warning rather than resolved.
func (s *Store) AppendFile(snap FileSnapshot, engine format.Engine, entries []Entry) {
	s.exec(func(p *Project) {
		if p.Engine != "" && p.Engine != engine {
			log.Warn().
				Str("file", snap.Name).
				Str("project_engine", string(p.Engine)).
				Str("file_engine", string(engine)).
				Msg("Mixed-format import overwrites project engine tag")
		}
		p.Engine = engine
		p.Files = append(p.Files, snap)
		p.Entries = append(p.Entries, entries...)
	})
}

// SetTranslation updates one entry by id and propagates the translation
// to every entry in the project sharing the same original text.
// Duplicate strings share one translation by design. Returns the number
// of entries updated (0 when the id is unknown).
func (s *Store) SetTranslation(id, translated, provenance string) int {
	var n int
	s.exec(func(p *Project) {
		for i := range p.Entries {
			if p.Entries[i].ID == id {
				n = propagate(p, p.Entries[i].Original, translated, provenance)
				return
			}
		}
	})
	return n
}

// Propagate sets the translation on every entry whose original text
// equals original, across all files. Returns the number updated.
func (s *Store) Propagate(original, translated, provenance string) int {
	var n int
	s.exec(func(p *Project) {
		n = propagate(p, original, translated, provenance)
	})
	return n
}

func propagate(p *Project, original, translated, provenance string) int {
	n := 0
	for i := range p.Entries {
		if p.Entries[i].Original == original {
			p.Entries[i].Translated = translated
			p.Entries[i].Provenance = provenance
			n++
		}
	}
	return n
}

// FillUntranslated offers every entry with an empty translation to fn;
// a non-empty return fills the entry. Used by the translation memory
// read path on project load and on target-language change.
func (s *Store) FillUntranslated(fn func(original string) (translated, provenance string)) int {
	var n int
	s.exec(func(p *Project) {
		for i := range p.Entries {
			if p.Entries[i].Translated != "" {
				continue
			}
			if t, prov := fn(p.Entries[i].Original); t != "" {
				p.Entries[i].Translated = t
				p.Entries[i].Provenance = prov
				n++
			}
		}
	})
	return n
}

// Engine returns the current project engine tag.
func (s *Store) Engine() format.Engine {
	var e format.Engine
	s.exec(func(p *Project) { e = p.Engine })
	return e
}

// Entries returns a copy of all entries in import order.
func (s *Store) Entries() []Entry {
	var out []Entry
	s.exec(func(p *Project) {
		out = append([]Entry(nil), p.Entries...)
	})
	return out
}

// EntriesForFile returns a copy of the entries extracted from one file.
func (s *Store) EntriesForFile(name string) []Entry {
	var out []Entry
	s.exec(func(p *Project) {
		for _, e := range p.Entries {
			if e.File == name {
				out = append(out, e)
			}
		}
	})
	return out
}

// Files returns a copy of the immutable file snapshots in import order.
func (s *Store) Files() []FileSnapshot {
	var out []FileSnapshot
	s.exec(func(p *Project) {
		out = append([]FileSnapshot(nil), p.Files...)
	})
	return out
}

// Snapshot returns a deep copy of the whole project.
func (s *Store) Snapshot() Project {
	var out Project
	s.exec(func(p *Project) {
		out = *p
		out.Entries = append([]Entry(nil), p.Entries...)
		out.Files = append([]FileSnapshot(nil), p.Files...)
	})
	return out
}
