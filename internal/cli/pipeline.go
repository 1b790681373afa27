package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"script-translator/internal/applier"
	"script-translator/internal/config"
	"script-translator/internal/format"
	"script-translator/internal/parser"
	"script-translator/internal/project"
	"script-translator/internal/tm"
	"script-translator/internal/worker"
)

// openTM connects the translation memory to its persistent store. An
// unreachable database is treated as an empty cache: the run proceeds on
// an in-process store instead of failing.
func openTM(ctx context.Context, cfg *config.Config) (*tm.Memory, func()) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("No DATABASE_URL set, translation memory is in-process only")
		return tm.New(tm.NewMemStore()), func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Translation memory store unreachable, treating cache as empty")
		return tm.New(tm.NewMemStore()), func() {}
	}

	store := tm.NewPGStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("Translation memory schema setup failed, treating cache as empty")
		pool.Close()
		return tm.New(tm.NewMemStore()), func() {}
	}

	memory := tm.New(store)
	if err := memory.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload translation memory")
	}
	return memory, pool.Close
}

// sourceFile is one discovered input before parsing.
type sourceFile struct {
	rel     string
	content string
}

// parsedFile carries a file's detection and extraction output.
type parsedFile struct {
	snap    project.FileSnapshot
	engine  format.Engine
	entries []project.Entry
}

// importDir reads every regular file under root and parses it into a
// project store. Files are parsed concurrently but appended in walk
// order, so entry sequences are deterministic. A file that fails to
// parse contributes zero entries and does not affect the others.
func importDir(ctx context.Context, cfg *config.Config, root string) (*project.Store, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve input root: %w", err)
	}

	var files []sourceFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read file")
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		files = append(files, sourceFile{rel: filepath.ToSlash(rel), content: string(raw)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}

	pool := worker.NewPool(cfg.WorkerCount, func(ctx context.Context, f sourceFile) (parsedFile, error) {
		p, engine := parser.Select(f.rel, f.content)
		entries, err := p.Parse(f.rel, f.content)
		if err != nil {
			// Parse failure is scoped to this file: snapshot kept,
			// zero entries.
			log.Error().Err(err).Str("file", f.rel).Msg("Parse failed, file contributes no entries")
			entries = nil
		}
		return parsedFile{
			snap:    project.FileSnapshot{Name: f.rel, Content: f.content},
			engine:  engine,
			entries: entries,
		}, nil
	})

	store := project.NewStore(root, filepath.Base(root))
	for _, res := range pool.Run(ctx, files) {
		store.AppendFile(res.Value.snap, res.Value.engine, res.Value.entries)
	}

	log.Info().
		Int("files", len(files)).
		Int("entries", len(store.Entries())).
		Str("engine", string(store.Engine())).
		Msg("Import complete")
	return store, nil
}

// writeOutputs reinjects the current translations of every file and
// writes the result under outDir, preserving relative paths.
func writeOutputs(store *project.Store, outDir string) error {
	engine := store.Engine()
	for _, snap := range store.Files() {
		entries := store.EntriesForFile(snap.Name)
		final, results := applier.Apply(engine, snap.Content, entries)

		applied, missed := 0, 0
		for _, r := range results {
			switch r.Status {
			case applier.StatusApplied:
				applied++
			case applier.StatusPathMiss, applier.StatusNotString:
				missed++
				log.Debug().Str("entry", r.EntryID).Str("status", r.Status.String()).Msg("Entry not applied")
			}
		}

		dest := filepath.Join(outDir, filepath.FromSlash(snap.Name))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(dest, []byte(final), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", snap.Name, err)
		}
		log.Info().Str("file", snap.Name).Int("applied", applied).Int("skipped", missed).Msg("Wrote output")
	}
	return nil
}
