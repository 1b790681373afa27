package tm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"script-translator/internal/format"
)

// PGStore persists translation-memory records in PostgreSQL. The row is
// keyed by (target_lang, source); upserts fully replace the prior value.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureSchema creates the backing table when missing.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS translation_memory (
			target_lang TEXT NOT NULL,
			source      TEXT NOT NULL,
			translated  TEXT NOT NULL,
			engine      TEXT NOT NULL,
			PRIMARY KEY (target_lang, source)
		)`)
	if err != nil {
		return fmt.Errorf("ensure tm schema: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, key string) (Record, bool, error) {
	lang, original, ok := splitKey(key)
	if !ok {
		return Record{}, false, fmt.Errorf("malformed tm key %q", key)
	}
	var rec Record
	var engine string
	err := s.pool.QueryRow(ctx,
		`SELECT source, translated, target_lang, engine
		   FROM translation_memory
		  WHERE target_lang = $1 AND source = $2`,
		lang, original,
	).Scan(&rec.Original, &rec.Translated, &rec.TargetLang, &engine)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("tm get: %w", err)
	}
	rec.Engine = format.Engine(engine)
	return rec, true, nil
}

func (s *PGStore) Put(ctx context.Context, key string, rec Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO translation_memory (target_lang, source, translated, engine)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (target_lang, source)
		 DO UPDATE SET translated = EXCLUDED.translated, engine = EXCLUDED.engine`,
		rec.TargetLang, rec.Original, rec.Translated, string(rec.Engine),
	)
	if err != nil {
		return fmt.Errorf("tm put: %w", err)
	}
	return nil
}

func (s *PGStore) RemoveAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM translation_memory`); err != nil {
		return fmt.Errorf("tm remove all: %w", err)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT source, translated, target_lang, engine FROM translation_memory`)
	if err != nil {
		return nil, fmt.Errorf("tm list: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var engine string
		if err := rows.Scan(&rec.Original, &rec.Translated, &rec.TargetLang, &engine); err != nil {
			return nil, fmt.Errorf("tm scan: %w", err)
		}
		rec.Engine = format.Engine(engine)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// splitKey undoes Key. The language tag never contains a colon, so the
// first colon is the separator even when the original text has colons.
func splitKey(key string) (lang, original string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
