package store

import (
	"context"
	"fmt"
	"strings"
)

// Import loads a newline-delimited JSON snapshot, one {"key": ..., "value": ...}
// object per line, and upserts every entry. Lines without a key are skipped.
func (s *Store) Import(ctx context.Context, path string) (int, error) {
	query := fmt.Sprintf(`
		SELECT
			key,
			CAST(value AS VARCHAR) AS value_json
		FROM read_json('%s',
			format = 'newline_delimited',
			columns = {key: 'VARCHAR', value: 'JSON'}
		)
		WHERE key IS NOT NULL AND value IS NOT NULL
	`, quoteLiteral(path))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	type entry struct{ key, value string }
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.key, &e.value); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to read snapshot rows: %w", err)
	}
	rows.Close()

	err = s.withTx(ctx, func(q querier) error {
		for _, e := range entries {
			if err := setRaw(ctx, q, e.key, e.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import snapshot: %w", err)
	}

	for _, e := range entries {
		if !knownKey(e.key) {
			s.log.Warn("imported unrecognized key", "key", e.key)
		}
	}
	s.log.Info("snapshot imported", "path", path, "entries", len(entries))
	return len(entries), nil
}

// Export writes every entry to path in the format Import reads.
func (s *Store) Export(ctx context.Context, path string) error {
	query := fmt.Sprintf(`
		COPY (
			SELECT key, CAST(value AS JSON) AS value
			FROM kv
			ORDER BY key
		) TO '%s' (FORMAT JSON)
	`, quoteLiteral(path))

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to export snapshot %s: %w", path, err)
	}
	s.log.Info("snapshot exported", "path", path)
	return nil
}

func knownKey(key string) bool {
	switch key {
	case KeyProfile, KeyMoods, KeyProgress:
		return true
	}
	return false
}

func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
