package crud

import (
	"context"
	"fmt"
)

// migrate runs the schema statements for the store's dialect, in order.
func (s *SQLStore) migrate(ctx context.Context) error {
	migrations := []string{migrationCreateRecordsSQLite, migrationIndexRecords}
	if s.dialect == Postgres {
		migrations = []string{migrationCreateRecordsPostgres, migrationIndexRecords}
	}

	for i, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateRecordsSQLite = `
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (collection, id)
);
`

const migrationCreateRecordsPostgres = `
CREATE TABLE IF NOT EXISTS records (
    seq BIGSERIAL PRIMARY KEY,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (collection, id)
);
`

const migrationIndexRecords = `
CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection, seq);
`
