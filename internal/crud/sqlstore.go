package crud

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Dialect selects placeholder style and schema for a SQL backend.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites "?" placeholders to "$n" for postgres.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLStore keeps documents in a single records table. Listing order is
// insertion order.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
	now     func() time.Time
}

// StoreOption configures a SQLStore.
type StoreOption func(*SQLStore)

// WithStoreLogger sets the store's logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *SQLStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLStore) { s.now = now }
}

// NewSQLStore wraps db and runs migrations.
func NewSQLStore(ctx context.Context, db *sql.DB, dialect Dialect, opts ...StoreOption) (*SQLStore, error) {
	s := &SQLStore{
		db:      db,
		dialect: dialect,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) GetAll(ctx context.Context, collection string) (*Result, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}

	const q = `SELECT id, data, created_at, updated_at FROM records WHERE collection = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(q), collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	items := make([]Document, 0, 16)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	return &Result{Items: items, TotalCount: len(items)}, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}

	const q = `SELECT id, data, created_at, updated_at FROM records WHERE collection = ? AND id = ?`
	doc, err := scanDocument(s.db.QueryRowContext(ctx, s.dialect.rebind(q), collection, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *SQLStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM records ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Create inserts doc. A missing "_id" is generated.
func (s *SQLStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}

	id := doc.ID()
	if id == "" {
		id = uuid.NewString()
	}
	data, err := json.Marshal(doc.fields())
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	ts := formatTime(s.now())

	const q = `INSERT INTO records (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(q), collection, id, string(data), ts, ts); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrConflict, collection, id)
		}
		return nil, fmt.Errorf("create %s/%s: %w", collection, id, err)
	}

	s.logger.Debug("record created", "collection", collection, "id", id)
	return withMeta(doc.fields(), id, ts, ts), nil
}

// Update replaces the fields of the document identified by doc["_id"].
func (s *SQLStore) Update(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	id := doc.ID()
	if id == "" {
		return nil, fmt.Errorf("update %s: %w", collection, ErrNotFound)
	}

	data, err := json.Marshal(doc.fields())
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	const q = `UPDATE records SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(q), string(data), formatTime(s.now()), collection, id)
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	s.logger.Debug("record updated", "collection", collection, "id", id)
	return s.Get(ctx, collection, id)
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	if err := ValidateCollection(collection); err != nil {
		return err
	}

	const q = `DELETE FROM records WHERE collection = ? AND id = ?`
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(q), collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Debug("record deleted", "collection", collection, "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var id, data, created, updated string
	if err := row.Scan(&id, &data, &created, &updated); err != nil {
		return nil, err
	}

	var fields Document
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return withMeta(fields, id, created, updated), nil
}

func withMeta(doc Document, id, created, updated string) Document {
	if doc == nil {
		doc = Document{}
	}
	doc[FieldID] = id
	doc[FieldCreatedDate] = created
	doc[FieldUpdatedDate] = updated
	return doc
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
