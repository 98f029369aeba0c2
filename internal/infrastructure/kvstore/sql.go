package kvstore

import (
	"context"
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"

	qb "github.com/riskibarqy/koralink/internal/platform/querybuilder"
)

const (
	slotTable    = "kv_slots"
	upsertSuffix = "ON CONFLICT (slot_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_slots (
	slot_key   TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type slotRow struct {
	Key       string    `db:"slot_key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLStore keeps every slot as a row of kv_slots. Postgres and sqlite share
// the implementation and differ only in placeholder dialect.
type SQLStore struct {
	db      *sqlx.DB
	dialect qb.Dialect
	now     func() time.Time
}

// OpenPostgres expects the kv_slots table to exist (see cmd/migration).
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := otelsqlx.Open("postgres", normalizePostgresURL(dsn, true),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}
	return newSQLStore(db, qb.Dollar), nil
}

// OpenSQLite creates the database file and schema when missing.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	db, err := otelsqlx.Open("sqlite", sqliteDSN(path),
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "open sqlite %s", path)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "apply sqlite schema")
	}
	return newSQLStore(db, qb.Question), nil
}

func newSQLStore(db *sqlx.DB, dialect qb.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("value").
		Dialect(s.dialect).
		From(slotTable).
		Where(qb.Eq("slot_key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, false, crerr.Wrap(err, "build get slot query")
	}

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if crerr.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "get slot %s", key)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	row := slotRow{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	query, args, err := qb.InsertModel(s.dialect, slotTable, row, upsertSuffix)
	if err != nil {
		return crerr.Wrap(err, "build set slot query")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "set slot %s", key)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(slotTable).
		Dialect(s.dialect).
		Where(qb.Eq("slot_key", key)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete slot query")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete slot %s", key)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
