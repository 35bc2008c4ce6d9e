// Package postgres persists repository documents and the search index in
// PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
)

// DBTX is satisfied by a pool, a connection or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Store implements storage.Store on the cms_documents table.
type Store struct {
	db DBTX
}

// New returns a store using db. Call Migrate before first use.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool connects a pool to url and returns a store on it.
func NewWithPool(ctx context.Context, url string) (*Store, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(pool), pool, nil
}

func (s *Store) NextID(ctx context.Context, kind string) (int64, error) {
	query := `
		INSERT INTO cms_sequences (kind, value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET value = cms_sequences.value + 1
		RETURNING value`

	var id int64
	if err := s.db.QueryRow(ctx, query, kind).Scan(&id); err != nil {
		return 0, handlePostgresError("next id", err)
	}
	return id, nil
}

func (s *Store) Put(ctx context.Context, kind string, id int64, data []byte) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return handlePostgresError("begin put", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO cms_documents (kind, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		kind, id, data)
	if err != nil {
		return handlePostgresError("put document", err)
	}

	// explicit IDs must not be handed out again by NextID
	_, err = tx.Exec(ctx, `
		INSERT INTO cms_sequences (kind, value) VALUES ($1, $2)
		ON CONFLICT (kind) DO UPDATE SET value = GREATEST(cms_sequences.value, EXCLUDED.value)`,
		kind, id)
	if err != nil {
		return handlePostgresError("bump sequence", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return handlePostgresError("commit put", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind string, id int64) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM cms_documents WHERE kind = $1 AND id = $2`, kind, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, handlePostgresError("get document", err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, kind string, id int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM cms_documents WHERE kind = $1 AND id = $2`, kind, id); err != nil {
		return handlePostgresError("delete document", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, kind string) ([]storage.Record, error) {
	rows, err := s.db.Query(ctx, `SELECT id, data FROM cms_documents WHERE kind = $1 ORDER BY id`, kind)
	if err != nil {
		return nil, handlePostgresError("list documents", err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, handlePostgresError("scan document", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list documents", err)
	}
	return records, nil
}

// handlePostgresError maps driver errors to readable errors. The original
// error stays wrapped.
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: duplicate entry (%s): %w", operation, pgErr.ConstraintName, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: referenced record not found: %w", operation, err)
		case "23502": // not_null_violation
			return fmt.Errorf("%s: required field %s is missing: %w", operation, pgErr.ColumnName, err)
		case "42P01": // undefined_table
			return fmt.Errorf("%s: table does not exist, run the migration: %w", operation, err)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s): %w", operation, pgErr.Message, pgErr.Code, err)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

var _ storage.Store = (*Store)(nil)
