package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
)

// documentRowID is the primary key of the only row in the document table.
const documentRowID = 1

// PostgresStore keeps the same logical document in a single JSONB row.
// Update runs inside a transaction holding a FOR UPDATE lock on that row in
// addition to the process mutex, so a second process sharing the database
// cannot interleave its read-modify-write with ours.
type PostgresStore struct {
	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgresStore connects using the provided DSN, pings the database and
// ensures the document table and its seed row exist.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	// Use a short-lived context for the initial ping.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS document (
			id   int PRIMARY KEY CHECK (id = 1),
			data jsonb NOT NULL
		)`)
	if err != nil {
		return wrapPgError(err, "create document table failed")
	}

	seed, err := json.Marshal(domain.NewDocument())
	if err != nil {
		return wrapPgError(err, "marshal empty document failed")
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("document").
		Columns("id", "data").
		Values(documentRowID, seed).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build seed document query failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return wrapPgError(err, "seed document failed")
	}
	return nil
}

func (s *PostgresStore) View(ctx context.Context, fn func(doc *domain.Document) error) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("data").
		From("document").
		Where(squirrel.Eq{"id": documentRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build read document query failed: %w", err)
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return wrapPgError(err, "read document failed")
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}
	return fn(doc)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapPgError(err, "begin document update failed")
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("data").
		From("document").
		Where(squirrel.Eq{"id": documentRowID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock document query failed: %w", err)
	}

	var raw []byte
	if err := tx.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return wrapPgError(err, "lock document failed")
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	if err := fn(doc); err != nil {
		// Rollback via defer; the persisted document is untouched.
		return err
	}

	updated, err := json.Marshal(doc)
	if err != nil {
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	query, args, err = psql.Update("document").
		Set("data", updated).
		Where(squirrel.Eq{"id": documentRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build write document query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return wrapPgError(err, "write document failed")
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// wrapPgError surfaces any driver failure as StoreUnavailable, keeping the
// pg error code in the wrapped message when one is present.
func wrapPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsOperatorIntervention(pgErr.Code) {
			msg = "database connection lost"
		}
		err = fmt.Errorf("%s (%s): %w", msg, pgErr.Code, err)
	} else {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
}
