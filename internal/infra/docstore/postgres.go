package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"servicebook/internal/infra"
	"servicebook/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS documents (
	path  TEXT PRIMARY KEY,
	value JSONB NOT NULL
)`

const (
	selectSubtreeSQL = `SELECT path, value FROM documents WHERE path = $1 OR starts_with(path, $1 || '/')`
	deleteSubtreeSQL = `DELETE FROM documents WHERE path = $1 OR starts_with(path, $1 || '/')`
	deletePathsSQL   = `DELETE FROM documents WHERE path = ANY($1)`
	upsertLeafSQL    = `INSERT INTO documents (path, value) VALUES ($1, $2)
		ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value`
)

// PostgresStore keeps one row per leaf. A subtree is every row whose path
// starts with the subtree path followed by a slash. Writes run in
// serializable transactions and are retried on serialization failures.
type PostgresStore struct {
	pool        *pgxpool.Pool
	logger      *slog.Logger
	maxAttempts int
}

var _ shared.DocumentStore = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger, maxAttempts int) *PostgresStore {
	return &PostgresStore{pool: pool, logger: logger, maxAttempts: maxAttempts}
}

// EnsureSchema creates the documents table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to create documents table", err)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *PostgresStore) Get(ctx context.Context, path string) (shared.Snapshot, error) {
	segs, err := splitPath(path)
	if err != nil {
		return shared.Snapshot{}, err
	}
	p := strings.Join(segs, "/")
	v, err := s.read(ctx, s.pool, p)
	if err != nil {
		return shared.Snapshot{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read document", err)
	}
	return shared.Snapshot{Path: p, Value: v}, nil
}

func (s *PostgresStore) Update(ctx context.Context, ws shared.WriteSet) error {
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	return s.inTx(ctx, "update", func(tx pgx.Tx) error {
		return s.apply(ctx, tx, writes)
	})
}

func (s *PostgresStore) UpdateIf(ctx context.Context, guard shared.Guard, ws shared.WriteSet) error {
	segs, err := splitPath(guard.Path)
	if err != nil {
		return err
	}
	expect, err := normalize(guard.Expect)
	if err != nil {
		return err
	}
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	return s.inTx(ctx, "update_if", func(tx pgx.Tx) error {
		cur, rerr := s.read(ctx, tx, strings.Join(segs, "/"))
		if rerr != nil {
			return rerr
		}
		if !sameValue(cur, expect) {
			return shared.ErrGuardFailed
		}
		return s.apply(ctx, tx, writes)
	})
}

func (s *PostgresStore) Transaction(ctx context.Context, path string, fn shared.TxnFunc) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	p := strings.Join(segs, "/")
	var committed any
	err = s.inTx(ctx, "transaction", func(tx pgx.Tx) error {
		cur, rerr := s.read(ctx, tx, p)
		if rerr != nil {
			return rerr
		}
		next, abort := fn(deepCopy(cur))
		if abort {
			committed = cur
			return nil
		}
		nv, nerr := normalize(next)
		if nerr != nil {
			return nerr
		}
		committed = nv
		return s.apply(ctx, tx, []write{{segs: segs, path: p, value: nv}})
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

func (s *PostgresStore) NewKey() string {
	return newKey()
}

func (s *PostgresStore) read(ctx context.Context, q querier, path string) (any, error) {
	rows, err := q.Query(ctx, selectSubtreeSQL, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := map[string]any{}
	for rows.Next() {
		var (
			p   string
			raw []byte
		)
		if err := rows.Scan(&p, &raw); err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		leaves[p] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return unflatten(path, leaves), nil
}

func (s *PostgresStore) apply(ctx context.Context, q querier, writes []write) error {
	for _, w := range writes {
		if _, err := q.Exec(ctx, deleteSubtreeSQL, w.path); err != nil {
			return err
		}
		if w.value == nil {
			continue
		}
		if anc := ancestors(w.segs); len(anc) > 0 {
			if _, err := q.Exec(ctx, deletePathsSQL, anc); err != nil {
				return err
			}
		}
		leaves := map[string]any{}
		flatten(w.path, w.value, leaves)
		for lp, lv := range leaves {
			raw, err := json.Marshal(lv)
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, upsertLeafSQL, lp, raw); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *PostgresStore) inTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	err := retry(ctx, op, s.maxAttempts, isRetryableError, func() error {
		tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return err
		}
		if err = fn(tx); err == nil {
			err = tx.Commit(ctx)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn("rollback failed", "op", op, "error", rbErr.Error())
			}
		}
		return err
	})
	if err == nil || errors.Is(err, shared.ErrGuardFailed) || errors.Is(err, shared.ErrInvalidPath) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "document "+op+" failed", err)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
