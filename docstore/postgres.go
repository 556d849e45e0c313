package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore keeps every document in a single documents table with
// the body as jsonb. Transactions map onto serializable SQL
// transactions, which gives RunTransaction its all-or-nothing and
// conflict-abort semantics.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, path string) (*Document, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return getDocument(ctx, s.db, path)
}

func (s *PostgresStore) Set(ctx context.Context, path string, value interface{}, merge bool) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return setDocument(ctx, s.db, path, value, merge)
}

func (s *PostgresStore) Delete(ctx context.Context, path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return deleteDocument(ctx, s.db, path)
}

func (s *PostgresStore) Query(ctx context.Context, collectionPath string) ([]*Document, error) {
	if collectionPath == "" {
		return nil, ErrInvalidPath
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, data FROM documents WHERE collection = $1 ORDER BY path ASC`, collectionPath)
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", collectionPath, err)
	}
	defer rows.Close()

	docs := make([]*Document, 0)
	for rows.Next() {
		doc := &Document{}
		if err := rows.Scan(&doc.Path, (*[]byte)(&doc.Data)); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *PostgresStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = sqlTx.Rollback()
		}
	}()

	tx := &postgresTx{ctx: ctx, tx: sqlTx}
	if txErr = fn(tx); txErr != nil {
		return mapConflict(txErr)
	}
	if txErr = sqlTx.Commit(); txErr != nil {
		return mapConflict(fmt.Errorf("failed to commit transaction: %w", txErr))
	}
	return nil
}

// postgresTx executes reads and writes inside one serializable SQL
// transaction, enforcing the reads-before-writes discipline.
type postgresTx struct {
	ctx   context.Context
	tx    *sql.Tx
	wrote bool
}

func (t *postgresTx) Get(path string) (*Document, error) {
	if t.wrote {
		return nil, ErrReadAfterWrite
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return getDocument(t.ctx, t.tx, path)
}

func (t *postgresTx) Set(path string, value interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	t.wrote = true
	return setDocument(t.ctx, t.tx, path, value, false)
}

func (t *postgresTx) Delete(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	t.wrote = true
	return deleteDocument(t.ctx, t.tx, path)
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getDocument(ctx context.Context, exec sqlExecutor, path string) (*Document, error) {
	doc := &Document{Path: path}
	err := exec.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE path = $1`, path).Scan((*[]byte)(&doc.Data))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func setDocument(ctx context.Context, exec sqlExecutor, path string, value interface{}, merge bool) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", path, err)
	}
	query := `
		INSERT INTO documents (path, collection, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
	if merge {
		query = `
		INSERT INTO documents (path, collection, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (path) DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = NOW()`
	}
	if _, err := exec.ExecContext(ctx, query, path, CollectionOf(path), data); err != nil {
		return fmt.Errorf("set document %s: %w", path, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, exec sqlExecutor, path string) error {
	// Deleting an absent document is not an error.
	if _, err := exec.ExecContext(ctx, `DELETE FROM documents WHERE path = $1`, path); err != nil {
		return fmt.Errorf("delete document %s: %w", path, err)
	}
	return nil
}

// mapConflict translates serialization and deadlock aborts into
// ErrTransactionConflict so callers can recognize retryable failures.
func mapConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%w: %v", ErrTransactionConflict, err)
		}
	}
	return err
}
