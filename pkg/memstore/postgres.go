package memstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

// PostgresStore persists records in the profile_memories table with a
// companion profile_memory_index table for kind-scoped key listing.
// Both tables are maintained in the same transaction so the index can
// never drift from the records.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, upsert(ctx, tx, namespace, key, value)
	})
	return err
}

func (p *PostgresStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := checkKey(namespace, key); err != nil {
		return nil, err
	}

	value, err := repository.QueryOne(ctx, p.db,
		`SELECT value FROM profile_memories WHERE namespace = $1 AND key = $2`,
		[]any{namespace, key},
		scanValue,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (p *PostgresStore) Delete(ctx context.Context, namespace, key string) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM profile_memory_index WHERE namespace = $1 AND key = $2`,
			namespace, key,
		); err != nil {
			return struct{}{}, err
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM profile_memories WHERE namespace = $1 AND key = $2`,
			namespace, key,
		)
		return struct{}{}, err
	})
	return err
}

func (p *PostgresStore) ListKeys(ctx context.Context, namespace string, kind Kind) ([]string, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: namespace is required", ErrInvalidArgument)
	}

	return repository.QueryMany(ctx, p.db,
		`SELECT key FROM profile_memory_index
		  WHERE namespace = $1 AND kind = $2
		  ORDER BY key`,
		[]any{namespace, string(kind)},
		scanKey,
	)
}

func (p *PostgresStore) Update(ctx context.Context, namespace, key string, fn UpdateFunc) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		var current []byte
		exists := true

		row := tx.QueryRowContext(ctx,
			`SELECT value FROM profile_memories
			  WHERE namespace = $1 AND key = $2
			  FOR UPDATE`,
			namespace, key,
		)
		if err := row.Scan(&current); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return struct{}{}, err
			}
			current, exists = nil, false
		}

		next, err := fn(current, exists)
		if err != nil {
			return struct{}{}, err
		}

		return struct{}{}, upsert(ctx, tx, namespace, key, next)
	})
	return err
}

func upsert(ctx context.Context, tx *sql.Tx, namespace, key string, value []byte) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profile_memories (namespace, key, value, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 ON CONFLICT (namespace, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, value,
	); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO profile_memory_index (namespace, key, kind, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key)
		 DO UPDATE SET updated_at = now()`,
		namespace, key, string(KindOfKey(key)),
	)
	return err
}

func scanValue(s repository.Scanner) ([]byte, error) {
	var value []byte
	if err := s.Scan(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func scanKey(s repository.Scanner) (string, error) {
	var key string
	if err := s.Scan(&key); err != nil {
		return "", err
	}
	return key, nil
}
