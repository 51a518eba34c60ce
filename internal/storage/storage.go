package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// Storage owns the database connection and exposes non-transactional
// readers plus Read/Write for per-request transactions.
type Storage struct {
	DB  *sql.DB
	bdb bob.DB

	Transactions transaction.IReader
	Categories   category.IReader
	Users        user.IReader
}

func NewStorage(env *config.Config) (*Storage, error) {
	pgxConfig, err := pgx.ParseConfig(env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres url: %w", err)
	}

	db := stdlib.OpenDB(*pgxConfig)

	// The database container may still be starting; wait for it.
	err = retry.Do(
		func() error { return db.Ping() },
		retry.Attempts(10),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	bdb := bob.NewDB(db)

	return &Storage{
		DB:           db,
		bdb:          bdb,
		Transactions: transaction.NewReader(bdb),
		Categories:   category.NewReader(bdb),
		Users:        user.NewReader(bdb),
	}, nil
}

// Read begins a read-only repeatable-read transaction so a request's count
// and page fetch see the same snapshot.
func (s *Storage) Read(ctx context.Context) (*Reader, error) {
	tx, err := s.bdb.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, err
	}
	return NewReader(tx), nil
}

// Write begins a repeatable-read transaction for a single write action.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
	})
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
