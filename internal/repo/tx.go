package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles transaction-scoped repositories for a TxRunner callback.
// Every repo in the bundle shares one pgx.Tx, so the callback's reads and
// writes commit or roll back together.
type Repos struct {
	Invitations  InvitationRepo
	Aliases      AliasRepo
	Availability AvailabilityRepo
}

// TxRunner executes a function inside a single database transaction.
// The rename orchestration runs through this so the capacity check, reclaim
// delete, alias insert, and slug update cannot leave partial state behind.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r Repos) error) error
}

type pgTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs a TxRunner on the given pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgTxRunner{pool: pool}
}

// InTx begins a transaction, hands tx-scoped repos to fn, and commits when
// fn returns nil. Any error (including a panic propagating out of fn) rolls
// everything back.
func (t *pgTxRunner) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: begin: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	repos := Repos{
		Invitations:  NewInvitationRepo(tx),
		Aliases:      NewAliasRepo(tx),
		Availability: NewAvailabilityRepo(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: commit: %w", err)
	}
	return nil
}
