// Package repository holds the SQL behind every persistence operation.
//
// Repositories take a Querier so tests can swap the pool for pgxmock and
// callers never see pgx types beyond errors.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
