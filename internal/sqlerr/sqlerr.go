// Package sqlerr classifies database driver errors.
//
// Raw pgx/pgconn errors carry a five character SQLSTATE. This package maps
// them onto a small set of Codes (unique violation, not-null violation...)
// so callers can log or branch on the category without knowing Postgres
// error numbers.
package sqlerr
