package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/villains-api/internal/model"
	"github.com/deppfellow/villains-api/internal/sqlerr"
)

var villainColumns = strings.Join(model.VillainFields, ", ")

var (
	listVillainsSQL = `SELECT ` + villainColumns + `
FROM villains
WHERE deleted_at IS NULL
ORDER BY id`

	getVillainBySlugSQL = `SELECT ` + villainColumns + `
FROM villains
WHERE slug = $1 AND deleted_at IS NULL
LIMIT 1`

	insertVillainSQL = `INSERT INTO villains (name, movie, slug)
VALUES ($1, $2, $3)
RETURNING id, name, movie, slug, created_at, updated_at, deleted_at`
)

// VillainRepository reads and writes the villains table.
type VillainRepository struct {
	db Querier
}

func NewVillainRepository(db Querier) *VillainRepository {
	return &VillainRepository{db: db}
}

// FindAll returns every live villain in insertion order. The result is
// never nil.
func (r *VillainRepository) FindAll(ctx context.Context) ([]model.Villain, error) {
	rows, err := r.db.Query(ctx, listVillainsSQL)
	if err != nil {
		return nil, fmt.Errorf("list villains: %w", sqlerr.Convert(err))
	}
	defer rows.Close()

	villains := make([]model.Villain, 0)
	for rows.Next() {
		var v model.Villain
		if err := rows.Scan(&v.Name, &v.Movie, &v.Slug); err != nil {
			return nil, fmt.Errorf("scan villain: %w", sqlerr.Convert(err))
		}
		villains = append(villains, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list villains: %w", sqlerr.Convert(err))
	}

	return villains, nil
}

// FindBySlug looks up one villain. A missing row reports found=false with
// a nil error.
func (r *VillainRepository) FindBySlug(ctx context.Context, slug string) (model.Villain, bool, error) {
	var v model.Villain
	err := r.db.QueryRow(ctx, getVillainBySlugSQL, slug).Scan(&v.Name, &v.Movie, &v.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Villain{}, false, nil
	}
	if err != nil {
		return model.Villain{}, false, fmt.Errorf("get villain %q: %w", slug, sqlerr.Convert(err))
	}
	return v, true, nil
}

// Create inserts name, movie and slug and returns the stored row.
func (r *VillainRepository) Create(ctx context.Context, v model.Villain) (*model.VillainRecord, error) {
	rec := &model.VillainRecord{}
	err := r.db.QueryRow(ctx, insertVillainSQL, v.Name, v.Movie, v.Slug).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Movie,
		&rec.Slug,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert villain %q: %w", v.Slug, sqlerr.Convert(err))
	}
	return rec, nil
}
