// Package groups persists rows of the "group" relation.
package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/common"
	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Upsert creates the group or, if the name already exists, overwrites its
// description. ON CONFLICT with this shape is accepted by both PostgreSQL
// and SQLite.
func (r *SQLRepository) Upsert(ctx context.Context, group *models.Group) error {
	query :=
		`INSERT INTO "group" (name, description)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET description = excluded.description
		 `

	_, err := r.db.ExecContext(ctx, query, group.Name, group.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	query :=
		`SELECT name, description FROM "group"
		 WHERE name = $1
		 `

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&group.Name, &group.Description)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Group, error) {
	query :=
		`SELECT name, description FROM "group"
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.Name, &group.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) UpdateDescription(ctx context.Context, name, description string) (bool, error) {
	query :=
		`UPDATE "group" SET description = $1
		 WHERE name = $2
		 `

	res, err := r.db.ExecContext(ctx, query, description, name)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
