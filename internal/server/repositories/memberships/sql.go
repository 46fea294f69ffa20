// Package memberships persists the user_group edge relation. Like grants, a
// user's membership set is replaced wholesale inside one transaction by the
// service layer.
package memberships

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) DeleteForUser(ctx context.Context, login string) error {
	query :=
		`DELETE FROM user_group
		 WHERE user_login = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, login); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) Insert(ctx context.Context, login, group string) error {
	query :=
		`INSERT INTO user_group (user_login, group_name)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, login, group); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) GroupsForUser(ctx context.Context, login string) ([]*models.Group, error) {
	query :=
		`SELECT g.name, g.description FROM "group" g
		 JOIN user_group ug ON ug.group_name = g.name
		 WHERE ug.user_login = $1
		 ORDER BY g.name
		 `

	rows, err := r.db.QueryContext(ctx, query, login)
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
