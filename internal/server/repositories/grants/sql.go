// Package grants persists the group_role edge relation. A group's grant set
// is replaced wholesale (DeleteForGroup then Insert per role) inside one
// transaction; this package only supplies the pieces.
package grants

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) DeleteForGroup(ctx context.Context, group string) error {
	query :=
		`DELETE FROM group_role
		 WHERE group_name = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) Insert(ctx context.Context, group, role string) error {
	query :=
		`INSERT INTO group_role (group_name, role_name)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, group, role); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) RolesForGroup(ctx context.Context, group string) (map[string]struct{}, error) {
	query :=
		`SELECT role_name FROM group_role
		 WHERE group_name = $1
		 `

	return r.roleSet(ctx, query, group)
}

// RolesForUser resolves a user's effective roles in one join: the union of
// every grant of every group the user belongs to.
func (r *SQLRepository) RolesForUser(ctx context.Context, login string) (map[string]struct{}, error) {
	query :=
		`SELECT gr.role_name FROM group_role gr
		 JOIN user_group ug ON ug.group_name = gr.group_name
		 WHERE ug.user_login = $1
		 `

	return r.roleSet(ctx, query, login)
}

func (r *SQLRepository) roleSet(ctx context.Context, query string, arg string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]struct{})
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[role] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
