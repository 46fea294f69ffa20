// Package users persists rows of the "user" relation. Queries use $N
// placeholders and dialect-neutral SQL so the same repository runs on
// PostgreSQL and SQLite.
package users

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

func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO "user" (login, password, name, email)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.Login, user.PasswordHash, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query :=
		`SELECT login, password, name, email FROM "user"
		 WHERE login = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, login).
		Scan(&user.Login, &user.PasswordHash, &user.Name, &user.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT login, password, name, email FROM "user"
		 ORDER BY login
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.Login, &user.PasswordHash, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) UpdateProfile(ctx context.Context, login, name, email string) (bool, error) {
	query :=
		`UPDATE "user" SET name = $1, email = $2
		 WHERE login = $3
		 `

	res, err := r.db.ExecContext(ctx, query, name, email, login)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, login, passwordHash string) (bool, error) {
	query :=
		`UPDATE "user" SET password = $1
		 WHERE login = $2
		 `

	res, err := r.db.ExecContext(ctx, query, passwordHash, login)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
