package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// Postgres persists users in the users table (db/schema.sql).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, user *User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (account_id, name, email, role, approved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.AccountID.String(), user.Name, user.Email, user.Role, user.Approved, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Postgres) FindByAccount(ctx context.Context, accountID id.AccountID) (*User, error) {
	var (
		user    User
		account string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT account_id, name, email, role, approved, created_at
		   FROM users WHERE account_id = $1`,
		accountID.String(),
	).Scan(&account, &user.Name, &user.Email, &user.Role, &user.Approved, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.AccountID = id.AccountID(account)
	return &user, nil
}
