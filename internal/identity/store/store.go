// Package store defines the storage contract for platform user records
// created when a registration is approved.
package store

import (
	"context"
	"time"

	id "careerhub/pkg/domain"
)

// User is the platform login record backing an approved registration.
type User struct {
	AccountID id.AccountID `json:"uid"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Approved  bool         `json:"approved"`
	CreatedAt time.Time    `json:"createdAt"`
}

// UserStore persists platform users.
type UserStore interface {
	Create(ctx context.Context, user *User) error

	// FindByAccount returns sentinel.ErrNotFound when absent.
	FindByAccount(ctx context.Context, accountID id.AccountID) (*User, error)
}
