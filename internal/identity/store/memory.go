package store

import (
	"context"
	"sync"

	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// InMemory keeps users in a map guarded by a mutex.
type InMemory struct {
	mu    sync.RWMutex
	users map[id.AccountID]*User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.AccountID]*User)}
}

func (s *InMemory) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *user
	s.users[user.AccountID] = &cp
	return nil
}

func (s *InMemory) FindByAccount(_ context.Context, accountID id.AccountID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *user
	return &cp, nil
}
