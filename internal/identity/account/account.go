// Package account issues platform login accounts. The in-memory issuer is
// the built-in implementation; deployments backed by an external identity
// provider supply their own Issuer.
package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"

	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// ErrAccountExists: an account for the email already exists.
var ErrAccountExists = fmt.Errorf("account already exists: %w", sentinel.ErrConflict)

// ErrBadCredentials: unknown email or wrong password.
var ErrBadCredentials = fmt.Errorf("bad credentials: %w", sentinel.ErrInvalidState)

// Account is an issued login account.
type Account struct {
	ID          id.AccountID
	Email       string
	DisplayName string
}

// Issuer creates and authenticates accounts.
type Issuer interface {
	// CreateAccount issues an account for the email, or ErrAccountExists.
	CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error)

	// Authenticate returns the account for valid credentials, or
	// ErrBadCredentials.
	Authenticate(ctx context.Context, email, password string) (*Account, error)
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()"

// GenerateTempPassword draws length characters from the password alphabet
// using crypto/rand.
func GenerateTempPassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

type storedAccount struct {
	account      Account
	salt         []byte
	passwordHash []byte
}

// InMemory keeps accounts keyed by email, with salted password hashes. The
// email uniqueness check and the insert happen under one lock.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[string]*storedAccount
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[string]*storedAccount)}
}

func (s *InMemory) CreateAccount(_ context.Context, email, password, displayName string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, ErrAccountExists
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	account := Account{
		ID:          id.AccountID(uuid.NewString()),
		Email:       email,
		DisplayName: displayName,
	}
	s.accounts[email] = &storedAccount{
		account:      account,
		salt:         salt,
		passwordHash: hashPassword(salt, password),
	}
	return &account, nil
}

func (s *InMemory) Authenticate(_ context.Context, email, password string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.accounts[email]
	if !ok {
		return nil, ErrBadCredentials
	}
	if subtle.ConstantTimeCompare(stored.passwordHash, hashPassword(stored.salt, password)) != 1 {
		return nil, ErrBadCredentials
	}
	cp := stored.account
	return &cp, nil
}

func hashPassword(salt []byte, password string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(password))
	return h.Sum(nil)
}
