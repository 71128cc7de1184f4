package services

import (
	"context"

	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/types"
)

// AccountRepository defines persistence operations for login accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id int) (types.Account, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (types.Account, error)
	Create(ctx context.Context, account types.Account) (types.Account, error)
	Update(ctx context.Context, account types.Account) (types.Account, error)
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
}

// AccountService encapsulates credential-record use-cases.
type AccountService struct {
	repo AccountRepository
}

func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) GetByID(ctx context.Context, id int) (types.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) GetByEmailAndRole(ctx context.Context, email, role string) (types.Account, error) {
	return s.repo.GetByEmailAndRole(ctx, email, role)
}

// Create hashes the plaintext password and persists a new active account.
func (s *AccountService) Create(ctx context.Context, name, email string, role auth.Role, password string) (types.Account, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.Account{}, err
	}
	return s.repo.Create(ctx, types.Account{
		Name:         name,
		Email:        email,
		Role:         string(role),
		PasswordHash: hashed,
		Active:       true,
	})
}

func (s *AccountService) Deactivate(ctx context.Context, id int) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *AccountService) Activate(ctx context.Context, id int) error {
	return s.repo.SetActive(ctx, id, true)
}
