package services

import (
	"context"

	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/types"
)

// TrainerRepository defines persistence operations for trainer profiles.
type TrainerRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Trainer, int, error)
	Get(ctx context.Context, id int) (types.Trainer, error)
	GetByAccountID(ctx context.Context, accountID int) (types.Trainer, error)
	CreateWithAccount(ctx context.Context, trainer types.Trainer, account types.Account) (types.Trainer, error)
	Update(ctx context.Context, trainer types.Trainer) (types.Trainer, error)
	Delete(ctx context.Context, id int) error
}

// NewTrainerInput carries the fields needed to provision a trainer
// profile together with its login account.
type NewTrainerInput struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
	Password  string
}

// TrainerService encapsulates trainer use-cases.
type TrainerService struct {
	repo TrainerRepository
}

func NewTrainerService(repo TrainerRepository) *TrainerService {
	return &TrainerService{repo: repo}
}

func (s *TrainerService) List(ctx context.Context, offset, limit int) ([]types.Trainer, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *TrainerService) Get(ctx context.Context, id int) (types.Trainer, error) {
	return s.repo.Get(ctx, id)
}

func (s *TrainerService) GetByAccountID(ctx context.Context, accountID int) (types.Trainer, error) {
	return s.repo.GetByAccountID(ctx, accountID)
}

// Create provisions the trainer profile and its trainer-role login
// account, hashing the supplied password.
func (s *TrainerService) Create(ctx context.Context, input NewTrainerInput) (types.Trainer, error) {
	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return types.Trainer{}, err
	}

	trainer := types.Trainer{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Specialty: input.Specialty,
	}
	account := types.Account{
		Name:         input.Name,
		Email:        input.Email,
		Role:         string(auth.RoleTrainer),
		PasswordHash: hashed,
		Active:       true,
	}
	return s.repo.CreateWithAccount(ctx, trainer, account)
}

func (s *TrainerService) Update(ctx context.Context, trainer types.Trainer) (types.Trainer, error) {
	return s.repo.Update(ctx, trainer)
}

func (s *TrainerService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
