package services

import (
	"context"
	"testing"

	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/types"
)

type fakeTrainerRepo struct {
	trainers     map[int]types.Trainer
	lastAccount  types.Account
	nextID       int
	createCalled bool
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: map[int]types.Trainer{}, nextID: 1}
}

func (f *fakeTrainerRepo) List(ctx context.Context, offset, limit int) ([]types.Trainer, int, error) {
	items := make([]types.Trainer, 0, len(f.trainers))
	for _, tr := range f.trainers {
		items = append(items, tr)
	}
	return items, len(items), nil
}

func (f *fakeTrainerRepo) Get(ctx context.Context, id int) (types.Trainer, error) {
	return f.trainers[id], nil
}

func (f *fakeTrainerRepo) GetByAccountID(ctx context.Context, accountID int) (types.Trainer, error) {
	for _, tr := range f.trainers {
		if tr.AccountID == accountID {
			return tr, nil
		}
	}
	return types.Trainer{}, nil
}

func (f *fakeTrainerRepo) CreateWithAccount(ctx context.Context, trainer types.Trainer, account types.Account) (types.Trainer, error) {
	f.createCalled = true
	f.lastAccount = account
	trainer.ID = f.nextID
	trainer.AccountID = f.nextID
	f.nextID++
	f.trainers[trainer.ID] = trainer
	return trainer, nil
}

func (f *fakeTrainerRepo) Update(ctx context.Context, trainer types.Trainer) (types.Trainer, error) {
	f.trainers[trainer.ID] = trainer
	return trainer, nil
}

func (f *fakeTrainerRepo) Delete(ctx context.Context, id int) error {
	delete(f.trainers, id)
	return nil
}

func TestTrainerCreateProvisionsAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeTrainerRepo()
	service := NewTrainerService(repo)

	created, err := service.Create(context.Background(), NewTrainerInput{
		Name:      "Priya",
		Email:     "priya@example.com",
		Phone:     "555-0101",
		Specialty: "strength",
		Password:  "priya-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !repo.createCalled {
		t.Fatal("expected CreateWithAccount to be called")
	}
	if created.Name != "Priya" || created.Specialty != "strength" {
		t.Errorf("created = %+v", created)
	}

	account := repo.lastAccount
	if account.Role != string(auth.RoleTrainer) {
		t.Errorf("account role = %q, want trainer", account.Role)
	}
	if !account.Active {
		t.Error("provisioned account must start active")
	}
	if account.Email != "priya@example.com" {
		t.Errorf("account email = %q", account.Email)
	}
	if account.PasswordHash == "priya-pass" || account.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if !auth.VerifyPassword("priya-pass", account.PasswordHash) {
		t.Error("stored hash must verify against the original password")
	}
}
