package services

import (
	"context"

	"github.com/beastgym/apiserver/types"
)

// WellnessRepository defines persistence operations for wellness plans.
type WellnessRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.WellnessPlan, int, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]types.WellnessPlan, error)
	Get(ctx context.Context, id int) (types.WellnessPlan, error)
	Create(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error)
	Update(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error)
	Delete(ctx context.Context, id int) error
}

// WellnessService encapsulates wellness-plan use-cases.
type WellnessService struct {
	repo WellnessRepository
}

func NewWellnessService(repo WellnessRepository) *WellnessService {
	return &WellnessService{repo: repo}
}

func (s *WellnessService) List(ctx context.Context, offset, limit int) ([]types.WellnessPlan, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *WellnessService) ListByTrainer(ctx context.Context, trainerID int) ([]types.WellnessPlan, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *WellnessService) Get(ctx context.Context, id int) (types.WellnessPlan, error) {
	return s.repo.Get(ctx, id)
}

func (s *WellnessService) Create(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error) {
	return s.repo.Create(ctx, plan)
}

func (s *WellnessService) Update(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error) {
	return s.repo.Update(ctx, plan)
}

func (s *WellnessService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
