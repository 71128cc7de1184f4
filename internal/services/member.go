package services

import (
	"context"

	"github.com/beastgym/apiserver/types"
)

// MemberRepository defines persistence operations for members.
type MemberRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Member, int, error)
	Get(ctx context.Context, id int) (types.Member, error)
	Create(ctx context.Context, member types.Member) (types.Member, error)
	Update(ctx context.Context, member types.Member) (types.Member, error)
	Delete(ctx context.Context, id int) error
}

// MemberService encapsulates member use-cases.
type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) List(ctx context.Context, offset, limit int) ([]types.Member, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *MemberService) Get(ctx context.Context, id int) (types.Member, error) {
	return s.repo.Get(ctx, id)
}

func (s *MemberService) Create(ctx context.Context, member types.Member) (types.Member, error) {
	return s.repo.Create(ctx, member)
}

func (s *MemberService) Update(ctx context.Context, member types.Member) (types.Member, error) {
	return s.repo.Update(ctx, member)
}

func (s *MemberService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
