package services

import (
	"context"

	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// MemberService handles family-member operations.
type MemberService struct {
	store store.Store
}

func NewMemberService(s store.Store) *MemberService { return &MemberService{store: s} }

func (s *MemberService) CreateMember(ctx context.Context, m *model.Member) (*model.Member, error) {
	return s.store.Members().Create(ctx, m)
}

func (s *MemberService) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	return s.store.Members().GetByID(ctx, memberID)
}

func (s *MemberService) ListMembers(ctx context.Context) ([]*model.Member, error) {
	return s.store.Members().List(ctx)
}

func (s *MemberService) UpdateMember(ctx context.Context, m *model.Member) (*model.Member, error) {
	return s.store.Members().Update(ctx, m)
}

func (s *MemberService) DeleteMember(ctx context.Context, memberID string) error {
	return s.store.Members().Delete(ctx, memberID)
}
