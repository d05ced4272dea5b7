package services

import (
	"context"

	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// ShoppingService handles shopping-list operations.
type ShoppingService struct {
	store store.Store
}

func NewShoppingService(s store.Store) *ShoppingService { return &ShoppingService{store: s} }

func (s *ShoppingService) CreateItem(ctx context.Context, it *model.ShoppingItem) (*model.ShoppingItem, error) {
	it.Completed = false
	return s.store.ShoppingItems().Create(ctx, it)
}

func (s *ShoppingService) ListItems(ctx context.Context) ([]*model.ShoppingItem, error) {
	return s.store.ShoppingItems().List(ctx)
}

func (s *ShoppingService) ToggleItem(ctx context.Context, itemID string) (*model.ShoppingItem, error) {
	return s.store.ShoppingItems().ToggleCompleted(ctx, itemID)
}

func (s *ShoppingService) DeleteItem(ctx context.Context, itemID string) error {
	return s.store.ShoppingItems().Delete(ctx, itemID)
}
