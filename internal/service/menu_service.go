package service

import (
	"context"
	"fmt"

	"micarta/internal/domain"
	"micarta/internal/menu"
)

// MenuService serves the adapted menu. A nil repository yields an empty menu,
// which lets the service run without a catalog database.
type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) Menu(ctx context.Context) (domain.MenuPayload, error) {
	if s.repo == nil {
		return domain.MenuPayload{}, nil
	}
	payload, err := s.repo.FetchMenu(ctx)
	if err != nil {
		return domain.MenuPayload{}, fmt.Errorf("fetch menu: %w", err)
	}
	return menu.Adapt(payload), nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
