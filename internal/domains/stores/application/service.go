package application

import (
	"context"
	"errors"

	"github.com/shopgrid/marketplace-api/internal/domains/stores/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/stores/ports"
)

// Service orchestrates merchant store use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if err := store.Validate(); err != nil {
		return nil, mapError(err)
	}
	if existing, err := s.repo.GetBySlug(ctx, store.Slug); err == nil && existing != nil {
		return nil, ports.ErrSlugTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, store)
}

func (s *Service) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) UpdateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	existing, err := s.repo.GetByID(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	// The slug is the public identity of the storefront; edits keep it stable.
	// Activation state only changes through its dedicated operations.
	store.Slug = existing.Slug
	store.Active = existing.Active
	if err := store.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, store)
}

func (s *Service) DeactivateStore(ctx context.Context, id int64) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	store.Deactivate()
	return s.repo.Save(ctx, store)
}

func (s *Service) ListStores(ctx context.Context) ([]*domain.Store, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
