package mapper

import (
	"github.com/shopgrid/marketplace-api/internal/domains/stores/domain"
)

// Store is the transport representation of a merchant storefront.
type Store struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// MutationStore captures inbound create/update payloads. The slug is only
// honored on create; updates keep the published slug stable.
type MutationStore struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// ToDomainStore builds a domain store from a create payload.
func ToDomainStore(payload MutationStore) (*domain.Store, error) {
	store, err := domain.NewStore(payload.Name, payload.Slug)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateContact(payload.Phone, payload.Email, payload.Description); err != nil {
		return nil, err
	}
	return store, nil
}

// ToDomainStoreUpdate builds the update shape; slug and active state are
// resolved from the stored row by the application service.
func ToDomainStoreUpdate(id int64, payload MutationStore) (*domain.Store, error) {
	store := &domain.Store{ID: id}
	if err := store.Rename(payload.Name); err != nil {
		return nil, err
	}
	if err := store.UpdateContact(payload.Phone, payload.Email, payload.Description); err != nil {
		return nil, err
	}
	return store, nil
}

// FromDomainStore converts a domain store to the transport shape.
func FromDomainStore(store *domain.Store) Store {
	if store == nil {
		return Store{}
	}
	return Store{
		ID:          store.ID,
		Name:        store.Name,
		Slug:        store.Slug,
		Phone:       store.Phone,
		Email:       store.Email,
		Description: store.Description,
		Active:      store.Active,
	}
}

// FromDomainStoreList maps a slice of domain stores to transport stores.
func FromDomainStoreList(list []*domain.Store) []Store {
	result := make([]Store, 0, len(list))
	for _, store := range list {
		result = append(result, FromDomainStore(store))
	}
	return result
}
