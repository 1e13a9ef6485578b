package domain

import (
	"errors"
	"strings"
)

// Status represents the lifecycle state of a product inside a store catalog.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrInvalidStoreRef = errors.New("product store id must be greater than zero")
	ErrInvalidStatus   = errors.New("product status is invalid")
)

// Product groups purchasable variations under one listing of a store.
type Product struct {
	ID          int64
	StoreID     int64
	Name        string
	Description string
	Category    string
	ImageURLs   []string
	Status      Status
}

// NewProduct validates the invariants and builds a new Product.
func NewProduct(storeID int64, name string) (*Product, error) {
	p := &Product{StoreID: storeID, Status: StatusDraft}
	if storeID <= 0 {
		return nil, ErrInvalidStoreRef
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ReplaceImages swaps the current image URL set.
func (p *Product) ReplaceImages(urls []string) {
	p.ImageURLs = append([]string{}, urls...)
}

// UpdateStatus validates known lifecycle values and defaults to draft.
func (p *Product) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusDraft
	}
	switch status {
	case StatusDraft, StatusActive, StatusArchived:
		p.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if p.StoreID <= 0 {
		return ErrInvalidStoreRef
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return p.UpdateStatus(p.Status)
}
