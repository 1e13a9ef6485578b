package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyName    = errors.New("store name is required")
	ErrEmptySlug    = errors.New("store slug is required")
	ErrInvalidSlug  = errors.New("store slug may contain only lowercase letters, digits, and hyphens")
	ErrInvalidEmail = errors.New("contact email must contain '@'")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Store represents one merchant storefront on the marketplace.
type Store struct {
	ID          int64
	Name        string
	Slug        string
	Phone       string
	Email       string
	Description string
	Active      bool
}

// NewStore builds a store ensuring required invariants. New stores start active.
func NewStore(name, slug string) (*Store, error) {
	store := &Store{Active: true}
	if err := store.Rename(name); err != nil {
		return nil, err
	}
	if err := store.SetSlug(slug); err != nil {
		return nil, err
	}
	return store, nil
}

// Rename trims and validates the display name.
func (s *Store) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Name = name
	return nil
}

// SetSlug validates the URL-safe identifier merchants publish under.
func (s *Store) SetSlug(slug string) error {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	s.Slug = slug
	return nil
}

// UpdateContact applies optional contact fields and validates email if present.
func (s *Store) UpdateContact(phone, email, description string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	s.Phone = strings.TrimSpace(phone)
	s.Email = email
	s.Description = strings.TrimSpace(description)
	return nil
}

// Deactivate hides the storefront without deleting its history.
func (s *Store) Deactivate() {
	s.Active = false
}

// Activate re-opens the storefront.
func (s *Store) Activate() {
	s.Active = true
}

// Validate re-applies core invariants for persistence.
func (s *Store) Validate() error {
	if err := s.Rename(s.Name); err != nil {
		return err
	}
	if err := s.SetSlug(s.Slug); err != nil {
		return err
	}
	return s.UpdateContact(s.Phone, s.Email, s.Description)
}
