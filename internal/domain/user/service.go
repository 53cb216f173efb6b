package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/imc/imc-api/internal/pkg/password"
)

// Service handles user administration logic
type Service struct {
	repo Repository
}

// NewService creates user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateStaff creates a staff or admin account. Only admins may call this.
func (s *Service) CreateStaff(ctx context.Context, email, plainPassword, firstName, lastName string, role Role) (*User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns users filtered by role and search term
func (s *Service) List(ctx context.Context, role, search string, page, limit int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.List(ctx, role, search, limit, (page-1)*limit)
}

// Get returns a single user
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetActive enables or disables an account
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
