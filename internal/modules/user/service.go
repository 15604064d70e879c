package user

import (
	"context"
	"errors"
	"strings"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	u.PasswordHash = ""
	return u, nil
}

// Update lets customers edit their own profile and admins edit anyone.
// Role changes are admin-only; a customer-supplied role is dropped.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Email != nil {
		existing.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil && actor.IsAdmin() {
		existing.Role = domain.UserRole(*req.Role)
	}

	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""
	return updated, nil
}
