package user

import (
	"context"
	"testing"

	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

var (
	adminActor    = domain.Actor{ID: 1, Role: domain.RoleAdmin}
	customerActor = domain.Actor{ID: 42, Role: domain.RoleCustomer}
)

func TestService_GetByID_CustomerReadsSelf(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, PasswordHash: "hash"}, nil)

	service := NewService(mockUsers)

	u, err := service.GetByID(context.Background(), customerActor, 42)
	assert.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
}

func TestService_GetByID_CustomerCannotReadOthers(t *testing.T) {
	service := NewService(new(MockUserRepository))

	_, err := service.GetByID(context.Background(), customerActor, 77)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_GetByID_NotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers)

	_, err := service.GetByID(context.Background(), adminActor, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_CustomerRoleChangeIsDropped(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:    42,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleCustomer,
	}, nil)
	mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCustomer
	})).Return(nil)

	service := NewService(mockUsers)

	adminRole := "admin"
	newName := "Alice Updated"
	u, err := service.Update(context.Background(), customerActor, 42, UpdateUserRequest{
		Name: &newName,
		Role: &adminRole,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	mockUsers.AssertExpectations(t)
}

func TestService_Update_AdminChangesRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:   42,
		Role: domain.RoleCustomer,
	}, nil)
	mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAdmin
	})).Return(nil)

	service := NewService(mockUsers)

	adminRole := "admin"
	_, err := service.Update(context.Background(), adminActor, 42, UpdateUserRequest{
		Role: &adminRole,
	})

	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestService_Update_CustomerCannotUpdateOthers(t *testing.T) {
	service := NewService(new(MockUserRepository))

	newName := "Hacked"
	_, err := service.Update(context.Background(), customerActor, 77, UpdateUserRequest{
		Name: &newName,
	})

	assert.ErrorIs(t, err, ErrForbidden)
}
