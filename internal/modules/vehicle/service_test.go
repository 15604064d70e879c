package vehicle

import (
	"context"
	"testing"

	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil && v != nil {
		v.ID = 10
	}
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ExistsByRegistration(ctx context.Context, registration string) (bool, error) {
	args := m.Called(ctx, registration)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("ExistsByRegistration", mock.Anything, "KZ-001-AA").Return(false, nil)
	mockVehicles.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockVehicles)

	v, err := service.Create(context.Background(), CreateVehicleRequest{
		Name:               "Toyota Corolla",
		Type:               "car",
		RegistrationNumber: "KZ-001-AA",
		DailyRentPrice:     50.00,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.VehicleAvailable, v.AvailabilityStatus)
	assert.Equal(t, int64(10), v.ID)
}

func TestService_Create_NonPositivePrice(t *testing.T) {
	service := NewService(new(MockVehicleRepository))

	_, err := service.Create(context.Background(), CreateVehicleRequest{
		Name:               "Free Car",
		Type:               "car",
		RegistrationNumber: "KZ-000-XX",
		DailyRentPrice:     0,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_UnknownType(t *testing.T) {
	service := NewService(new(MockVehicleRepository))

	_, err := service.Create(context.Background(), CreateVehicleRequest{
		Name:               "Boat",
		Type:               "boat",
		RegistrationNumber: "KZ-000-XX",
		DailyRentPrice:     10,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_DuplicateRegistration(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("ExistsByRegistration", mock.Anything, "KZ-001-AA").Return(true, nil)

	service := NewService(mockVehicles)

	_, err := service.Create(context.Background(), CreateVehicleRequest{
		Name:               "Toyota Corolla",
		Type:               "car",
		RegistrationNumber: "KZ-001-AA",
		DailyRentPrice:     50.00,
	})

	assert.ErrorIs(t, err, ErrRegistrationTaken)
}

func TestService_GetByID_NotFound(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockVehicles)

	_, err := service.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_PartialFields(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	existing := &domain.Vehicle{
		ID:                 10,
		Name:               "Toyota Corolla",
		Type:               domain.VehicleCar,
		RegistrationNumber: "KZ-001-AA",
		DailyRentPrice:     50.00,
		AvailabilityStatus: domain.VehicleBooked,
	}
	mockVehicles.On("GetByID", mock.Anything, int64(10)).Return(existing, nil)
	mockVehicles.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.DailyRentPrice == 60.00 && v.Name == "Toyota Corolla"
	})).Return(nil)

	service := NewService(mockVehicles)

	newPrice := 60.00
	_, err := service.Update(context.Background(), 10, UpdateVehicleRequest{
		DailyRentPrice: &newPrice,
	})

	assert.NoError(t, err)
	mockVehicles.AssertExpectations(t)
}

func TestService_Update_RejectsNonPositivePrice(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vehicle{ID: 10, DailyRentPrice: 50.00}, nil)

	service := NewService(mockVehicles)

	badPrice := -5.00
	_, err := service.Update(context.Background(), 10, UpdateVehicleRequest{
		DailyRentPrice: &badPrice,
	})

	assert.ErrorIs(t, err, ErrValidation)
	mockVehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
