package vehicle

import (
	"context"
	"errors"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	vehicles VehicleRepository
}

func NewService(vehicles VehicleRepository) *Service {
	return &Service{vehicles: vehicles}
}

func validType(t string) bool {
	switch domain.VehicleType(t) {
	case domain.VehicleCar, domain.VehicleBike, domain.VehicleVan, domain.VehicleSUV:
		return true
	}
	return false
}

func (s *Service) Create(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if req.DailyRentPrice <= 0 {
		return nil, ErrValidation
	}
	if !validType(req.Type) {
		return nil, ErrValidation
	}

	taken, err := s.vehicles.ExistsByRegistration(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrRegistrationTaken
	}

	v := &domain.Vehicle{
		Name:               req.Name,
		Type:               domain.VehicleType(req.Type),
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: domain.VehicleAvailable,
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update applies partial field changes. The availability flag cannot be
// changed here under any role; it always reflects whether an active
// reservation exists and only the reservation engine writes it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Type != nil {
		if !validType(*req.Type) {
			return nil, ErrValidation
		}
		existing.Type = domain.VehicleType(*req.Type)
	}
	if req.RegistrationNumber != nil && *req.RegistrationNumber != existing.RegistrationNumber {
		taken, err := s.vehicles.ExistsByRegistration(ctx, *req.RegistrationNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrRegistrationTaken
		}
		existing.RegistrationNumber = *req.RegistrationNumber
	}
	if req.DailyRentPrice != nil {
		if *req.DailyRentPrice <= 0 {
			return nil, ErrValidation
		}
		existing.DailyRentPrice = *req.DailyRentPrice
	}

	if err := s.vehicles.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
