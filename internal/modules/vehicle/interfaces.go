package vehicle

import (
	"context"

	"carrental/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	ExistsByRegistration(ctx context.Context, registration string) (bool, error)
	Update(ctx context.Context, v *domain.Vehicle) error
}
