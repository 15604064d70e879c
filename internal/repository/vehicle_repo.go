package repository

import (
	"context"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Name               string    `gorm:"column:vehicle_name"`
	Type               string    `gorm:"column:type"`
	RegistrationNumber string    `gorm:"column:registration_number"`
	DailyRentPrice     float64   `gorm:"column:daily_rent_price"`
	AvailabilityStatus string    `gorm:"column:availability_status"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (vehicleModel) TableName() string { return "vehicles" }

func toDomainVehicle(m vehicleModel) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 m.ID,
		Name:               m.Name,
		Type:               domain.VehicleType(m.Type),
		RegistrationNumber: m.RegistrationNumber,
		DailyRentPrice:     m.DailyRentPrice,
		AvailabilityStatus: domain.AvailabilityStatus(m.AvailabilityStatus),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toVehicleModel(v *domain.Vehicle) vehicleModel {
	return vehicleModel{
		ID:                 v.ID,
		Name:               v.Name,
		Type:               string(v.Type),
		RegistrationNumber: v.RegistrationNumber,
		DailyRentPrice:     v.DailyRentPrice,
		AvailabilityStatus: string(v.AvailabilityStatus),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	m := toVehicleModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVehicle(m)
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var m vehicleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	var ms []vehicleModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Vehicle, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) ExistsByRegistration(ctx context.Context, registration string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&vehicleModel{}).
		Where("registration_number = ?", registration).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// Update writes the editable vehicle fields. AvailabilityStatus is
// deliberately not among them: the flag belongs to the reservation engine
// and only ever changes inside its allocation/release transactions.
func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	tx := r.db.WithContext(ctx).
		Model(&vehicleModel{}).
		Where("id = ?", v.ID).
		Updates(map[string]any{
			"vehicle_name":        v.Name,
			"type":                string(v.Type),
			"registration_number": v.RegistrationNumber,
			"daily_rent_price":    v.DailyRentPrice,
			"updated_at":          time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
