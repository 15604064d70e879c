package repository

import (
	"context"
	"errors"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinels surfaced from inside the allocation transaction. The reservation
// module maps them onto its caller-facing errors.
var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleUnavailable   = errors.New("vehicle not available")
	ErrDateOverlap          = errors.New("reservation dates overlap")
	ErrReservationNotActive = errors.New("reservation not active")
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	VehicleID  int64     `gorm:"column:vehicle_id"`
	CustomerID int64     `gorm:"column:customer_id"`
	StartDate  time.Time `gorm:"column:rent_start_date"`
	EndDate    time.Time `gorm:"column:rent_end_date"`
	TotalPrice float64   `gorm:"column:total_price"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:         m.ID,
		VehicleID:  m.VehicleID,
		CustomerID: m.CustomerID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		TotalPrice: m.TotalPrice,
		Status:     domain.ReservationStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:         r.ID,
		VehicleID:  r.VehicleID,
		CustomerID: r.CustomerID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// HasOverlap reports whether any active reservation for the vehicle
// intersects the inclusive range [start, end]. ignoreID excludes one
// reservation from the check (0 means none), for update-style callers.
// Two closed ranges intersect iff NOT(e1 < s2 OR s1 > e2).
func (r *ReservationRepository) HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time, ignoreID int64) (bool, error) {
	return hasOverlap(r.db.WithContext(ctx), vehicleID, start, end, ignoreID)
}

// lockForUpdate row-locks the upcoming read so concurrent allocators for
// the same vehicle serialize on it. SQLite has no FOR UPDATE syntax and no
// need for it either: its transactions are single-writer.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func hasOverlap(tx *gorm.DB, vehicleID int64, start, end time.Time, ignoreID int64) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM reservations
WHERE vehicle_id = ?
  AND status = 'active'
  AND id <> ?
  AND NOT (rent_end_date < ? OR rent_start_date > ?)
`
	res := tx.Raw(q, vehicleID, ignoreID, start, end).Scan(&cnt)
	if res.Error != nil {
		return false, res.Error
	}
	return cnt > 0, nil
}

// CreateAllocated inserts the reservation and flips the vehicle to booked
// as one atomic unit. The availability and overlap checks run inside the
// same transaction; a pre-check outside it is advisory only. On PostgreSQL
// the reservations_no_date_overlap exclusion constraint additionally
// rejects any insert that races past the query — that violation propagates
// as a *pgconn.PgError for the service to translate.
func (r *ReservationRepository) CreateAllocated(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v vehicleModel
		if err := lockForUpdate(tx).First(&v, res.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		if v.AvailabilityStatus != string(domain.VehicleAvailable) {
			return ErrVehicleUnavailable
		}

		overlaps, err := hasOverlap(tx, res.VehicleID, res.StartDate, res.EndDate, 0)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrDateOverlap
		}

		m := toReservationModel(res)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := tx.Model(&vehicleModel{}).
			Where("id = ?", res.VehicleID).
			Updates(map[string]any{
				"availability_status": string(domain.VehicleBooked),
				"updated_at":          time.Now(),
			}).Error; err != nil {
			return err
		}

		*res = *toDomainReservation(m)
		return nil
	})
}

// TransitionWithRelease sets the reservation status and marks the vehicle
// available again in one atomic unit. Releasing only ever frees capacity,
// so no overlap check is needed here. The status predicate on the update
// makes terminal states immutable even when two transitions race: the
// loser matches zero rows and gets ErrReservationNotActive.
func (r *ReservationRepository) TransitionWithRelease(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	var m reservationModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}

		res := tx.Model(&reservationModel{}).
			Where("id = ? AND status = ?", id, string(domain.ReservationActive)).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReservationNotActive
		}

		if err := tx.Model(&vehicleModel{}).
			Where("id = ?", m.VehicleID).
			Updates(map[string]any{
				"availability_status": string(domain.VehicleAvailable),
				"updated_at":          time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.First(&m, id).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

type reservationDetailsRow struct {
	ID                 int64     `gorm:"column:id"`
	VehicleID          int64     `gorm:"column:vehicle_id"`
	CustomerID         int64     `gorm:"column:customer_id"`
	StartDate          time.Time `gorm:"column:rent_start_date"`
	EndDate            time.Time `gorm:"column:rent_end_date"`
	TotalPrice         float64   `gorm:"column:total_price"`
	Status             string    `gorm:"column:status"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
	VehicleName        string    `gorm:"column:vehicle_name"`
	RegistrationNumber string    `gorm:"column:registration_number"`
	VehicleType        string    `gorm:"column:vehicle_type"`
	CustomerName       string    `gorm:"column:customer_name"`
	CustomerEmail      string    `gorm:"column:customer_email"`
}

func (row reservationDetailsRow) toDetails(withCustomer bool) domain.ReservationDetails {
	d := domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID:         row.ID,
			VehicleID:  row.VehicleID,
			CustomerID: row.CustomerID,
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
			TotalPrice: row.TotalPrice,
			Status:     domain.ReservationStatus(row.Status),
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		},
		Vehicle: &domain.VehicleSummary{
			Name:               row.VehicleName,
			RegistrationNumber: row.RegistrationNumber,
			Type:               row.VehicleType,
		},
	}
	if withCustomer {
		d.Customer = &domain.CustomerSummary{
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
		}
	}
	return d
}

func (r *ReservationRepository) ListAllWithDetails(ctx context.Context) ([]domain.ReservationDetails, error) {
	var rows []reservationDetailsRow
	q := `
SELECT
  r.id, r.vehicle_id, r.customer_id, r.rent_start_date, r.rent_end_date,
  r.total_price, r.status, r.created_at, r.updated_at,
  v.vehicle_name, v.registration_number, v.type AS vehicle_type,
  u.name AS customer_name, u.email AS customer_email
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
JOIN users u    ON u.id = r.customer_id
ORDER BY r.id ASC
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ReservationDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDetails(true))
	}
	return out, nil
}

func (r *ReservationRepository) ListByCustomerWithDetails(ctx context.Context, customerID int64) ([]domain.ReservationDetails, error) {
	var rows []reservationDetailsRow
	q := `
SELECT
  r.id, r.vehicle_id, r.customer_id, r.rent_start_date, r.rent_end_date,
  r.total_price, r.status, r.created_at, r.updated_at,
  v.vehicle_name, v.registration_number, v.type AS vehicle_type
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
WHERE r.customer_id = ?
ORDER BY r.id ASC
`
	tx := r.db.WithContext(ctx).Raw(q, customerID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ReservationDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDetails(false))
	}
	return out, nil
}
