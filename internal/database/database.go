package database

import (
	"log"
	"strings"

	"carrental/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, err
	}

	// An in-memory SQLite database exists per connection; without this,
	// every pooled connection would see its own empty schema.
	if dsn == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates the schema and, on PostgreSQL, the exclusion constraint
// that is the storage-level backstop for the overlap invariant: no two
// active reservations for one vehicle may share a day. The in-transaction
// overlap query in the reservation module is only the fast, friendly check;
// this constraint is what actually holds under concurrent inserts.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Vehicle{},
		&domain.Reservation{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		// SQLite has no exclusion constraints; there the single-writer
		// transaction around the overlap check is the guard.
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
DO $$
BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_date_overlap'
  ) THEN
    ALTER TABLE reservations
      ADD CONSTRAINT reservations_no_date_overlap
      EXCLUDE USING gist (
        vehicle_id WITH =,
        daterange(rent_start_date, rent_end_date, '[]') WITH &&
      )
      WHERE (status = 'active');
  END IF;
END
$$;
`).Error
}
