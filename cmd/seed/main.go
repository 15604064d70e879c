package main

import (
	"log"

	"carrental/internal/database"
	"carrental/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("carrental.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Fleet Admin",
		Email:        "admin@carrental.local",
		PasswordHash: string(adminHash),
		Phone:        "+10000000001",
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	customers := []domain.User{
		{Name: "Alice Renter", Email: "alice@example.com", PasswordHash: string(customerHash), Phone: "+10000000002", Role: domain.RoleCustomer},
		{Name: "Bob Driver", Email: "bob@example.com", PasswordHash: string(customerHash), Phone: "+10000000003", Role: domain.RoleCustomer},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Fatal("Failed to create customer:", err)
		}
	}

	log.Println("Creating vehicles...")

	vehicles := []domain.Vehicle{
		{Name: "Toyota Corolla", Type: domain.VehicleCar, RegistrationNumber: "KZ-001-AA", DailyRentPrice: 50.00, AvailabilityStatus: domain.VehicleAvailable},
		{Name: "Honda CB500", Type: domain.VehicleBike, RegistrationNumber: "KZ-002-BB", DailyRentPrice: 25.00, AvailabilityStatus: domain.VehicleAvailable},
		{Name: "Ford Transit", Type: domain.VehicleVan, RegistrationNumber: "KZ-003-CC", DailyRentPrice: 80.00, AvailabilityStatus: domain.VehicleAvailable},
		{Name: "Kia Sportage", Type: domain.VehicleSUV, RegistrationNumber: "KZ-004-DD", DailyRentPrice: 70.00, AvailabilityStatus: domain.VehicleAvailable},
	}
	for i := range vehicles {
		if err := db.Create(&vehicles[i]).Error; err != nil {
			log.Fatal("Failed to create vehicle:", err)
		}
	}

	log.Printf("Seed complete: %d users, %d vehicles", len(customers)+1, len(vehicles))
	log.Println("Admin login: admin@carrental.local / admin123")
}
