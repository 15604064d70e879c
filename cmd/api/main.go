package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/middleware"
	"carrental/internal/modules/auth"
	"carrental/internal/modules/events"
	"carrental/internal/modules/reservation"
	"carrental/internal/modules/user"
	"carrental/internal/modules/vehicle"
	jwtsvc "carrental/internal/pkg/jwt"
	"carrental/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := events.NewHub()
	defer hub.Close()
	eventSender := events.NewSender(hub)
	wsHandler := events.NewWSHandler(hub, j)

	authService := auth.NewService(userRepo, j, cfg.BcryptCost)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	vehicleService := vehicle.NewService(vehicleRepo)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	reservationService := reservation.NewService(reservationRepo, vehicleRepo, eventSender)
	reservationHandler := reservation.NewHandler(reservationService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			vehicleHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
