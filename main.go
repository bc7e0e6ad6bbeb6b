package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hms-backend/config"
	"hms-backend/controllers"
	"hms-backend/middleware"
	"hms-backend/routes"
	"hms-backend/services"
	"hms-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue login tokens.")
	}
	middleware.InitJWT(jwtSecret)

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	taxRate := utils.EnvFloat("TAX_RATE", services.DefaultTaxRate)

	// Initialize services
	reservationService := services.NewReservationService(db)
	billingService := services.NewBillingService(db, taxRate)
	inventoryService := services.NewInventoryService(db)
	roomService := services.NewRoomService(db)
	roomTypeService := services.NewRoomTypeService(db)
	reportingService := services.NewReportingService(db)
	exportService := services.NewExportService(db)
	authService := services.NewAuthService(db)
	settingsService := services.NewSettingsService(db)

	// Build router
	router := routes.SetupRouter(routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Reservations: controllers.NewReservationController(reservationService),
		Billing:      controllers.NewBillingController(billingService),
		Inventory:    controllers.NewInventoryController(inventoryService),
		Rooms:        controllers.NewRoomController(roomService),
		RoomTypes:    controllers.NewRoomTypeController(roomTypeService),
		Reports:      controllers.NewReportController(reportingService),
		Exports:      controllers.NewExportController(exportService, reportingService),
		Settings:     controllers.NewSettingsController(settingsService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
