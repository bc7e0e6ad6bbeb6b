package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hms-backend/controllers"
	"hms-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything SetupRouter needs; keeps the wiring in
// main readable.
type Controllers struct {
	Auth         *controllers.AuthController
	Reservations *controllers.ReservationController
	Billing      *controllers.BillingController
	Inventory    *controllers.InventoryController
	Rooms        *controllers.RoomController
	RoomTypes    *controllers.RoomTypeController
	Reports      *controllers.ReportController
	Exports      *controllers.ExportController
	Settings     *controllers.SettingsController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimit(50, 100))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctrl.Auth.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())

		reservations := protected.Group("/reservations")
		{
			reservations.GET("", ctrl.Reservations.ListReservations)
			reservations.POST("", ctrl.Reservations.CreateReservation)

			// must come before /:id
			reservations.GET("/availability", ctrl.Reservations.Availability)
			reservations.GET("/by-reference/:code", ctrl.Reservations.GetByReference)

			reservations.GET("/:id", ctrl.Reservations.GetReservation)
			reservations.PATCH("/:id/status", ctrl.Reservations.UpdateStatus)
			reservations.POST("/:id/cancel", ctrl.Reservations.CancelReservation)
			reservations.GET("/:id/invoice", ctrl.Billing.GetByReservation)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", ctrl.Billing.ListInvoices)
			invoices.POST("", ctrl.Billing.CreateInvoice)
			invoices.GET("/revenue", ctrl.Billing.TotalRevenue)
			invoices.GET("/:id", ctrl.Billing.GetInvoice)
			invoices.GET("/:id/charges", ctrl.Billing.ListCharges)
			invoices.POST("/:id/charges", ctrl.Billing.AddCharge)
			invoices.GET("/:id/payments", ctrl.Billing.ListPayments)
			invoices.POST("/:id/payments", ctrl.Billing.RecordPayment)
		}

		inventory := protected.Group("/inventory")
		{
			inventory.GET("", ctrl.Inventory.ListItems)
			inventory.POST("", ctrl.Inventory.CreateItem)
			inventory.GET("/low-stock", ctrl.Inventory.LowStock)
			inventory.GET("/:id", ctrl.Inventory.GetItem)
			inventory.PUT("/:id", ctrl.Inventory.UpdateItem)
			inventory.DELETE("/:id", ctrl.Inventory.DeleteItem)
			inventory.POST("/:id/adjust", ctrl.Inventory.AdjustQuantity)
			inventory.GET("/:id/logs", ctrl.Inventory.ItemLogs)
		}

		rooms := protected.Group("/rooms")
		{
			rooms.GET("", ctrl.Rooms.ListRooms)
			rooms.POST("", ctrl.Rooms.CreateRoom)
			rooms.GET("/:id", ctrl.Rooms.GetRoom)
			rooms.PATCH("/:id", ctrl.Rooms.UpdateRoom)
			rooms.PATCH("/:id/status", ctrl.Rooms.UpdateRoomStatus)
			rooms.DELETE("/:id", ctrl.Rooms.DeleteRoom)
		}

		roomTypes := protected.Group("/room-types")
		{
			roomTypes.GET("", ctrl.RoomTypes.ListRoomTypes)
			roomTypes.POST("", ctrl.RoomTypes.CreateRoomType)
			roomTypes.GET("/:id", ctrl.RoomTypes.GetRoomType)
			roomTypes.PUT("/:id", ctrl.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", ctrl.RoomTypes.DeleteRoomType)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/occupancy", ctrl.Reports.Occupancy)
			reports.GET("/revenue", ctrl.Reports.Revenue)
			reports.GET("/room-types", ctrl.Reports.RoomTypePopularity)
			reports.GET("/guests", ctrl.Reports.TopGuests)
			reports.GET("/summary", ctrl.Reports.Summary)
		}

		exports := protected.Group("/exports")
		{
			exports.GET("/reservations.csv", ctrl.Exports.ReservationsCSV)
			exports.GET("/invoices.csv", ctrl.Exports.InvoicesCSV)
			exports.GET("/occupancy.xlsx", ctrl.Exports.OccupancyXLSX)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/hotel", ctrl.Settings.GetHotelSettings)
			settings.PUT("/hotel", ctrl.Settings.UpdateHotelSettings)
		}
	}

	return r
}
