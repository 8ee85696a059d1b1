package handler

import "github.com/labstack/echo/v4"

// Handlers はルーティングに登録するハンドラー一式
type Handlers struct {
	Health  *HealthHandler
	Booking *BookingHandler
	Query   *QueryHandler
	Fleet   *FleetHandler
}

// RegisterRoutes は /health と /api/v1 配下のルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Check)

	v1 := e.Group("/api/v1")
	v1.POST("/bookings", h.Booking.Book)

	v1.GET("/cruises", h.Query.ListUnderCost)
	v1.POST("/cruises", h.Fleet.CreateCruise)
	v1.GET("/cruises/:cnum/seats", h.Query.AvailableSeats)
	v1.GET("/cruises/:cnum/passengers", h.Query.Passengers)
	v1.POST("/cruises/:cnum/sailings", h.Fleet.CreateSailing)
	v1.POST("/cruises/:cnum/promotions", h.Booking.Promote)

	v1.POST("/ships", h.Fleet.CreateShip)
	v1.GET("/ships/repairs", h.Query.RepairsPerShip)
	v1.POST("/captains", h.Fleet.CreateCaptain)
	v1.POST("/customers", h.Fleet.CreateCustomer)
	v1.POST("/repairs", h.Fleet.CreateRepair)
}
