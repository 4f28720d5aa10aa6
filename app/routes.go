package app

import (
	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/handlers"
)

func RegisterRoutes(
	e *echo.Echo,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	reservationHandler *handlers.ReservationHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
) {
	api := e.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/register", userHandler.Register)
	auth.POST("/login", userHandler.Login)
	auth.GET("/google/login", authHandler.GoogleLogin)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/me", userHandler.Me, authMiddleware)

	// User management (admin only)
	users := auth.Group("/users", authMiddleware, adminMiddleware)
	users.GET("", userHandler.GetUsers)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Room routes: reads are public, writes are admin only
	api.GET("/rooms", roomHandler.GetRooms)
	api.GET("/rooms/:id", roomHandler.GetRoomByID)
	adminRooms := api.Group("/rooms", authMiddleware, adminMiddleware)
	adminRooms.POST("", roomHandler.CreateRoom)
	adminRooms.PUT("/:id", roomHandler.UpdateRoom)
	adminRooms.DELETE("/:id", roomHandler.DeleteRoom)

	// Reservation routes (authenticated)
	reservations := api.Group("/reservations", authMiddleware)
	reservations.POST("", reservationHandler.CreateReservation)
	reservations.GET("", reservationHandler.GetReservations)
	reservations.GET("/period", reservationHandler.GetReservationsByPeriod)
	reservations.GET("/my", reservationHandler.GetMyReservations)
	reservations.GET("/availability", reservationHandler.CheckAvailability)
	reservations.GET("/room/:roomId", reservationHandler.GetReservationsByRoom)
	reservations.GET("/:id", reservationHandler.GetReservationByID)
	reservations.PUT("/:id", reservationHandler.UpdateReservation)
	reservations.DELETE("/:id", reservationHandler.DeleteReservation)
}
