package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Pauline-hiez/reservation-salle/app"
	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/handlers"
	"github.com/Pauline-hiez/reservation-salle/app/middleware"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
	"github.com/Pauline-hiez/reservation-salle/app/usecases"
	"github.com/Pauline-hiez/reservation-salle/config"
	"github.com/Pauline-hiez/reservation-salle/pkg/database"
	"github.com/Pauline-hiez/reservation-salle/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment as-is")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgresDatabase(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	jwtSecret := []byte(cfg.JWT.Secret)
	googleConfig := &oauth2.Config{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.GetDB())
	roomRepo := repositories.NewRoomRepository(db.GetDB())
	reservationRepo := repositories.NewReservationRepository(db.GetDB())

	// Usecases
	userUsecase := usecases.NewUserUsecase(userRepo, jwtSecret, cfg.TokenTTL())
	authUsecase := usecases.NewAuthUsecase(userRepo, googleConfig, jwtSecret, cfg.TokenTTL())
	roomUsecase := usecases.NewRoomUsecase(roomRepo)
	reservationUsecase := usecases.NewReservationUsecase(
		reservationRepo, roomRepo, cfg.Policy(), booking.RealClock{}, cfg.Booking.DefaultRoomID)

	// Handlers
	userHandler := handlers.NewUserHandler(userUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	roomHandler := handlers.NewRoomHandler(roomUsecase)
	reservationHandler := handlers.NewReservationHandler(reservationUsecase)

	srv := server.NewEchoServer(cfg)
	app.RegisterRoutes(
		srv.GetEcho(),
		userHandler,
		authHandler,
		roomHandler,
		reservationHandler,
		middleware.JWTAuth(jwtSecret),
		middleware.AdminOnly(),
	)

	srv.GetEcho().Logger.Fatal(srv.Start())
}
