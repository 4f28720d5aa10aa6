package server

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Pauline-hiez/reservation-salle/config"
)

type echoServer struct {
	app *echo.Echo
	cfg *config.Config
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewEchoServer(cfg *config.Config) Server {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Serve Swagger documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Serve static assets (room images)
	e.Static("/assets", "./assets")

	return &echoServer{
		app: e,
		cfg: cfg,
	}
}

func (s *echoServer) Start() error {
	return s.app.Start(fmt.Sprintf(":%d", s.cfg.Server.Port))
}

func (s *echoServer) GetEcho() *echo.Echo {
	return s.app
}
