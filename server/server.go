package server

import "github.com/labstack/echo/v4"

// Server is the HTTP front of the application. GetEcho exposes the
// underlying echo instance so main can register the route table on it.
type Server interface {
	Start() error
	GetEcho() *echo.Echo
}
