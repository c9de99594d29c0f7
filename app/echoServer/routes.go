package echoServer

import (
	"github.com/Hecate946/cs130-project/app/echoServer/controller/dining"
	"github.com/Hecate946/cs130-project/app/echoServer/controller/gym"
	"github.com/Hecate946/cs130-project/app/echoServer/controller/library"

	"github.com/labstack/echo/v4"
)

type C struct {
	Gym     *gym.Controller
	Dining  *dining.Controller
	Library *library.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	v1.GET("/gym/:slug", c.Gym.Get)

	v1.GET("/dining", c.Dining.List)
	v1.GET("/dining/:slug", c.Dining.Get)

	v1.GET("/library", c.Library.List)
	// Registered for every method: the detail route answers 405 itself so
	// the error body matches the rest of the API.
	v1.Any("/library/:slug", c.Library.Details)
	v1.GET("/library/:slug/rooms", c.Library.Rooms)
	v1.GET("/library/:slug/bookings", c.Library.Bookings)
	v1.GET("/library/:slug/bookings/range", c.Library.BookingsRange)
}
