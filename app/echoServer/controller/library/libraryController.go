package library

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Hecate946/cs130-project/app/echoServer/respond"
	librarysvc "github.com/Hecate946/cs130-project/service/library"
)

const isoLayout = "2006-01-02T15:04:05"

type Controller struct {
	Svc librarysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/library
func (h *Controller) List(c echo.Context) error {
	libs, err := h.Svc.Libraries(c.Request().Context())
	if err != nil {
		h.Log.Error("library list error", "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if len(libs) == 0 {
		return respond.Error(c, http.StatusNotFound, "No libraries found")
	}

	out := make([]libraryView, 0, len(libs))
	for _, l := range libs {
		out = append(out, toLibraryView(l))
	}
	return respond.Data(c, http.StatusOK, out)
}

// Registered with Any: /v1/library/:slug answers 405 for anything but GET so
// the error body stays consistent with the rest of the API.
func (h *Controller) Details(c echo.Context) error {
	if c.Request().Method != http.MethodGet {
		return respond.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	}

	slug := c.Param("slug")
	lib, err := h.Svc.Details(c.Request().Context(), slug)
	if err != nil {
		h.Log.Error("library details error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if lib == nil {
		return respond.Error(c, http.StatusNotFound, "Library not found")
	}
	return respond.Data(c, http.StatusOK, toLibraryView(*lib))
}

// GET /v1/library/:slug/rooms
func (h *Controller) Rooms(c echo.Context) error {
	slug := c.Param("slug")
	rooms, err := h.Svc.Rooms(c.Request().Context(), slug)
	if err != nil {
		h.Log.Error("library rooms error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if len(rooms) == 0 {
		return respond.Error(c, http.StatusNotFound, "No rooms found for this library")
	}

	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomView(r))
	}
	return respond.Data(c, http.StatusOK, out)
}

// GET /v1/library/:slug/bookings
func (h *Controller) Bookings(c echo.Context) error {
	slug := c.Param("slug")
	bookings, err := h.Svc.Bookings(c.Request().Context(), slug)
	if err != nil {
		h.Log.Error("library bookings error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if len(bookings) == 0 {
		return respond.Error(c, http.StatusNotFound, "No booking data found")
	}
	return respond.Data(c, http.StatusOK, toBookingViews(bookings))
}

// GET /v1/library/:slug/bookings/range?start=ISO&end=ISO
func (h *Controller) BookingsRange(c echo.Context) error {
	slug := c.Param("slug")

	var q RangeQuery
	if err := c.Bind(&q); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Both 'start' and 'end' query parameters are required")
	}
	if err := h.V.Struct(q); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Both 'start' and 'end' query parameters are required")
	}

	start, err := time.Parse(isoLayout, q.Start)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid date format. Please use ISO format (YYYY-MM-DDTHH:MM:SS)")
	}
	end, err := time.Parse(isoLayout, q.End)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid date format. Please use ISO format (YYYY-MM-DDTHH:MM:SS)")
	}

	bookings, err := h.Svc.BookingsInRange(c.Request().Context(), slug, start, end)
	if err != nil {
		h.Log.Error("library range error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if len(bookings) == 0 {
		return respond.Error(c, http.StatusNotFound, "No booking data found for the specified date range")
	}
	return respond.Data(c, http.StatusOK, toBookingViews(bookings))
}
