package library_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Hecate946/cs130-project/app/echoServer/controller/library"
	libraryrepo "github.com/Hecate946/cs130-project/repository/library"
	libraryscraper "github.com/Hecate946/cs130-project/scraper/library"
	librarysvc "github.com/Hecate946/cs130-project/service/library"
)

type mockService struct {
	LibrariesFn       func(ctx context.Context) ([]librarysvc.Library, error)
	DetailsFn         func(ctx context.Context, slug string) (*librarysvc.Library, error)
	RoomsFn           func(ctx context.Context, slug string) ([]librarysvc.RoomWithBookings, error)
	BookingsFn        func(ctx context.Context, slug string) ([]librarysvc.Booking, error)
	BookingsInRangeFn func(ctx context.Context, slug string, start, end time.Time) ([]librarysvc.Booking, error)
}

func (m *mockService) Libraries(ctx context.Context) ([]librarysvc.Library, error) {
	return m.LibrariesFn(ctx)
}

func (m *mockService) Details(ctx context.Context, slug string) (*librarysvc.Library, error) {
	return m.DetailsFn(ctx, slug)
}

func (m *mockService) Rooms(ctx context.Context, slug string) ([]librarysvc.RoomWithBookings, error) {
	return m.RoomsFn(ctx, slug)
}

func (m *mockService) Bookings(ctx context.Context, slug string) ([]librarysvc.Booking, error) {
	return m.BookingsFn(ctx, slug)
}

func (m *mockService) BookingsInRange(ctx context.Context, slug string, start, end time.Time) ([]librarysvc.Booking, error) {
	return m.BookingsInRangeFn(ctx, slug, start, end)
}

func (m *mockService) ReconcileGrid(ctx context.Context, libraryID int64, grid libraryscraper.GridResponse) librarysvc.ReconcileStats {
	return librarysvc.ReconcileStats{}
}

func (m *mockService) ScrapeAndStore(ctx context.Context) error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newController(svc librarysvc.Service) *library.Controller {
	return &library.Controller{Svc: svc, V: validator.New(), Log: discard()}
}

func request(method, target, slug string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	return c, rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	require.NotEmpty(t, msg)
	return msg
}

func TestDetails_NonGETIs405(t *testing.T) {
	h := newController(&mockService{})

	c, rec := request(http.MethodPost, "/v1/library/powell", "powell")
	require.NoError(t, h.Details(c))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "Method not allowed", errorBody(t, rec))
}

func TestDetails_UnknownSlugIs404(t *testing.T) {
	h := newController(&mockService{
		DetailsFn: func(context.Context, string) (*librarysvc.Library, error) { return nil, nil },
	})

	c, rec := request(http.MethodGet, "/v1/library/nope", "nope")
	require.NoError(t, h.Details(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Library not found", errorBody(t, rec))
}

func TestList_EmptyIs404(t *testing.T) {
	h := newController(&mockService{
		LibrariesFn: func(context.Context) ([]librarysvc.Library, error) { return nil, nil },
	})

	c, rec := request(http.MethodGet, "/v1/library", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No libraries found", errorBody(t, rec))
}

func TestBookingsRange_MissingParamIs400(t *testing.T) {
	h := newController(&mockService{})

	c, rec := request(http.MethodGet, "/v1/library/powell/bookings/range?start=2025-02-20T00:00:00", "powell")
	require.NoError(t, h.BookingsRange(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errorBody(t, rec), "'start' and 'end'")
}

func TestBookingsRange_BadDateFormatIs400(t *testing.T) {
	h := newController(&mockService{})

	c, rec := request(http.MethodGet, "/v1/library/powell/bookings/range?start=02/20/2025&end=02/21/2025", "powell")
	require.NoError(t, h.BookingsRange(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errorBody(t, rec), "ISO format")
}

func TestBookingsRange_EmptyResultIs404(t *testing.T) {
	h := newController(&mockService{
		BookingsInRangeFn: func(context.Context, string, time.Time, time.Time) ([]librarysvc.Booking, error) {
			return nil, nil
		},
	})

	c, rec := request(http.MethodGet, "/v1/library/powell/bookings/range?start=2025-02-20T00:00:00&end=2025-02-21T00:00:00", "powell")
	require.NoError(t, h.BookingsRange(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingsRange_ParsesBoundsAndReturnsData(t *testing.T) {
	var gotStart, gotEnd time.Time
	h := newController(&mockService{
		BookingsInRangeFn: func(_ context.Context, slug string, start, end time.Time) ([]librarysvc.Booking, error) {
			gotStart, gotEnd = start, end
			return []librarysvc.Booking{{
				ID: 1, RoomID: 2, Status: "booked",
				StartTime: start.Add(12 * time.Hour),
				EndTime:   start.Add(13 * time.Hour),
			}}, nil
		},
	})

	c, rec := request(http.MethodGet, "/v1/library/powell/bookings/range?start=2025-02-20T00:00:00&end=2025-02-21T00:00:00", "powell")
	require.NoError(t, h.BookingsRange(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), gotStart)
	require.Equal(t, time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC), gotEnd)

	var body struct {
		Data []struct {
			RoomID int64  `json:"room_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "booked", body.Data[0].Status)
}

func TestRooms_NestsBookings(t *testing.T) {
	h := newController(&mockService{
		RoomsFn: func(context.Context, string) ([]librarysvc.RoomWithBookings, error) {
			return []librarysvc.RoomWithBookings{{
				Room:     libraryrepo.Room{ID: 3, Name: "Room A", Capacity: 1},
				Bookings: []librarysvc.Booking{{ID: 9, RoomID: 3, Status: "available"}},
			}}, nil
		},
	})

	c, rec := request(http.MethodGet, "/v1/library/powell/rooms", "powell")
	require.NoError(t, h.Rooms(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Name     string `json:"name"`
			Bookings []struct {
				Status string `json:"status"`
			} `json:"bookings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "Room A", body.Data[0].Name)
	require.Len(t, body.Data[0].Bookings, 1)
}
