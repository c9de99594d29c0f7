package gym_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Hecate946/cs130-project/app/echoServer/controller/gym"
	gymsvc "github.com/Hecate946/cs130-project/service/gym"
)

type mockService struct {
	LatestFn func(ctx context.Context, slug string) (*gymsvc.Snapshot, error)
}

func (m *mockService) Latest(ctx context.Context, slug string) (*gymsvc.Snapshot, error) {
	return m.LatestFn(ctx, slug)
}

func (m *mockService) ScrapeAndStore(ctx context.Context) error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getContext(t *testing.T, slug string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/gym/"+slug, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	return c, rec
}

func TestGet_UnknownGymIs404(t *testing.T) {
	h := &gym.Controller{
		Svc: &mockService{LatestFn: func(context.Context, string) (*gymsvc.Snapshot, error) {
			return nil, nil
		}},
		Log: discard(),
	}

	c, rec := getContext(t, "not-a-gym")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Gym not found", body["error"])
	require.NotEmpty(t, body["timestamp"])
}

func TestGet_ZonesKeyedByName(t *testing.T) {
	observed := time.Date(2025, 2, 20, 12, 30, 5, 0, time.UTC)
	h := &gym.Controller{
		Svc: &mockService{LatestFn: func(_ context.Context, slug string) (*gymsvc.Snapshot, error) {
			return &gymsvc.Snapshot{
				Slug:         slug,
				RegularHours: map[string]string{"monday": "6:00 AM - 11:00 PM"},
				SpecialHours: map[string]string{},
				Zones: []gymsvc.ZoneObservation{
					{ZoneName: "Cardio Zone", Capacity: 45, Percentage: 75, LastUpdated: observed},
				},
			}, nil
		}},
		Log: discard(),
	}

	c, rec := getContext(t, "john-wooden-center")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Slug  string `json:"slug"`
			Zones map[string]struct {
				Capacity   int `json:"capacity"`
				Percentage int `json:"percentage"`
			} `json:"zones"`
		} `json:"data"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "john-wooden-center", body.Data.Slug)
	require.Contains(t, body.Data.Zones, "Cardio Zone")
	require.Equal(t, 75, body.Data.Zones["Cardio Zone"].Percentage)
	require.NotEmpty(t, body.Timestamp)
}
