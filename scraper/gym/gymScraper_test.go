package gymscraper_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	gymscraper "github.com/Hecate946/cs130-project/scraper/gym"
)

const countFeed = `[
	{"FacilityId":802,"LocationName":" Cardio Zone ","LastCount":45,"TotalCapacity":60,"IsClosed":false,"LastUpdatedDateAndTime":"2/20/2025 12:30:05 PM"},
	{"FacilityId":802,"LocationName":"Weight Room","LastCount":0,"TotalCapacity":0,"IsClosed":true,"LastUpdatedDateAndTime":"2/20/2025 12:30:05 PM"},
	{"FacilityId":803,"LocationName":"Main Floor","LastCount":10,"TotalCapacity":40,"IsClosed":false,"LastUpdatedDateAndTime":"2/20/2025 12:30:05 PM"}
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestZoneCounts_FiltersByFacility(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countFeed))
	}))
	defer srv.Close()

	s := gymscraper.New(srv.URL, srv.Client(), testLogger())

	zones, err := s.ZoneCounts(context.Background(), 802)
	require.NoError(t, err)
	require.Len(t, zones, 2)

	require.Equal(t, "Cardio Zone", zones[0].ZoneName, "location names must be trimmed")
	require.True(t, zones[0].Open)
	require.Equal(t, 75, zones[0].Percentage)

	require.False(t, zones[1].Open)
	require.Equal(t, 0, zones[1].Percentage, "zero capacity must not divide")
}

func TestZoneCounts_UnknownFacilityIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(countFeed))
	}))
	defer srv.Close()

	s := gymscraper.New(srv.URL, srv.Client(), testLogger())

	zones, err := s.ZoneCounts(context.Background(), 999)
	require.NoError(t, err)
	require.Empty(t, zones)
}

func TestZoneCounts_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := gymscraper.New(srv.URL, srv.Client(), testLogger())

	_, err := s.ZoneCounts(context.Background(), 802)
	require.Error(t, err)
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		count, capacity, want int
	}{
		{45, 60, 75},
		{1, 3, 33},
		{2, 3, 67}, // rounds, not truncates
		{61, 60, 102},
		{0, 0, 0},
		{5, -1, 0},
	}
	for _, tc := range cases {
		if got := gymscraper.Percentage(tc.count, tc.capacity); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tc.count, tc.capacity, got, tc.want)
		}
	}
}
