package gymscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
)

// ZoneCount is one live occupancy reading for a gym zone.
type ZoneCount struct {
	ZoneName    string
	Open        bool
	LastCount   int
	Percentage  int
	LastUpdated string
}

type Scraper interface {
	// ZoneCounts fetches the account-wide counter feed and returns the zones
	// belonging to facilityID. An id absent from the feed yields an empty
	// slice, not an error.
	ZoneCounts(ctx context.Context, facilityID int) ([]ZoneCount, error)
}

type scraper struct {
	countURL string
	client   *http.Client
	log      *slog.Logger
}

func New(countURL string, client *http.Client, log *slog.Logger) Scraper {
	return &scraper{countURL: countURL, client: client, log: log}
}

// countRow mirrors the upstream counter API's row shape.
type countRow struct {
	FacilityID             int    `json:"FacilityId"`
	LocationName           string `json:"LocationName"`
	LastCount              int    `json:"LastCount"`
	TotalCapacity          int    `json:"TotalCapacity"`
	IsClosed               bool   `json:"IsClosed"`
	LastUpdatedDateAndTime string `json:"LastUpdatedDateAndTime"`
}

func (s *scraper) ZoneCounts(ctx context.Context, facilityID int) ([]ZoneCount, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.countURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facility count endpoint returned %s", resp.Status)
	}

	var rows []countRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode facility counts: %w", err)
	}

	zones := make([]ZoneCount, 0, 4)
	for _, row := range rows {
		if row.FacilityID != facilityID {
			continue
		}
		zones = append(zones, ZoneCount{
			ZoneName:    strings.TrimSpace(row.LocationName),
			Open:        !row.IsClosed,
			LastCount:   row.LastCount,
			Percentage:  Percentage(row.LastCount, row.TotalCapacity),
			LastUpdated: row.LastUpdatedDateAndTime,
		})
	}
	return zones, nil
}

// Percentage computes round(count/capacity*100); a zero capacity reads as 0
// rather than dividing.
func Percentage(lastCount, totalCapacity int) int {
	if totalCapacity <= 0 {
		return 0
	}
	return int(math.Round(float64(lastCount) / float64(totalCapacity) * 100))
}
