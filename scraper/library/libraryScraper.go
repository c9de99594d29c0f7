package libraryscraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutMarker in a slot's className means the interval is booked.
const CheckoutMarker = "s-lc-eq-checkout"

// ItemID is the grid system's opaque room identifier. The upstream API has
// been seen emitting it both as a JSON number and as a string.
type ItemID int64

func (id *ItemID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("itemId %q: %w", s, err)
	}
	*id = ItemID(n)
	return nil
}

// Slot is one atomic time interval for one room in the grid response.
type Slot struct {
	ItemID    ItemID `json:"itemId"`
	Start     string `json:"start"`
	End       string `json:"end"`
	ClassName string `json:"className,omitempty"`
}

func (s Slot) Booked() bool {
	return strings.Contains(s.ClassName, CheckoutMarker)
}

type GridResponse struct {
	Slots []Slot `json:"slots"`
}

// Space carries the per-library query parameters for the shared grid
// endpoint.
type Space struct {
	Slug    string
	LID     int
	GID     int
	Referer string
}

type Scraper interface {
	// Availability posts a date-ranged grid query for every configured
	// space and returns the raw responses keyed by library slug. A failing
	// library is logged and left out of the result.
	Availability(ctx context.Context) map[string]GridResponse
}

type scraper struct {
	endpoint string
	spaces   []Space
	window   time.Duration
	client   *http.Client
	log      *slog.Logger
	now      func() time.Time
}

func New(endpoint string, spaces []Space, client *http.Client, log *slog.Logger) Scraper {
	return &scraper{
		endpoint: endpoint,
		spaces:   spaces,
		window:   7 * 24 * time.Hour,
		client:   client,
		log:      log,
		now:      time.Now,
	}
}

func (s *scraper) Availability(ctx context.Context) map[string]GridResponse {
	start, end := s.dateRange()
	results := make(map[string]GridResponse, len(s.spaces))

	for _, space := range s.spaces {
		grid, err := s.fetchGrid(ctx, space, start, end)
		if err != nil {
			s.log.Error("library grid fetch failed", "library", space.Slug, "err", err)
			continue
		}
		results[space.Slug] = grid
	}
	return results
}

func (s *scraper) fetchGrid(ctx context.Context, space Space, start, end string) (GridResponse, error) {
	form := url.Values{}
	form.Set("lid", strconv.Itoa(space.LID))
	form.Set("gid", strconv.Itoa(space.GID))
	form.Set("start", start)
	form.Set("end", end)
	form.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return GridResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "*/*")
	if space.Referer != "" {
		req.Header.Set("Referer", space.Referer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return GridResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return GridResponse{}, fmt.Errorf("grid endpoint returned %s", resp.Status)
	}

	var grid GridResponse
	if err := json.NewDecoder(resp.Body).Decode(&grid); err != nil {
		return GridResponse{}, fmt.Errorf("decode grid response: %w", err)
	}
	return grid, nil
}

// dateRange is today through one week out, the rolling window the grid
// endpoint expects.
func (s *scraper) dateRange() (string, string) {
	now := s.now()
	return now.Format("2006-01-02"), now.Add(s.window).Format("2006-01-02")
}
