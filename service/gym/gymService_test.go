package gymsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hecate946/cs130-project/config"
	gymrepo "github.com/Hecate946/cs130-project/repository/gym"
	gymscraper "github.com/Hecate946/cs130-project/scraper/gym"
	gymsvc "github.com/Hecate946/cs130-project/service/gym"
)

type mockRepo struct {
	GetBySlugFn      func(ctx context.Context, slug string) (*gymrepo.Gym, error)
	UpsertHoursFn    func(ctx context.Context, slug string, regular, special map[string]string) error
	InsertCapacityFn func(ctx context.Context, slug, zoneName string, capacity, percentage int, observedAt time.Time) error
	LatestCapacityFn func(ctx context.Context, slug string) ([]gymrepo.ZoneObservation, error)
}

func (m *mockRepo) GetBySlug(ctx context.Context, slug string) (*gymrepo.Gym, error) {
	return m.GetBySlugFn(ctx, slug)
}

func (m *mockRepo) UpsertHours(ctx context.Context, slug string, regular, special map[string]string) error {
	return m.UpsertHoursFn(ctx, slug, regular, special)
}

func (m *mockRepo) InsertCapacity(ctx context.Context, slug, zoneName string, capacity, percentage int, observedAt time.Time) error {
	return m.InsertCapacityFn(ctx, slug, zoneName, capacity, percentage, observedAt)
}

func (m *mockRepo) LatestCapacity(ctx context.Context, slug string) ([]gymrepo.ZoneObservation, error) {
	return m.LatestCapacityFn(ctx, slug)
}

type mockScraper struct {
	ZoneCountsFn func(ctx context.Context, facilityID int) ([]gymscraper.ZoneCount, error)
}

func (m *mockScraper) ZoneCounts(ctx context.Context, facilityID int) ([]gymscraper.ZoneCount, error) {
	return m.ZoneCountsFn(ctx, facilityID)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScrapeAndStore_InsertsEveryZone(t *testing.T) {
	type insert struct {
		slug, zone string
		observedAt time.Time
	}
	var inserts []insert
	hoursUpserts := map[string]bool{}

	repo := &mockRepo{
		UpsertHoursFn: func(_ context.Context, slug string, _, _ map[string]string) error {
			hoursUpserts[slug] = true
			return nil
		},
		InsertCapacityFn: func(_ context.Context, slug, zone string, _, _ int, observedAt time.Time) error {
			inserts = append(inserts, insert{slug: slug, zone: zone, observedAt: observedAt})
			return nil
		},
	}
	scraper := &mockScraper{
		ZoneCountsFn: func(_ context.Context, facilityID int) ([]gymscraper.ZoneCount, error) {
			if facilityID == config.FacilityIDs["bfit"] {
				return nil, errors.New("feed down")
			}
			return []gymscraper.ZoneCount{
				{ZoneName: "Cardio Zone", Open: true, LastCount: 45, Percentage: 75, LastUpdated: "2/20/2025 12:30:05 PM"},
				{ZoneName: "Weight Room", Open: true, LastCount: 12, Percentage: 30, LastUpdated: "garbage"},
			}, nil
		},
	}

	svc := gymsvc.New(repo, scraper, discard())
	require.NoError(t, svc.ScrapeAndStore(context.Background()))

	// Hours refresh happens for both gyms even when the counter feed fails.
	require.True(t, hoursUpserts["bfit"])
	require.True(t, hoursUpserts["john-wooden-center"])

	require.Len(t, inserts, 2, "only the healthy gym's zones should insert")
	for _, in := range inserts {
		require.Equal(t, "john-wooden-center", in.slug)
	}

	want := time.Date(2025, 2, 20, 12, 30, 5, 0, time.UTC)
	require.Equal(t, want, inserts[0].observedAt.UTC())

	// Unparseable feed timestamps fall back to scrape time.
	require.WithinDuration(t, time.Now().UTC(), inserts[1].observedAt, time.Minute)
}

func TestLatest(t *testing.T) {
	repo := &mockRepo{
		GetBySlugFn: func(_ context.Context, slug string) (*gymrepo.Gym, error) {
			return &gymrepo.Gym{
				Slug:         slug,
				RegularHours: map[string]string{"monday": "6:00 AM - 11:00 PM"},
				SpecialHours: map[string]string{},
			}, nil
		},
		LatestCapacityFn: func(context.Context, string) ([]gymrepo.ZoneObservation, error) {
			return []gymrepo.ZoneObservation{{ZoneName: "Cardio Zone", Capacity: 45, Percentage: 75}}, nil
		},
	}

	svc := gymsvc.New(repo, &mockScraper{}, discard())
	snap, err := svc.Latest(context.Background(), "john-wooden-center")
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Zones, 1)
	require.Equal(t, "6:00 AM - 11:00 PM", snap.RegularHours["monday"])
}

func TestLatest_UnknownGym(t *testing.T) {
	repo := &mockRepo{
		GetBySlugFn: func(context.Context, string) (*gymrepo.Gym, error) { return nil, nil },
	}

	svc := gymsvc.New(repo, &mockScraper{}, discard())
	snap, err := svc.Latest(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, snap)
}
