package retention_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hecate946/cs130-project/service/retention"
)

type prunerFunc func(ctx context.Context, olderThan time.Time) (int64, error)

func (f prunerFunc) PruneHistory(ctx context.Context, olderThan time.Time) (int64, error) {
	return f(ctx, olderThan)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPrune_CutoffMatchesRetentionWindow(t *testing.T) {
	var got time.Time
	p := prunerFunc(func(_ context.Context, olderThan time.Time) (int64, error) {
		got = olderThan
		return 5, nil
	})

	svc := retention.New(map[string]retention.Pruner{"gym_capacity_history": p}, 30, discard())
	require.NoError(t, svc.Prune(context.Background()))

	want := time.Now().UTC().AddDate(0, 0, -30)
	require.WithinDuration(t, want, got, time.Minute)
}

func TestPrune_OneTableFailureDoesNotStopOthers(t *testing.T) {
	pruned := map[string]bool{}
	ok := prunerFunc(func(context.Context, time.Time) (int64, error) {
		pruned["ok"] = true
		return 0, nil
	})
	bad := prunerFunc(func(context.Context, time.Time) (int64, error) {
		pruned["bad"] = true
		return 0, errors.New("delete failed")
	})

	svc := retention.New(map[string]retention.Pruner{
		"dining_capacity_history": bad,
		"gym_capacity_history":    ok,
	}, 7, discard())

	require.NoError(t, svc.Prune(context.Background()))
	require.True(t, pruned["ok"])
	require.True(t, pruned["bad"])
}
