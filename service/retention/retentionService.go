package retention

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes history rows older than the cutoff and reports how many.
type Pruner interface {
	PruneHistory(ctx context.Context, olderThan time.Time) (int64, error)
}

type Service interface {
	Prune(ctx context.Context) error
}

type service struct {
	pruners map[string]Pruner
	days    int
	log     *slog.Logger
	now     func() time.Time
}

// New builds the retention job over the capacity-history tables. The
// append-only series would otherwise grow without bound.
func New(pruners map[string]Pruner, days int, log *slog.Logger) Service {
	return &service{pruners: pruners, days: days, log: log, now: time.Now}
}

func (s *service) Prune(ctx context.Context) error {
	cutoff := s.now().UTC().AddDate(0, 0, -s.days)
	for name, p := range s.pruners {
		deleted, err := p.PruneHistory(ctx, cutoff)
		if err != nil {
			s.log.Error("history prune failed", "table", name, "err", err)
			continue
		}
		if deleted > 0 {
			s.log.Info("history pruned", "table", name, "deleted", deleted, "cutoff", cutoff)
		}
	}
	return nil
}
