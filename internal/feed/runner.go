// Package feed refreshes pool reserves in the background so the cache and
// the metrics surface always hold a recent snapshot, independent of quote
// traffic.
package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/metrics"
	"github.com/you/swap-quoter/internal/types"
)

// Reserves is the on-chain read the feed depends on.
type Reserves interface {
	Reserves(ctx context.Context, a chain.Asset) (types.ReservePair, error)
}

// Sink receives refreshed snapshots. A nil sink disables publishing but the
// metrics still update.
type Sink interface {
	PutReserves(ctx context.Context, sym types.Symbol, pair types.ReservePair, tsMs int64) error
}

// Run polls every asset's pool on the given interval until ctx is done.
// Individual failures are logged and counted, never fatal: one flaky pool
// must not stall the rest of the feed.
func Run(ctx context.Context, interval time.Duration, assets []chain.Asset, reference types.Symbol, src Reserves, sink Sink, log *zap.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			refresh(ctx, assets, reference, src, sink, log)
		}
	}
}

func refresh(ctx context.Context, assets []chain.Asset, reference types.Symbol, src Reserves, sink Sink, log *zap.Logger) {
	now := time.Now()
	for _, a := range assets {
		if a.Symbol == reference {
			continue
		}
		pair, err := src.Reserves(ctx, a)
		if err != nil {
			metrics.FeedErrors.Inc()
			log.Warn("reserve refresh failed",
				zap.String("asset", string(a.Symbol)), zap.Error(err))
			continue
		}
		if sink != nil {
			if err := sink.PutReserves(ctx, a.Symbol, pair, now.UnixMilli()); err != nil {
				metrics.FeedErrors.Inc()
				log.Warn("reserve publish failed",
					zap.String("asset", string(a.Symbol)), zap.Error(err))
				continue
			}
		}
		metrics.ReserveRefresh.WithLabelValues(string(a.Symbol)).Set(float64(now.Unix()))
	}
}
