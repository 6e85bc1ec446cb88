// feedtail connects to a tracker's WebSocket feed and prints messages to the console.
// Usage: go run ./cmd/feedtail --url ws://localhost:8080/ws
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/spacexy-tracker/internal/feed"
	"github.com/rickgao/spacexy-tracker/internal/poller"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "tracker feed URL")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	reconnect := flag.Duration("reconnect", 5*time.Second, "delay before reconnecting after an error")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	cfg := feed.DefaultClientConfig()
	cfg.URL = *url

	for {
		if err := tail(ctx, cfg, *verbose, logger); err != nil {
			logger.Warn("feed disconnected", "error", err, "retry_in", *reconnect)
		}

		select {
		case <-ctx.Done():
			logger.Info("shutdown complete")
			return
		case <-time.After(*reconnect):
		}
	}
}

// tail streams one connection until it fails or ctx is cancelled.
func tail(ctx context.Context, cfg feed.ClientConfig, verbose bool, logger *slog.Logger) error {
	client, err := feed.Dial(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("streaming started - press Ctrl+C to stop", "url", cfg.URL)

	return client.Run(ctx, printer{verbose: verbose})
}

// printer writes feed events to stdout.
type printer struct {
	verbose bool
}

func (p printer) OnRounds(data feed.RoundsData, at time.Time) {
	ts := at.Format("15:04:05")
	if p.verbose {
		p.dump(ts, feed.TypeRounds, data)
		return
	}

	fmt.Printf("%s [ROUNDS] %s rounds=%d\n", ts, data.Connection.StatusLabel, len(data.Rounds))
	for _, r := range data.Rounds {
		if !r.IsNew {
			continue
		}
		fmt.Printf("%s [NEW] id=%s multiplier=%.2fx zone=%s %s coord=(%s,%s)\n",
			ts, r.ShortID(8), r.CrashMultiplier, r.Zone, r.ZoneIcon, r.Coordinate.X, r.Coordinate.Y)
	}
}

func (p printer) OnStats(snap poller.StatsSnapshot, at time.Time) {
	ts := at.Format("15:04:05")
	if p.verbose {
		p.dump(ts, feed.TypeStats, snap)
		return
	}

	if snap.Summary == nil {
		fmt.Printf("%s [STATS] %s summary unavailable\n", ts, snap.Connection.StatusLabel)
		return
	}
	fmt.Printf("%s [STATS] %s total=%d avg=%.2fx median=%.2fx max=%.2fx under2x=%d over10x=%d\n",
		ts, snap.Connection.StatusLabel,
		snap.Summary.TotalRounds, snap.Summary.AvgMultiplier, snap.Summary.MedianMultiplier,
		snap.Summary.MaxMultiplier, snap.Summary.Under2xCount, snap.Summary.Over10xCount)
}

func (p printer) dump(ts, msgType string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%s [%s] unprintable: %v\n", ts, msgType, err)
		return
	}
	fmt.Printf("%s [%s] %s\n", ts, msgType, data)
}
