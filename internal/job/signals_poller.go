package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SignalsPoller keeps the signals cache warm and prunes old view records.
type SignalsPoller struct {
	tracer        trace.Tracer
	signals       SignalsRefresher
	views         ViewPruner
	pollInterval  time.Duration
	retention     time.Duration
	sweepInterval time.Duration
}

type SignalsRefresher interface {
	Refresh(ctx context.Context) error
}

// ViewPruner deletes token view rows older than a cutoff. May be nil when
// Postgres is not configured.
type ViewPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func NewSignalsPoller(tracer trace.Tracer, signals SignalsRefresher, views ViewPruner, pollIntervalSecs, retentionDays int) *SignalsPoller {
	return &SignalsPoller{
		tracer:        tracer,
		signals:       signals,
		views:         views,
		pollInterval:  time.Duration(pollIntervalSecs) * time.Second,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
		sweepInterval: 24 * time.Hour,
	}
}

// Start launches background polling goroutines. Blocks until ctx is cancelled.
func (p *SignalsPoller) Start(ctx context.Context) {
	log.Println("Signals poller starting...")

	go p.pollLoop(ctx, "signals-refresh", p.pollInterval, func(ctx context.Context) error {
		return p.signals.Refresh(ctx)
	})

	if p.views != nil {
		go p.sweepViews(ctx)
	}

	<-ctx.Done()
	log.Println("Signals poller stopped")
}

func (p *SignalsPoller) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	// Run immediately on start
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}

func (p *SignalsPoller) sweepViews(ctx context.Context) {
	// Stagger behind the first refresh
	select {
	case <-ctx.Done():
		return
	case <-time.After(30 * time.Second):
	}

	p.pruneOnce(ctx)

	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pruneOnce(ctx)
		}
	}
}

func (p *SignalsPoller) pruneOnce(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.prune-token-views")
	defer span.End()

	cutoff := time.Now().UTC().Add(-p.retention)
	deleted, err := p.views.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("token view prune error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("pruned %d token views older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
