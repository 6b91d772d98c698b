package signals

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheTTL     = 60 * time.Second
	defaultSignalsLimit = 20
)

type Provider interface {
	FetchRaw(ctx context.Context) ([]provider.RawRecord, error)
}

type Watchlist interface {
	List() []string
}

// snapshot is the full normalized batch plus its capture time. It is
// replaced wholesale and never mutated, so readers always observe the
// signals and their age as one unit.
type snapshot struct {
	signals   []domain.TokenSignal
	details   map[string]domain.TokenDetail
	fetchedAt time.Time
}

func (s *snapshot) fresh(now time.Time, ttl time.Duration) bool {
	return s != nil && now.Sub(s.fetchedAt) <= ttl
}

// Service is the single point of truth for the current signal set. It
// serves ranked, filtered, and detail views from a bounded-staleness cache
// and never surfaces fetch failures to its callers: queries return empty
// results (or nil for detail lookups) and log the diagnostic instead.
type Service struct {
	tracer    trace.Tracer
	provider  Provider
	watchlist Watchlist
	ttl       time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	snap    *snapshot
	lastErr error

	// Concurrent stale callers attach to one in-flight fetch instead of
	// each issuing their own.
	flight singleflight.Group
}

func NewService(tracer trace.Tracer, prov Provider, watchlist Watchlist, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		tracer:    tracer,
		provider:  prov,
		watchlist: watchlist,
		ttl:       ttl,
		now:       time.Now,
	}
}

// GetTopSignals returns up to limit signals for the given direction:
// gainers are hx_mom6 > 0 sorted descending, losers are hx_mom6 < 0 sorted
// ascending. When no entry matches the direction it falls back to the
// unfiltered snapshot so the consumer is never starved by sign distribution
// alone. Fetch failures yield an empty slice.
func (s *Service) GetTopSignals(ctx context.Context, direction domain.Direction, limit int) []domain.TokenSignal {
	_, span := s.tracer.Start(ctx, "signals-service.get-top-signals")
	defer span.End()

	if limit <= 0 {
		limit = defaultSignalsLimit
	}

	snap, err := s.ensureFresh(ctx)
	if err != nil {
		log.Printf("top signals: refresh failed: %v", err)
		return []domain.TokenSignal{}
	}

	filtered := make([]domain.TokenSignal, 0, len(snap.signals))
	for _, sig := range snap.signals {
		if direction == domain.DirectionLosers {
			if sig.HxMom6 < 0 {
				filtered = append(filtered, sig)
			}
		} else if sig.HxMom6 > 0 {
			filtered = append(filtered, sig)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if direction == domain.DirectionLosers {
			return filtered[i].HxMom6 < filtered[j].HxMom6
		}
		return filtered[i].HxMom6 > filtered[j].HxMom6
	})

	ranked := filtered
	if len(ranked) == 0 {
		ranked = snap.signals
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return append([]domain.TokenSignal(nil), ranked...)
}

// GetTokenDetail looks up one symbol case-insensitively. A fresh cached hit
// is served directly; otherwise one refresh happens first. Returns nil when
// the symbol is absent after refresh or the fetch fails.
func (s *Service) GetTokenDetail(ctx context.Context, symbol string) *domain.TokenDetail {
	_, span := s.tracer.Start(ctx, "signals-service.get-token-detail")
	defer span.End()

	upper := strings.ToUpper(strings.TrimSpace(symbol))
	if upper == "" {
		return nil
	}

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap.fresh(s.now(), s.ttl) {
		if detail, ok := snap.details[upper]; ok {
			return &detail
		}
	}

	// A miss on a fresh snapshot still refetches once: the symbol may have
	// entered the feed since the last capture.
	snap, err := s.refreshNow(ctx, true)
	if err != nil {
		log.Printf("token detail %s: refresh failed: %v", upper, err)
		return nil
	}
	if detail, ok := snap.details[upper]; ok {
		return &detail
	}
	return nil
}

// GetWatchlistTokens resolves the watchlist against the snapshot, sorted by
// descending absolute momentum. An empty watchlist returns immediately
// without a network call.
func (s *Service) GetWatchlistTokens(ctx context.Context) []domain.TokenSignal {
	_, span := s.tracer.Start(ctx, "signals-service.get-watchlist-tokens")
	defer span.End()

	if s.watchlist == nil {
		return []domain.TokenSignal{}
	}
	symbols := s.watchlist.List()
	if len(symbols) == 0 {
		return []domain.TokenSignal{}
	}

	snap, err := s.ensureFresh(ctx)
	if err != nil {
		log.Printf("watchlist tokens: refresh failed: %v", err)
		return []domain.TokenSignal{}
	}

	wanted := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		wanted[strings.ToUpper(sym)] = struct{}{}
	}

	matches := make([]domain.TokenSignal, 0, len(symbols))
	for _, sig := range snap.signals {
		if _, ok := wanted[sig.Symbol]; ok {
			matches = append(matches, sig)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return abs(matches[i].HxMom6) > abs(matches[j].HxMom6)
	})
	return matches
}

// Refresh forces a fetch regardless of snapshot age. Used by the background
// warmer; query paths refresh lazily.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.refreshNow(ctx, true)
	return err
}

// LastError reports the most recent refresh failure, or nil after a
// successful refresh. Query results stay total regardless; this exists only
// so the health surface can distinguish "no data" from "upstream down".
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ensureFresh returns the current snapshot, fetching first when it is
// missing or older than the staleness threshold.
func (s *Service) ensureFresh(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap.fresh(s.now(), s.ttl) {
		return snap, nil
	}
	return s.refreshNow(ctx, false)
}

func (s *Service) refreshNow(ctx context.Context, force bool) (*snapshot, error) {
	v, err, _ := s.flight.Do("refresh", func() (any, error) {
		// A coalesced caller may arrive just after the previous flight
		// completed; serve that result instead of fetching again.
		if !force {
			s.mu.RLock()
			snap := s.snap
			s.mu.RUnlock()
			if snap.fresh(s.now(), s.ttl) {
				return snap, nil
			}
		}

		records, err := s.provider.FetchRaw(ctx)
		if err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return nil, err
		}

		next := buildSnapshot(records, s.now())
		s.mu.Lock()
		s.snap = next
		s.lastErr = nil
		s.mu.Unlock()

		log.Printf("cached %d signals", len(next.signals))
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

// buildSnapshot normalizes the raw batch, dropping records without a
// resolvable symbol, and indexes details by symbol.
func buildSnapshot(records []provider.RawRecord, now time.Time) *snapshot {
	signals := make([]domain.TokenSignal, 0, len(records))
	details := make(map[string]domain.TokenDetail, len(records))
	for _, rec := range records {
		sig, ok := MapTokenSignal(rec, now)
		if !ok {
			continue
		}
		signals = append(signals, *sig)
		if detail, ok := MapTokenDetail(rec, now); ok {
			details[sig.Symbol] = *detail
		}
	}
	return &snapshot{signals: signals, details: details, fetchedAt: now}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
