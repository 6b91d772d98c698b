package signals

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubProvider struct {
	records []provider.RawRecord
	err     error
	calls   int
}

func (p *stubProvider) FetchRaw(ctx context.Context) ([]provider.RawRecord, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

type slowProvider struct {
	records []provider.RawRecord
	delay   time.Duration
	calls   atomic.Int64
}

func (p *slowProvider) FetchRaw(ctx context.Context) ([]provider.RawRecord, error) {
	p.calls.Add(1)
	time.Sleep(p.delay)
	return p.records, nil
}

type stubWatchlist struct {
	symbols []string
}

func (w *stubWatchlist) List() []string { return w.symbols }

func rawSignal(symbol string, mom float64) provider.RawRecord {
	return provider.RawRecord{
		"symbol":  symbol,
		"metrics": map[string]any{"r_last6h_pct": mom},
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestService(prov Provider, wl Watchlist) (*Service, *testClock) {
	svc := NewService(testTracer, prov, wl, time.Minute)
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clock.Now
	return svc, clock
}

func TestGetTopSignalsGainers(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{
		rawSignal("A", 5), rawSignal("B", 9), rawSignal("C", -1),
	}}
	svc, _ := newTestService(prov, nil)

	got := svc.GetTopSignals(context.Background(), domain.DirectionGainers, 2)
	if len(got) != 2 || got[0].Symbol != "B" || got[1].Symbol != "A" {
		t.Fatalf("unexpected gainers: %+v", got)
	}
	for _, sig := range got {
		if sig.HxMom6 <= 0 {
			t.Fatalf("gainer with non-positive momentum: %+v", sig)
		}
	}
}

func TestGetTopSignalsLosers(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{
		rawSignal("A", -2), rawSignal("B", 4), rawSignal("C", -7),
	}}
	svc, _ := newTestService(prov, nil)

	got := svc.GetTopSignals(context.Background(), domain.DirectionLosers, 10)
	if len(got) != 2 || got[0].Symbol != "C" || got[1].Symbol != "A" {
		t.Fatalf("expected most negative first, got %+v", got)
	}
}

func TestGetTopSignalsFallbackWhenNoMatch(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{
		rawSignal("A", 5), rawSignal("B", 9), rawSignal("C", 1),
	}}
	svc, _ := newTestService(prov, nil)

	got := svc.GetTopSignals(context.Background(), domain.DirectionLosers, 2)
	if len(got) != 2 {
		t.Fatalf("expected unfiltered fallback of 2, got %d", len(got))
	}
	// Fallback keeps snapshot order, not momentum order.
	if got[0].Symbol != "A" || got[1].Symbol != "B" {
		t.Fatalf("fallback should preserve snapshot order, got %+v", got)
	}
}

func TestGetTopSignalsDropsUnnamedRecords(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{
		rawSignal("A", 5),
		{"metrics": map[string]any{"r_last6h_pct": 99.0}},
	}}
	svc, _ := newTestService(prov, nil)

	got := svc.GetTopSignals(context.Background(), domain.DirectionGainers, 10)
	if len(got) != 1 || got[0].Symbol != "A" {
		t.Fatalf("record without symbol should be dropped, got %+v", got)
	}
}

func TestGetTopSignalsFetchFailureReturnsEmpty(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{err: errors.New("boom")}
	svc, _ := newTestService(prov, nil)

	got := svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)
	if len(got) != 0 {
		t.Fatalf("expected empty result on fetch failure, got %+v", got)
	}
	if svc.LastError() == nil {
		t.Fatal("expected LastError to report the failure")
	}
}

func TestCacheFreshness(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{rawSignal("A", 5)}}
	svc, clock := newTestService(prov, nil)

	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)
	if prov.calls != 1 {
		t.Fatalf("expected one fetch, got %d", prov.calls)
	}

	// Within the staleness threshold: no second network call.
	clock.now = clock.now.Add(30 * time.Second)
	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)
	if prov.calls != 1 {
		t.Fatalf("fresh query must not refetch, got %d calls", prov.calls)
	}

	// Past the threshold: exactly one new call.
	clock.now = clock.now.Add(45 * time.Second)
	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)
	if prov.calls != 2 {
		t.Fatalf("stale query must refetch once, got %d calls", prov.calls)
	}
}

func TestConcurrentStaleCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	prov := &slowProvider{
		records: []provider.RawRecord{rawSignal("BTC", 3)},
		delay:   100 * time.Millisecond,
	}
	svc, _ := newTestService(prov, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.GetTopSignals(context.Background(), domain.DirectionGainers, 10)
			if len(got) != 1 || got[0].Symbol != "BTC" {
				t.Errorf("unexpected result: %+v", got)
			}
		}()
	}
	wg.Wait()

	if n := prov.calls.Load(); n != 1 {
		t.Fatalf("concurrent stale callers must share one fetch, got %d", n)
	}
}

func TestSnapshotReplacedWholesale(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{rawSignal("A", 5), rawSignal("B", 2)}}
	svc, clock := newTestService(prov, nil)

	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)

	prov.records = []provider.RawRecord{rawSignal("C", 1)}
	clock.now = clock.now.Add(2 * time.Minute)

	got := svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)
	if len(got) != 1 || got[0].Symbol != "C" {
		t.Fatalf("old snapshot must not be merged in, got %+v", got)
	}
}

func TestGetTokenDetailServedFromFreshCache(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{rawSignal("ABC", 3)}}
	svc, _ := newTestService(prov, nil)

	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)

	detail := svc.GetTokenDetail(context.Background(), "abc")
	if detail == nil {
		t.Fatal("expected detail for cached symbol")
	}
	if detail.Symbol != "ABC" {
		t.Fatalf("unexpected symbol: %s", detail.Symbol)
	}
	if detail.Description == "" {
		t.Fatal("expected synthesized description")
	}
	if prov.calls != 1 {
		t.Fatalf("fresh cache hit must not refetch, got %d calls", prov.calls)
	}
}

func TestGetTokenDetailMissRefetchesOnce(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{rawSignal("ABC", 3)}}
	svc, _ := newTestService(prov, nil)

	svc.GetTopSignals(context.Background(), domain.DirectionGainers, 5)

	if detail := svc.GetTokenDetail(context.Background(), "MISSING"); detail != nil {
		t.Fatalf("expected nil for unknown symbol, got %+v", detail)
	}
	if prov.calls != 2 {
		t.Fatalf("cache miss should refetch once, got %d calls", prov.calls)
	}
}

func TestGetTokenDetailFetchFailure(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{err: errors.New("unreachable")}
	svc, _ := newTestService(prov, nil)

	if detail := svc.GetTokenDetail(context.Background(), "ABC"); detail != nil {
		t.Fatalf("expected nil on fetch failure, got %+v", detail)
	}
}

func TestGetWatchlistTokens(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{
		rawSignal("A", 5), rawSignal("B", 9), rawSignal("C", -12),
	}}
	svc, _ := newTestService(prov, &stubWatchlist{symbols: []string{"B", "C"}})

	got := svc.GetWatchlistTokens(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 watchlist tokens, got %d", len(got))
	}
	// Sorted by descending absolute momentum.
	if got[0].Symbol != "C" || got[1].Symbol != "B" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetWatchlistTokensEmptySkipsNetwork(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{records: []provider.RawRecord{rawSignal("A", 5)}}
	svc, _ := newTestService(prov, &stubWatchlist{})

	got := svc.GetWatchlistTokens(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if prov.calls != 0 {
		t.Fatalf("empty watchlist must not hit the network, got %d calls", prov.calls)
	}
}

func TestRefreshClearsLastError(t *testing.T) {
	t.Parallel()

	prov := &stubProvider{err: errors.New("boom")}
	svc, clock := newTestService(prov, nil)

	_ = svc.Refresh(context.Background())
	if svc.LastError() == nil {
		t.Fatal("expected LastError after failed refresh")
	}

	prov.err = nil
	prov.records = []provider.RawRecord{rawSignal("A", 1)}
	clock.now = clock.now.Add(2 * time.Minute)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.LastError() != nil {
		t.Fatalf("LastError should clear on success, got %v", svc.LastError())
	}
}
