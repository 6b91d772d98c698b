package signals

import (
	"testing"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"
)

var mapTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestMapTokenSignalBasicRecord(t *testing.T) {
	t.Parallel()

	rec := provider.RawRecord{
		"symbol": "abc",
		"metrics": map[string]any{
			"r_last6h_pct":    12.5,
			"d_pct_mktvol_6h": -3.1,
		},
	}

	sig, ok := MapTokenSignal(rec, mapTime)
	if !ok {
		t.Fatal("expected record to map")
	}
	if sig.Symbol != "ABC" {
		t.Fatalf("expected upper-cased symbol, got %s", sig.Symbol)
	}
	if sig.Type != domain.TypeMajorCoin {
		t.Fatalf("expected major coin, got %s", sig.Type)
	}
	if sig.HxMom6 != 12.5 {
		t.Fatalf("expected hx_mom6 12.5, got %f", sig.HxMom6)
	}
	if sig.HxLiq6 == nil || *sig.HxLiq6 != -3.1 {
		t.Fatalf("unexpected hx_liq6: %v", sig.HxLiq6)
	}
	if sig.HxBuzz6 != nil {
		t.Fatal("absent metric should stay nil, not zero")
	}
	if !sig.Timestamp.Equal(mapTime) {
		t.Fatalf("expected local capture time, got %v", sig.Timestamp)
	}
}

func TestMapTokenSignalSymbolCandidates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  provider.RawRecord
		want string
	}{
		{"ticker fallback", provider.RawRecord{"ticker": "pepe"}, "PEPE"},
		{"token fallback", provider.RawRecord{"token": "wif"}, "WIF"},
		{"display name fallback", provider.RawRecord{"Token Mentioned": "doge"}, "DOGE"},
		{"symbol wins over ticker", provider.RawRecord{"symbol": "btc", "ticker": "eth"}, "BTC"},
		{"empty symbol falls through", provider.RawRecord{"symbol": "", "ticker": "sol"}, "SOL"},
	}

	for _, tc := range cases {
		sig, ok := MapTokenSignal(tc.rec, mapTime)
		if !ok {
			t.Fatalf("%s: expected record to map", tc.name)
		}
		if sig.Symbol != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, sig.Symbol)
		}
	}
}

func TestMapTokenSignalNoSymbolIsDropped(t *testing.T) {
	t.Parallel()

	if _, ok := MapTokenSignal(provider.RawRecord{"metrics": map[string]any{"r_last6h_pct": 5.0}}, mapTime); ok {
		t.Fatal("record without any symbol candidate should not map")
	}
	if _, ok := MapTokenSignal(nil, mapTime); ok {
		t.Fatal("nil record should not map")
	}
}

func TestMapTokenSignalType(t *testing.T) {
	t.Parallel()

	sig, _ := MapTokenSignal(provider.RawRecord{"symbol": "PEPE", "type": "memecoin"}, mapTime)
	if sig.Type != domain.TypeMemecoin {
		t.Fatalf("expected memecoin, got %s", sig.Type)
	}

	// Only the literal "memecoin" is recognized.
	sig, _ = MapTokenSignal(provider.RawRecord{"symbol": "BTC", "type": "stablecoin"}, mapTime)
	if sig.Type != domain.TypeMajorCoin {
		t.Fatalf("expected major coin, got %s", sig.Type)
	}
}

func TestMapTokenSignalNumericCoercion(t *testing.T) {
	t.Parallel()

	rec := provider.RawRecord{
		"symbol":          "abc",
		"pred_next6h_pct": "4.25",
		"metrics": map[string]any{
			"r_last6h_pct":    "not a number",
			"d_pct_socvol_6h": "7",
			"d_galaxy_6h":     true,
		},
	}

	sig, _ := MapTokenSignal(rec, mapTime)
	if sig.HxMom6 != 0 {
		t.Fatalf("uncoercible momentum should default to 0, got %f", sig.HxMom6)
	}
	if sig.HxRet6 == nil || *sig.HxRet6 != 4.25 {
		t.Fatalf("top-level numeric string should coerce, got %v", sig.HxRet6)
	}
	if sig.HxBuzz6 == nil || *sig.HxBuzz6 != 7 {
		t.Fatalf("numeric string should coerce, got %v", sig.HxBuzz6)
	}
	if sig.HxGal6 != nil {
		t.Fatal("boolean should read as absent")
	}
}

func TestMapTokenSignalIdempotentModuloTimestamp(t *testing.T) {
	t.Parallel()

	rec := provider.RawRecord{
		"symbol": "eth",
		"type":   "memecoin",
		"metrics": map[string]any{
			"r_last6h_pct":  -2.5,
			"d_pct_sent_6h": 1.0,
		},
	}

	first, _ := MapTokenSignal(rec, mapTime)
	second, _ := MapTokenSignal(rec, mapTime.Add(time.Hour))

	second.Timestamp = first.Timestamp
	if *second.HxSent6 != *first.HxSent6 || second.Symbol != first.Symbol ||
		second.Type != first.Type || second.HxMom6 != first.HxMom6 {
		t.Fatalf("mapping is not idempotent: %+v vs %+v", first, second)
	}
}

func TestMapTokenDetailSynthesizesDescription(t *testing.T) {
	t.Parallel()

	detail, ok := MapTokenDetail(provider.RawRecord{
		"symbol":  "abc",
		"metrics": map[string]any{"r_last6h_pct": 3.0},
	}, mapTime)
	if !ok {
		t.Fatal("expected record to map")
	}
	if detail.Description != "ABC is a major coin with positive momentum signals." {
		t.Fatalf("unexpected description: %s", detail.Description)
	}

	detail, _ = MapTokenDetail(provider.RawRecord{
		"symbol":  "xyz",
		"type":    "memecoin",
		"metrics": map[string]any{"r_last6h_pct": -3.0},
	}, mapTime)
	if detail.Description != "XYZ is a memecoin with negative momentum signals." {
		t.Fatalf("unexpected description: %s", detail.Description)
	}
}

func TestMapTokenDetailPassthrough(t *testing.T) {
	t.Parallel()

	detail, _ := MapTokenDetail(provider.RawRecord{
		"symbol":      "abc",
		"description": "hand-written blurb",
		"website":     "https://abc.example",
		"social_links": map[string]any{
			"twitter": "https://x.com/abc",
		},
	}, mapTime)
	if detail.Description != "hand-written blurb" {
		t.Fatalf("description should pass through, got %s", detail.Description)
	}
	if detail.Website != "https://abc.example" {
		t.Fatalf("website should pass through, got %s", detail.Website)
	}
	if detail.SocialLinks == nil || detail.SocialLinks.Twitter != "https://x.com/abc" {
		t.Fatalf("unexpected social links: %+v", detail.SocialLinks)
	}
}

func TestMapTokenDetailTopLevelSocialFallback(t *testing.T) {
	t.Parallel()

	detail, _ := MapTokenDetail(provider.RawRecord{
		"symbol":   "abc",
		"telegram": "https://t.me/abc",
		"discord":  "https://discord.gg/abc",
	}, mapTime)
	if detail.SocialLinks == nil || detail.SocialLinks.Telegram != "https://t.me/abc" || detail.SocialLinks.Discord != "https://discord.gg/abc" {
		t.Fatalf("unexpected social links: %+v", detail.SocialLinks)
	}
}
