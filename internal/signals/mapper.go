package signals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"
)

// symbolFields are tried in order; the first non-empty candidate wins.
var symbolFields = []string{"symbol", "ticker", "token", "Token Mentioned"}

// MapTokenSignal normalizes one opaque server record into a TokenSignal.
// Records that yield no symbol return (nil, false) and are dropped by the
// caller; this is never an error for the batch. The capture timestamp is
// the local now, not the server's.
func MapTokenSignal(rec provider.RawRecord, now time.Time) (*domain.TokenSignal, bool) {
	if rec == nil {
		return nil, false
	}

	symbol := extractSymbol(rec)
	if symbol == "" {
		return nil, false
	}

	tokenType := domain.TypeMajorCoin
	if t, _ := rec["type"].(string); t == string(domain.TypeMemecoin) {
		tokenType = domain.TypeMemecoin
	}

	// Computed metrics live under a nested "metrics" object; an absent
	// sub-record reads as empty.
	metrics, _ := rec["metrics"].(map[string]any)

	sig := &domain.TokenSignal{
		Symbol:    symbol,
		Type:      tokenType,
		HxLiq6:    numField(metrics, "d_pct_mktvol_6h"),
		HxBuzz6:   numField(metrics, "d_pct_socvol_6h"),
		HxSent6:   numField(metrics, "d_pct_sent_6h"),
		HxRank6:   numField(metrics, "neg_d_altrank_6h"),
		HxGal6:    numField(metrics, "d_galaxy_6h"),
		HxRet6:    numField(rec, "pred_next6h_pct"),
		Contribs:  numField(metrics, "d_pct_users_6h"),
		Timestamp: now,
	}
	// The ranking key always has a value.
	if mom := numField(metrics, "r_last6h_pct"); mom != nil {
		sig.HxMom6 = *mom
	}

	return sig, true
}

// MapTokenDetail maps a record to the detail shape: the base signal plus
// description, website, and social links. Description is synthesized when
// the record carries none.
func MapTokenDetail(rec provider.RawRecord, now time.Time) (*domain.TokenDetail, bool) {
	base, ok := MapTokenSignal(rec, now)
	if !ok {
		return nil, false
	}

	detail := &domain.TokenDetail{TokenSignal: *base}
	if desc, _ := rec["description"].(string); desc != "" {
		detail.Description = desc
	} else {
		detail.Description = synthesizeDescription(base)
	}
	detail.Website, _ = rec["website"].(string)
	detail.SocialLinks = extractSocialLinks(rec)
	return detail, true
}

func synthesizeDescription(sig *domain.TokenSignal) string {
	momentum := "negative"
	if sig.HxMom6 > 0 {
		momentum = "positive"
	}
	return fmt.Sprintf("%s is a %s with %s momentum signals.", sig.Symbol, sig.Type, momentum)
}

func extractSymbol(rec provider.RawRecord) string {
	for _, field := range symbolFields {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return strings.ToUpper(s)
		}
	}
	return ""
}

func extractSocialLinks(rec provider.RawRecord) *domain.SocialLinks {
	links := &domain.SocialLinks{}
	if raw, ok := rec["social_links"].(map[string]any); ok {
		links.Twitter, _ = raw["twitter"].(string)
		links.Telegram, _ = raw["telegram"].(string)
		links.Discord, _ = raw["discord"].(string)
	} else {
		links.Twitter, _ = rec["twitter"].(string)
		links.Telegram, _ = rec["telegram"].(string)
		links.Discord, _ = rec["discord"].(string)
	}
	if links.Twitter == "" && links.Telegram == "" && links.Discord == "" {
		return nil
	}
	return links
}

// numField coerces a record value to a finite float. Anything else, including
// NaN and non-numeric strings, reads as absent (nil).
func numField(m map[string]any, key string) *float64 {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}

	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}
