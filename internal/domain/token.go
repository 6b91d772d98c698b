package domain

import "time"

// TokenType classifies a token the way the signals server does: everything
// that is not explicitly a memecoin counts as a major coin.
type TokenType string

const (
	TypeMajorCoin TokenType = "major coin"
	TypeMemecoin  TokenType = "memecoin"
)

// Direction selects the ranking side for top-signal queries.
type Direction string

const (
	DirectionGainers Direction = "gainers"
	DirectionLosers  Direction = "losers"
)

func (d Direction) IsValid() bool {
	return d == DirectionGainers || d == DirectionLosers
}

// TokenSignal is one analyzed token at a point in time. HxMom6 is the
// 6-hour momentum signal and the sole ranking key; it defaults to 0 when
// the feed omits it. The secondary metrics stay nil when absent so that
// "no signal" is distinguishable from "flat signal" until render time.
type TokenSignal struct {
	Symbol   string    `json:"symbol"`
	Type     TokenType `json:"type"`
	HxMom6   float64   `json:"hx_mom6"`
	HxLiq6   *float64  `json:"hx_liq6,omitempty"`
	HxBuzz6  *float64  `json:"hx_buzz6,omitempty"`
	HxRank6  *float64  `json:"hx_rankimp6,omitempty"`
	HxGal6   *float64  `json:"hx_galchg6,omitempty"`
	HxSent6  *float64  `json:"hx_sent6,omitempty"`
	HxRet6   *float64  `json:"hx_ret6,omitempty"`
	Contribs *float64  `json:"contributors_active,omitempty"`

	// Reserved: the current feed never populates these.
	Price           *float64 `json:"price,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
	Volume24h       *float64 `json:"volume_24h,omitempty"`
	SocialDominance *float64 `json:"social_dominance,omitempty"`
	Sentiment       *float64 `json:"sentiment,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// SocialLinks holds the optional community URLs for a token.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

// TokenDetail extends TokenSignal with descriptive fields for the detail view.
type TokenDetail struct {
	TokenSignal
	Description string       `json:"description"`
	Website     string       `json:"website,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
}

// MetricOrZero is the presentation-boundary default: absent metrics render as 0.
func MetricOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// TokenView is one recorded detail-screen visit, kept for usage analytics.
type TokenView struct {
	Symbol   string    `json:"symbol"`
	Source   string    `json:"source"`
	ViewedAt time.Time `json:"viewed_at"`
}

// CounterStatus is the read-side snapshot of the external counter contract.
type CounterStatus struct {
	Value         uint64 `json:"value"`
	NextMilestone uint64 `json:"next_milestone"`
	AtMilestone   bool   `json:"at_milestone"`
}
