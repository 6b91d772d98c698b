package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/abxglia/farcaster-top-signals-browser/internal/chain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
)

// SignalsService is the cached query layer the HTTP surface reads from.
type SignalsService interface {
	GetTopSignals(ctx context.Context, direction domain.Direction, limit int) []domain.TokenSignal
	GetTokenDetail(ctx context.Context, symbol string) *domain.TokenDetail
	GetWatchlistTokens(ctx context.Context) []domain.TokenSignal
	LastError() error
}

type WatchlistStore interface {
	Add(ctx context.Context, symbol string)
	Remove(ctx context.Context, symbol string)
	Contains(symbol string) bool
	List() []string
}

// ViewRecorder persists token detail views for analytics. May be nil when
// Postgres is not configured.
type ViewRecorder interface {
	RecordView(ctx context.Context, view domain.TokenView) error
	CountBySymbol(ctx context.Context, since time.Time) (map[string]int64, error)
}

type Handler struct {
	tracer    trace.Tracer
	signals   SignalsService
	watchlist WatchlistStore
	views     ViewRecorder
	chain     *chain.CounterClient
}

func New(tracer trace.Tracer, signals SignalsService, watchlist WatchlistStore, views ViewRecorder, chainClient *chain.CounterClient) *Handler {
	return &Handler{
		tracer:    tracer,
		signals:   signals,
		watchlist: watchlist,
		views:     views,
		chain:     chainClient,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	{
		api.GET("/signals", h.GetTopSignals)
		api.GET("/signals/:symbol", h.GetTokenDetail)

		api.GET("/watchlist", h.GetWatchlist)
		api.POST("/watchlist/:symbol", h.AddToWatchlist)
		api.DELETE("/watchlist/:symbol", h.RemoveFromWatchlist)
		api.GET("/watchlist/signals", h.GetWatchlistSignals)

		api.GET("/views/top", h.GetTopViewed)

		api.GET("/chain/counter", h.GetCounterStatus)
		api.POST("/chain/counter/increment", h.IncrementCounter)
		api.POST("/chain/mint", h.MintNft)
		api.GET("/chain/nft/:address", h.GetNftBalance)
	}
}
