package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetWatchlist godoc
// @Summary      Watchlist symbols
// @Description  Returns the saved watchlist symbols
// @Tags         watchlist
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/watchlist [get]
func (h *Handler) GetWatchlist(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-watchlist")
	defer span.End()

	symbols := h.watchlist.List()
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

// AddToWatchlist godoc
// @Summary      Add symbol to watchlist
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path  string  true  "token symbol"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/watchlist/{symbol} [post]
func (h *Handler) AddToWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.add-to-watchlist")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("watchlist.symbol", symbol))

	h.watchlist.Add(ctx, symbol)
	c.JSON(http.StatusOK, gin.H{"status": "added", "symbol": symbol})
}

// RemoveFromWatchlist godoc
// @Summary      Remove symbol from watchlist
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path  string  true  "token symbol"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/watchlist/{symbol} [delete]
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.remove-from-watchlist")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("watchlist.symbol", symbol))

	h.watchlist.Remove(ctx, symbol)
	c.JSON(http.StatusOK, gin.H{"status": "removed", "symbol": symbol})
}

// GetWatchlistSignals godoc
// @Summary      Signals for watchlisted tokens
// @Description  Returns current signals for watchlist members, strongest movers first
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}  domain.TokenSignal
// @Router       /api/watchlist/signals [get]
func (h *Handler) GetWatchlistSignals(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-watchlist-signals")
	defer span.End()

	results := h.signals.GetWatchlistTokens(ctx)
	c.JSON(http.StatusOK, results)
}
