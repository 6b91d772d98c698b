package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
)

// GetTopSignals godoc
// @Summary      Top token signals
// @Description  Returns tokens ranked by 6h momentum, best gainers or worst losers first
// @Tags         signals
// @Produce      json
// @Param        direction  query  string  false  "gainers or losers"  default(gainers)
// @Param        limit      query  int     false  "max results"        default(20)
// @Success      200  {array}   domain.TokenSignal
// @Failure      400  {object}  map[string]string
// @Router       /api/signals [get]
func (h *Handler) GetTopSignals(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-top-signals")
	defer span.End()

	direction := domain.Direction(strings.ToLower(c.DefaultQuery("direction", string(domain.DirectionGainers))))
	if !direction.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be gainers or losers"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	span.SetAttributes(
		attribute.String("signals.direction", string(direction)),
		attribute.Int("signals.limit", limit),
	)

	results := h.signals.GetTopSignals(ctx, direction, limit)
	c.JSON(http.StatusOK, results)
}

// GetTokenDetail godoc
// @Summary      Token detail
// @Description  Returns the full signal detail for one token symbol
// @Tags         signals
// @Produce      json
// @Param        symbol  path  string  true  "token symbol"
// @Success      200  {object}  domain.TokenDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/signals/{symbol} [get]
func (h *Handler) GetTokenDetail(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-token-detail")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	span.SetAttributes(attribute.String("signals.symbol", symbol))

	detail := h.signals.GetTokenDetail(ctx, symbol)
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "token not found: " + symbol})
		return
	}

	if h.views != nil {
		view := domain.TokenView{Symbol: symbol, Source: "http", ViewedAt: time.Now().UTC()}
		if err := h.views.RecordView(ctx, view); err != nil {
			log.Printf("failed to record view for %s: %v", symbol, err)
		}
	}

	c.JSON(http.StatusOK, detail)
}

// GetTopViewed godoc
// @Summary      Most viewed tokens
// @Description  Returns view counts per token over the past N days
// @Tags         signals
// @Produce      json
// @Param        days  query  int  false  "lookback window in days"  default(7)
// @Success      200  {object}  map[string]int64
// @Failure      503  {object}  map[string]string
// @Router       /api/views/top [get]
func (h *Handler) GetTopViewed(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-top-viewed")
	defer span.End()

	if h.views == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "view tracking not configured"})
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	counts, err := h.views.CountBySymbol(ctx, since)
	if err != nil {
		log.Printf("failed to count token views: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load view counts"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
