package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetCounterStatus godoc
// @Summary      On-chain counter status
// @Description  Returns the counter value, next NFT milestone and whether a mint is available
// @Tags         chain
// @Produce      json
// @Success      200  {object}  domain.CounterStatus
// @Failure      503  {object}  map[string]string
// @Router       /api/chain/counter [get]
func (h *Handler) GetCounterStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-counter-status")
	defer span.End()

	if h.chain == nil || !h.chain.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chain features not configured"})
		return
	}

	status, err := h.chain.CounterStatus(ctx)
	if err != nil {
		log.Printf("failed to read counter status: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read counter"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// IncrementCounter godoc
// @Summary      Increment the on-chain counter
// @Description  Submits an increment transaction and waits for the receipt
// @Tags         chain
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      502  {object}  map[string]string
// @Router       /api/chain/counter/increment [post]
func (h *Handler) IncrementCounter(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.increment-counter")
	defer span.End()

	if h.chain == nil || !h.chain.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chain features not configured"})
		return
	}

	tx, err := h.chain.IncrementCounter(ctx)
	if err != nil {
		log.Printf("increment transaction failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "increment transaction failed"})
		return
	}
	span.SetAttributes(attribute.String("chain.tx-hash", tx.Hash))

	ok, err := tx.Wait(ctx)
	if err != nil {
		log.Printf("increment receipt wait failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction submitted but receipt unavailable", "tx": tx.Hash})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx": tx.Hash, "confirmed": ok})
}

// MintNft godoc
// @Summary      Mint the milestone NFT
// @Description  Mints an NFT when the counter sits on a multiple of ten
// @Tags         chain
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]string
// @Router       /api/chain/mint [post]
func (h *Handler) MintNft(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.mint-nft")
	defer span.End()

	if h.chain == nil || !h.chain.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chain features not configured"})
		return
	}

	status, err := h.chain.CounterStatus(ctx)
	if err != nil {
		log.Printf("failed to read counter before mint: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read counter"})
		return
	}
	if !status.AtMilestone {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "counter is not at a milestone",
			"counter":        status.Value,
			"next_milestone": status.NextMilestone,
		})
		return
	}

	tx, err := h.chain.MintAtMilestone(ctx)
	if err != nil {
		log.Printf("mint transaction failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "mint transaction failed"})
		return
	}
	span.SetAttributes(attribute.String("chain.tx-hash", tx.Hash))

	ok, err := tx.Wait(ctx)
	if err != nil {
		log.Printf("mint receipt wait failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction submitted but receipt unavailable", "tx": tx.Hash})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx": tx.Hash, "confirmed": ok})
}

// GetNftBalance godoc
// @Summary      Milestone NFT balance
// @Tags         chain
// @Produce      json
// @Param        address  path  string  true  "wallet address"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/chain/nft/{address} [get]
func (h *Handler) GetNftBalance(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-nft-balance")
	defer span.End()

	if h.chain == nil || !h.chain.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chain features not configured"})
		return
	}

	address := strings.TrimSpace(c.Param("address"))
	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address must be a 0x-prefixed 20-byte hex string"})
		return
	}
	span.SetAttributes(attribute.String("chain.address", address))

	balance, err := h.chain.NFTBalance(ctx, address)
	if err != nil {
		log.Printf("failed to read NFT balance for %s: %v", address, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
}
