package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/sha3"
)

// CounterClient consumes the Top Signals counter contract over JSON-RPC:
// reads via eth_call, writes via eth_sendTransaction against a node that
// holds the sending account. The contract's internal logic stays external;
// only its call surface is modeled here.
type CounterClient struct {
	client       *http.Client
	rpcURL       string
	contract     string
	from         string
	tracer       trace.Tracer
	pollInterval time.Duration
}

func NewCounterClient(tracer trace.Tracer, rpcURL, contract, from string) *CounterClient {
	return &CounterClient{
		client:       &http.Client{Timeout: 20 * time.Second},
		rpcURL:       strings.TrimSpace(rpcURL),
		contract:     strings.TrimSpace(contract),
		from:         strings.TrimSpace(from),
		tracer:       tracer,
		pollInterval: 2 * time.Second,
	}
}

// Enabled reports whether a contract endpoint is configured at all.
func (c *CounterClient) Enabled() bool {
	return c.rpcURL != "" && c.contract != ""
}

// CounterStatus reads the counter value, the next mint-gating milestone, and
// whether the counter currently sits on one.
func (c *CounterClient) CounterStatus(ctx context.Context) (*domain.CounterStatus, error) {
	_, span := c.tracer.Start(ctx, "chain.counter-status")
	defer span.End()

	value, err := c.readUint(ctx, "getCounter()")
	if err != nil {
		return nil, fmt.Errorf("read counter: %w", err)
	}
	next, err := c.readUint(ctx, "getNextCounterMilestone()")
	if err != nil {
		return nil, fmt.Errorf("read next milestone: %w", err)
	}
	atMilestone, err := c.readBool(ctx, "isCounterMultipleOfTen()")
	if err != nil {
		return nil, fmt.Errorf("read milestone flag: %w", err)
	}

	return &domain.CounterStatus{
		Value:         value,
		NextMilestone: next,
		AtMilestone:   atMilestone,
	}, nil
}

// NFTBalance returns the milestone-NFT balance for an address.
func (c *CounterClient) NFTBalance(ctx context.Context, address string) (uint64, error) {
	_, span := c.tracer.Start(ctx, "chain.nft-balance")
	defer span.End()

	data := selector("balanceOf(address)") + padAddress(address)
	out, err := c.ethCall(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("read nft balance: %w", err)
	}
	return decodeUint(out)
}

// IncrementCounter submits the increment transaction and returns a handle
// whose completion can be awaited.
func (c *CounterClient) IncrementCounter(ctx context.Context) (*TxHandle, error) {
	_, span := c.tracer.Start(ctx, "chain.increment-counter")
	defer span.End()

	return c.sendTransaction(ctx, selector("incrementCounter()"))
}

// MintAtMilestone submits the milestone NFT mint.
func (c *CounterClient) MintAtMilestone(ctx context.Context) (*TxHandle, error) {
	_, span := c.tracer.Start(ctx, "chain.mint-at-milestone")
	defer span.End()

	return c.sendTransaction(ctx, selector("mintNftAtMilestone()"))
}

// TxHandle is a submitted transaction whose outcome can be awaited.
type TxHandle struct {
	Hash   string
	client *CounterClient
}

// Wait polls for the transaction receipt until mined or ctx expires.
// Returns true when the transaction succeeded.
func (h *TxHandle) Wait(ctx context.Context) (bool, error) {
	ticker := time.NewTicker(h.client.pollInterval)
	defer ticker.Stop()

	for {
		var receipt *struct {
			Status string `json:"status"`
		}
		if err := h.client.rpc(ctx, "eth_getTransactionReceipt", []any{h.Hash}, &receipt); err != nil {
			return false, err
		}
		if receipt != nil {
			return receipt.Status == "0x1", nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *CounterClient) readUint(ctx context.Context, signature string) (uint64, error) {
	out, err := c.ethCall(ctx, selector(signature))
	if err != nil {
		return 0, err
	}
	return decodeUint(out)
}

func (c *CounterClient) readBool(ctx context.Context, signature string) (bool, error) {
	n, err := c.readUint(ctx, signature)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (c *CounterClient) ethCall(ctx context.Context, data string) (string, error) {
	params := []any{
		map[string]string{"to": c.contract, "data": "0x" + data},
		"latest",
	}
	var out string
	if err := c.rpc(ctx, "eth_call", params, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *CounterClient) sendTransaction(ctx context.Context, data string) (*TxHandle, error) {
	tx := map[string]string{
		"from":  c.from,
		"to":    c.contract,
		"data":  "0x" + data,
		"value": "0x0",
	}
	var hash string
	if err := c.rpc(ctx, "eth_sendTransaction", []any{tx}, &hash); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	return &TxHandle{Hash: hash, client: c}, nil
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *CounterClient) rpc(ctx context.Context, method string, params []any, result any) error {
	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("parse rpc response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("rpc %s: %d %s", method, envelope.Error.Code, envelope.Error.Message)
	}
	if result != nil && len(envelope.Result) > 0 {
		return json.Unmarshal(envelope.Result, result)
	}
	return nil
}

// selector is the 4-byte ABI selector for a method signature, hex-encoded.
func selector(signature string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return hex.EncodeToString(h.Sum(nil)[:4])
}

// padAddress left-pads a hex address to a 32-byte ABI word.
func padAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(address), "0x"))
	return strings.Repeat("0", 64-len(addr)) + addr
}

// decodeUint parses a 0x-prefixed ABI word into a uint64.
func decodeUint(out string) (uint64, error) {
	hexStr := strings.TrimPrefix(strings.TrimSpace(out), "0x")
	if hexStr == "" {
		return 0, nil
	}
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return 0, fmt.Errorf("malformed uint word: %q", out)
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("value out of range: %s", n)
	}
	return n.Uint64(), nil
}
