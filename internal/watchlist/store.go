package watchlist

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// storageKey is the single persisted key; its value is a JSON array of
// upper-cased symbols.
const storageKey = "signals-watchlist"

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Store is the durable set of symbols the user has flagged. Mutations are
// idempotent, case-normalized, and persisted immediately. A nil Redis
// client degrades to a session-only set.
type Store struct {
	mu      sync.RWMutex
	symbols map[string]struct{}
	redis   RedisClient
}

// NewStore creates the store and loads the persisted set. Missing or
// unparsable stored data loads as an empty watchlist, never an error.
func NewStore(ctx context.Context, redisClient RedisClient) *Store {
	s := &Store{
		symbols: make(map[string]struct{}),
		redis:   redisClient,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.redis == nil {
		return
	}
	data, err := s.redis.Get(ctx, storageKey).Bytes()
	if err == redis.Nil {
		return
	}
	if err != nil {
		log.Printf("watchlist load error: %v", err)
		return
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		log.Printf("watchlist data unparsable, starting empty: %v", err)
		return
	}
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			s.symbols[sym] = struct{}{}
		}
	}
}

func (s *Store) Add(ctx context.Context, symbol string) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return
	}
	s.mu.Lock()
	s.symbols[sym] = struct{}{}
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, symbol string) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.Lock()
	delete(s.symbols, sym)
	s.mu.Unlock()
	s.persist(ctx)
}

// Contains reports membership, case-insensitively.
func (s *Store) Contains(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.symbols[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// List returns the flagged symbols in no particular order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.symbols))
	for sym := range s.symbols {
		out = append(out, sym)
	}
	return out
}

func (s *Store) persist(ctx context.Context) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(s.List())
	if err != nil {
		log.Printf("watchlist encode error: %v", err)
		return
	}
	if err := s.redis.Set(ctx, storageKey, data, 0).Err(); err != nil {
		log.Printf("watchlist persist error: %v", err)
	}
}
