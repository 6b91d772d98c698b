package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/handler"
)

func StartTelegramBot(token string, signals handler.SignalsService, watchlist handler.WatchlistStore) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/signals", func(c tele.Context) error {
		direction := domain.DirectionGainers
		limit := 5
		args := c.Args()
		if len(args) > 0 {
			direction = domain.Direction(strings.ToLower(args[0]))
			if !direction.IsValid() {
				return c.Send("Usage: /signals [gainers|losers] [count]")
			}
		}
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				limit = n
			}
		}
		results := signals.GetTopSignals(context.Background(), direction, limit)
		return c.Send(formatSignals(direction, results))
	})

	b.Handle("/token", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /token PEPE")
		}
		symbol := strings.ToUpper(args[0])
		detail := signals.GetTokenDetail(context.Background(), symbol)
		if detail == nil {
			return c.Send(fmt.Sprintf("No signal found for %s", symbol))
		}
		return c.Send(formatDetail(detail))
	})

	b.Handle("/watch", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /watch PEPE")
		}
		symbol := strings.ToUpper(args[0])
		watchlist.Add(context.Background(), symbol)
		return c.Send(fmt.Sprintf("Added %s to the watchlist", symbol))
	})

	b.Handle("/unwatch", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /unwatch PEPE")
		}
		symbol := strings.ToUpper(args[0])
		watchlist.Remove(context.Background(), symbol)
		return c.Send(fmt.Sprintf("Removed %s from the watchlist", symbol))
	})

	b.Handle("/watchlist", func(c tele.Context) error {
		results := signals.GetWatchlistTokens(context.Background())
		if len(results) == 0 {
			saved := watchlist.List()
			if len(saved) == 0 {
				return c.Send("Watchlist is empty. Add tokens with /watch SYMBOL")
			}
			return c.Send("No current signals for: " + strings.Join(saved, ", "))
		}
		return c.Send(formatWatchlist(results))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatSignals(direction domain.Direction, results []domain.TokenSignal) string {
	if len(results) == 0 {
		return "No signals available right now, try again shortly."
	}
	var sb strings.Builder
	if direction == domain.DirectionLosers {
		sb.WriteString("Top losers (6h momentum)\n")
	} else {
		sb.WriteString("Top gainers (6h momentum)\n")
	}
	for i, sig := range results {
		fmt.Fprintf(&sb, "%d. %s (%s) %+.2f%%\n", i+1, sig.Symbol, sig.Type, sig.HxMom6)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatDetail(detail *domain.TokenDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", detail.Symbol, detail.Type)
	fmt.Fprintf(&sb, "Momentum 6h: %+.2f%%\n", detail.HxMom6)
	fmt.Fprintf(&sb, "Liquidity 6h: %+.2f%%\n", domain.MetricOrZero(detail.HxLiq6))
	fmt.Fprintf(&sb, "Social buzz 6h: %+.2f%%\n", domain.MetricOrZero(detail.HxBuzz6))
	fmt.Fprintf(&sb, "Sentiment 6h: %+.2f%%\n", domain.MetricOrZero(detail.HxSent6))
	fmt.Fprintf(&sb, "Predicted next 6h: %+.2f%%\n", domain.MetricOrZero(detail.HxRet6))
	if detail.Description != "" {
		sb.WriteString(detail.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatWatchlist(results []domain.TokenSignal) string {
	var sb strings.Builder
	sb.WriteString("Watchlist signals\n")
	for _, sig := range results {
		fmt.Fprintf(&sb, "%s %+.2f%%\n", sig.Symbol, sig.HxMom6)
	}
	return strings.TrimRight(sb.String(), "\n")
}
