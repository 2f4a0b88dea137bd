package adapter

import (
	"context"
	"fmt"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
)

// Kline returns roughly topN candlesticks for one symbol, newest first. The
// fetch window is padded so that non-trading days cannot starve the request.
func (s *Service) Kline(ctx context.Context, symbol, period string, topN int) *core.OperationResult {
	if period == "" {
		period = "daily"
	}
	if topN <= 0 {
		topN = 60
	}

	days := topN
	switch period {
	case "weekly":
		days = topN * 7
	case "monthly":
		days = topN * 30
	}
	start := s.dateOffset(days + 50)
	end := s.normalizeTradeDate("")

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_zh_a_hist",
		Args: []capability.Args{{
			"symbol":     symbol,
			"period":     period,
			"start_date": start,
			"end_date":   end,
			"adjust":     "",
		}},
	}})
	if !out.OK() {
		return fail("stock_zh_a_hist", out.Err)
	}

	return ok(out.Operation, map[string]any{
		"symbol":     symbol,
		"period":     period,
		"start_date": start,
		"end_date":   end,
		"items":      reversedLimited(out.Payload, topN),
	})
}

// Intraday returns minute bars, falling back to tick detail. When the tick
// path wins, the minute failure rides along as diagnostics.
func (s *Service) Intraday(ctx context.Context, symbol, period string, topN int) *core.OperationResult {
	minutePeriod := "1"
	switch period {
	case "1", "5", "15", "30", "60":
		minutePeriod = period
	}
	if topN <= 0 {
		topN = 30
	}

	minute := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_zh_a_minute",
		Args:      []capability.Args{{"symbol": symbol, "period": minutePeriod, "adjust": ""}},
	}})
	if minute.OK() {
		// Minute bars arrive oldest-first.
		return ok(minute.Operation, map[string]any{
			"symbol": symbol,
			"period": minutePeriod,
			"items":  reversedLimited(minute.Payload, topN),
		})
	}

	tick := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_intraday_em",
		Args:      []capability.Args{{"symbol": symbol}},
	}})
	if !tick.OK() {
		err := fmt.Errorf("minute failed: %v; tick failed: %v", minute.Err, tick.Err)
		return fail("stock_intraday", err)
	}

	data := map[string]any{
		"symbol": symbol,
		"period": "tick",
		"items":  normalized(tick.Payload, topN),
	}
	if minute.Err != nil {
		data["fallback"] = minute.Err.Error()
	}
	return ok(tick.Operation, data)
}
