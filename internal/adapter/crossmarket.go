package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// HKUSMarket lists the Hong Kong or US spot board, optionally narrowed to one
// ticker.
func (s *Service) HKUSMarket(ctx context.Context, market, symbol string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 10
	}
	op := "stock_hk_spot_em"
	scope := "hk"
	if market == "us" || market == "美股" || market == "usa" {
		op = "stock_us_spot_em"
		scope = "us"
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{Operation: op}})
	if !out.OK() {
		return fail(op, out.Err)
	}

	records := recordsOrNil(out.Payload)
	if symbol != "" {
		records = table.FilterBySymbol(records, symbol)
	}
	return ok(out.Operation, map[string]any{
		"scope":  "hk_us_market",
		"market": scope,
		"items":  table.Head(records, topN),
	})
}
