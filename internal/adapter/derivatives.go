package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// Derivatives serves futures or options boards depending on scope.
func (s *Service) Derivatives(ctx context.Context, scope, symbol string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 10
	}

	var candidates []resolver.Candidate
	kind := "futures"
	if scope == "option" || scope == "options" || scope == "期权" {
		kind = "options"
		candidates = []resolver.Candidate{
			{Operation: "option_current_em"},
			{Operation: "option_cffex_hs300_spot_sina"},
			{
				Operation: "option_finance_board",
				Args:      []capability.Args{{"symbol": "华夏上证50ETF期权"}, {}},
			},
		}
	} else {
		candidates = []resolver.Candidate{
			{Operation: "futures_display_main_sina"},
			{Operation: "match_main_contract", Args: []capability.Args{{"symbol": "cffex"}}},
			{
				Operation: "futures_main_sina",
				Args:      []capability.Args{{"symbol": "IF0"}, {"symbol": "IH0"}, {"symbol": "IC0"}},
			},
		}
	}

	out := s.res.Resolve(ctx, s.cap, candidates)
	if !out.OK() {
		return fail("derivatives", out.Err)
	}

	records := recordsOrNil(out.Payload)
	if symbol != "" {
		records = table.FilterBySymbol(records, symbol)
	}
	return ok(out.Operation, map[string]any{
		"scope":  kind,
		"symbol": symbol,
		"items":  table.Head(records, topN),
	})
}
