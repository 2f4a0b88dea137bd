package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// Fundamental returns financial summary rows for one stock, newest report
// first, with the latest report broken out separately.
func (s *Service) Fundamental(ctx context.Context, symbol string, topN int) *core.OperationResult {
	code := CleanSymbol(symbol)
	if code == "" {
		return fail("stock_financial_abstract_ths", core.ErrMissingSymbol)
	}
	if topN <= 0 {
		topN = 20
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "stock_financial_abstract_ths",
			Args: []capability.Args{
				{"symbol": code, "indicator": "按报告期"},
				{"symbol": code, "indicator": "按单季度"},
				{"symbol": code},
				{"stock": code, "indicator": "按报告期"},
				{"stock": code},
			},
		},
		{
			Operation: "stock_financial_analysis_indicator",
			Args:      []capability.Args{{"symbol": code}, {"stock": code}},
		},
	})
	if !out.OK() {
		return fail("stock_financial_abstract_ths", out.Err)
	}

	items := table.Head(table.Reverse(recordsOrNil(out.Payload)), topN)
	latest := core.NewRecord()
	if len(items) > 0 {
		latest = items[0]
	}
	return ok(out.Operation, map[string]any{
		"scope":  "fundamental",
		"symbol": code,
		"latest": latest,
		"items":  items,
	})
}
