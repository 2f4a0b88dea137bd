package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
)

// News returns recent market news, clamped to at most 10 items.
func (s *Service) News(ctx context.Context, topN int) *core.OperationResult {
	topN = clampLimit(topN, 10, 10)

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_news_em",
	}})
	if !out.OK() {
		return fail("stock_news_em", out.Err)
	}
	return ok(out.Operation, map[string]any{
		"items": normalized(out.Payload, topN),
	})
}

// ResearchReport returns recent broker reports for one stock.
func (s *Service) ResearchReport(ctx context.Context, symbol string, topN int) *core.OperationResult {
	code := CleanSymbol(symbol)
	if code == "" {
		return fail("stock_research_report_em", core.ErrMissingSymbol)
	}
	topN = clampLimit(topN, 5, 10)

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_research_report_em",
		Args:      []capability.Args{{"symbol": code}},
	}})
	if !out.OK() {
		return fail("stock_research_report_em", out.Err)
	}
	return ok(out.Operation, map[string]any{
		"symbol": code,
		"items":  normalized(out.Payload, topN),
	})
}
