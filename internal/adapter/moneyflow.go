package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
)

// MoneyFlow returns the per-stock fund flow history, newest first.
func (s *Service) MoneyFlow(ctx context.Context, symbol string, topN int) *core.OperationResult {
	code := CleanSymbol(symbol)
	if code == "" {
		return fail("stock_individual_fund_flow", core.ErrMissingSymbol)
	}
	if topN <= 0 {
		topN = 30
	}
	market := MarketFromSymbol(code)

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_individual_fund_flow",
		Args:      []capability.Args{{"stock": code, "market": market}},
	}})
	if !out.OK() {
		return fail("stock_individual_fund_flow", out.Err)
	}
	return ok(out.Operation, map[string]any{
		"scope":  "individual",
		"symbol": code,
		"market": market,
		"items":  reversedLimited(out.Payload, topN),
	})
}

// MarketMoneyFlow reports market-wide flows, falling back through the
// northbound summary feeds when the aggregate feed is unavailable.
func (s *Service) MarketMoneyFlow(ctx context.Context, date string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 20
	}
	day := s.normalizeTradeDate(date)

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{Operation: "stock_market_fund_flow"},
		{Operation: "stock_hsgt_fund_flow_summary_em"},
		{Operation: "stock_hsgt_north_net_flow_in_em"},
		{
			Operation: "stock_hsgt_hist_em",
			Args: []capability.Args{
				{"symbol": "北向资金"},
				{"symbol": "沪股通"},
				{"symbol": "深股通"},
			},
		},
	})
	if !out.OK() {
		return fail("market_money_flow", out.Err)
	}
	return ok(out.Operation, map[string]any{
		"scope": "market",
		"date":  day,
		"items": reversedLimited(out.Payload, topN),
	})
}

// SectorMoneyFlow ranks sectors by fund flow.
func (s *Service) SectorMoneyFlow(ctx context.Context, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 20
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "stock_sector_fund_flow_rank",
			Args: []capability.Args{
				{"indicator": "今日", "sector_type": "行业资金流"},
				{"indicator": "5日", "sector_type": "行业资金流"},
				{"indicator": "10日", "sector_type": "行业资金流"},
				{"symbol": "今日", "sector_type": "行业资金流"},
				{"sector_type": "行业资金流"},
			},
		},
		{
			Operation: "stock_fund_flow_industry",
			Args:      []capability.Args{{"symbol": "今日"}, {"symbol": "即时"}, {}},
		},
		{
			Operation: "stock_sector_fund_flow_summary",
			Args:      []capability.Args{{"sector_type": "行业资金流"}, {}},
		},
	})
	if !out.OK() {
		return fail("sector_money_flow", out.Err)
	}
	return ok(out.Operation, map[string]any{
		"scope": "sector",
		"items": normalized(out.Payload, topN),
	})
}
