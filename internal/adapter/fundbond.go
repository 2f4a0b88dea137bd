package adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// FundBond serves ETF/fund history or the convertible-bond board depending
// on scope.
func (s *Service) FundBond(ctx context.Context, scope, symbol string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 10
	}
	if scope == "bond" || scope == "convertible" || scope == "cb" {
		return s.bond(ctx, symbol, topN)
	}
	return s.fund(ctx, symbol, topN)
}

func (s *Service) fund(ctx context.Context, symbol string, topN int) *core.OperationResult {
	code := CleanSymbol(symbol)
	target := code
	if target == "" {
		target = "159915"
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "fund_etf_hist_em",
			Args: []capability.Args{{
				"symbol":     target,
				"period":     "daily",
				"start_date": s.dateOffset(90),
				"end_date":   s.normalizeTradeDate(""),
				"adjust":     "",
			}},
		},
		{Operation: "fund_etf_spot_em"},
		{Operation: "fund_open_fund_daily_em"},
	})
	if !out.OK() {
		return fail("fund_bond", out.Err)
	}

	records := recordsOrNil(out.Payload)
	if code != "" {
		records = table.FilterBySymbol(records, code)
	}
	for i := range records {
		if _, found := records[i].Get("代码"); !found {
			records[i].Set("代码", target)
		}
	}
	if len(records) > 0 {
		if _, found := records[0].Get("日期"); found {
			sort.SliceStable(records, func(i, j int) bool {
				return recordDate(records[i]) > recordDate(records[j])
			})
		}
	}

	return ok(out.Operation, map[string]any{
		"scope":  "fund",
		"symbol": target,
		"items":  table.Head(records, topN),
	})
}

func (s *Service) bond(ctx context.Context, symbol string, topN int) *core.OperationResult {
	daily := symbol
	if daily == "" {
		daily = "sh113527"
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{Operation: "bond_zh_hs_cov_spot"},
		{Operation: "bond_zh_hs_cov_daily", Args: []capability.Args{{"symbol": daily}}},
	})
	if !out.OK() {
		return fail("fund_bond", out.Err)
	}

	records := recordsOrNil(out.Payload)
	if symbol != "" {
		records = table.FilterBySymbol(records, symbol)
	}
	return ok(out.Operation, map[string]any{
		"scope":  "bond",
		"symbol": symbol,
		"items":  table.Head(records, topN),
	})
}

func recordDate(rec core.Record) string {
	v, _ := rec.Get("日期")
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
