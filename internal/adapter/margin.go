package adapter

import (
	"context"
	"fmt"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// MarginLHB combines margin trading detail with the dragon-tiger board for
// one trading day. The two feeds fail independently, the call fails only when
// both do.
func (s *Service) MarginLHB(ctx context.Context, symbol, date string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 10
	}
	code := CleanSymbol(symbol)
	day := s.normalizeTradeDate(date)

	margin := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "stock_margin_detail",
			Args: []capability.Args{
				{"date": day, "symbol": code},
				{"date": day, "stock": code},
				{"date": day, "code": code},
				{"date": day},
			},
		},
		{
			Operation: "stock_margin_detail_em",
			Args:      []capability.Args{{"date": day}, {"trade_date": day}, {}},
		},
		{Operation: "stock_margin_underlying_info_szse"},
		{Operation: "stock_margin_underlying_info_sse"},
	})

	lhb := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "stock_lhb_detail_em",
			Args: []capability.Args{
				{"start_date": day, "end_date": day},
				{"date": day},
				{},
			},
		},
		{
			Operation: "stock_lhb_ggtj_sina",
			Args:      []capability.Args{{"symbol": "5"}, {"symbol": "10"}, {}},
		},
	})

	if !margin.OK() && !lhb.OK() {
		err := fmt.Errorf("margin failed: %v; lhb failed: %v", margin.Err, lhb.Err)
		return fail("margin_lhb", core.WrapError(core.ErrAggregateFailed, err))
	}

	data := map[string]any{
		"scope":  "margin_lhb",
		"symbol": code,
		"date":   day,
	}
	if margin.OK() {
		data["margin_api"] = margin.Operation
		items := table.FilterBySymbol(recordsOrNil(margin.Payload), code)
		data["margin_items"] = table.Head(items, topN)
	} else {
		data["margin_items"] = []core.Record{}
		if margin.Err != nil {
			data["margin_error"] = margin.Err.Error()
		}
	}
	if lhb.OK() {
		data["lhb_api"] = lhb.Operation
		items := table.FilterBySymbol(recordsOrNil(lhb.Payload), code)
		data["lhb_items"] = table.Head(items, topN)
	} else {
		data["lhb_items"] = []core.Record{}
		if lhb.Err != nil {
			data["lhb_error"] = lhb.Err.Error()
		}
	}
	return ok("margin_lhb", data)
}
