package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// LimitPool reports the limit-up pool for a trading day, and the limit-down
// pool on a best-effort basis: a failed down-pool fetch degrades the result
// instead of failing it.
func (s *Service) LimitPool(ctx context.Context, date string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 20
	}
	day := s.normalizeTradeDate(date)

	up := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_zt_pool_em",
		Args:      []capability.Args{{"date": day}},
	}})
	if !up.OK() {
		return fail("stock_zt_pool_em", up.Err)
	}

	upRecords := recordsOrNil(up.Payload)
	data := map[string]any{
		"date":     day,
		"up_count": len(upRecords),
		"up_items": table.Head(upRecords, topN),
	}
	data["items"] = data["up_items"]

	down := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{Operation: "stock_zt_pool_dtgc_em", Args: []capability.Args{{"date": day}}},
		{Operation: "stock_dt_pool_em", Args: []capability.Args{{"date": day}}},
	})
	if down.OK() {
		downRecords := recordsOrNil(down.Payload)
		data["down_api"] = down.Operation
		data["down_count"] = len(downRecords)
		data["down_items"] = table.Head(downRecords, topN)
	} else {
		data["down_count"] = 0
		data["down_items"] = []core.Record{}
		if down.Err != nil {
			data["down_error"] = down.Err.Error()
		}
	}
	return ok(up.Operation, data)
}
