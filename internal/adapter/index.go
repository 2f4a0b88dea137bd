package adapter

import (
	"context"

	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
)

// IndexSpot returns the market index snapshot. The Sina variant is preferred;
// the Eastmoney variant serves as fallback.
func (s *Service) IndexSpot(ctx context.Context, topN int) *core.OperationResult {
	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{Operation: "stock_zh_index_spot_sina"},
		{Operation: "stock_zh_index_spot_em"},
	})
	if !out.OK() {
		return fail("stock_zh_index_spot_sina", out.Err)
	}

	return ok(out.Operation, map[string]any{
		"items": normalized(out.Payload, topN),
	})
}
