package adapter

import (
	"context"
	"sort"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

var pctKeys = []string{"涨跌幅", "今日涨跌幅", "涨跌幅%", "涨跌"}

// SectorAnalysis ranks industry or concept boards by daily change, surfacing
// both the top gainers and the top losers.
func (s *Service) SectorAnalysis(ctx context.Context, sectorType string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 10
	}
	kind := "行业"
	scope := "industry"
	spotIndicator := "新浪行业"
	if sectorType == "concept" || sectorType == "概念" {
		kind = "概念"
		scope = "concept"
		spotIndicator = "概念"
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{
		{
			Operation: "stock_sector_name_code",
			Args: []capability.Args{
				{"indicator": "今日涨跌幅", "sector_type": kind},
				{"sector_type": kind},
			},
		},
		{
			Operation: "stock_sector_spot",
			Args:      []capability.Args{{"indicator": spotIndicator}},
		},
	})
	if !out.OK() {
		return fail("stock_sector_name_code", out.Err)
	}

	records := recordsOrNil(out.Payload)
	gain := make([]core.Record, len(records))
	copy(gain, records)
	sort.SliceStable(gain, func(i, j int) bool {
		return sectorPct(gain[i], -9999) > sectorPct(gain[j], -9999)
	})
	drop := make([]core.Record, len(records))
	copy(drop, records)
	sort.SliceStable(drop, func(i, j int) bool {
		return sectorPct(drop[i], 9999) < sectorPct(drop[j], 9999)
	})

	topGain := table.Head(gain, topN)
	return ok(out.Operation, map[string]any{
		"scope":       "sector_analysis",
		"sector_type": scope,
		"top_gain":    topGain,
		"top_drop":    table.Head(drop, topN),
		"items":       topGain,
	})
}

// sectorPct reads the change-percent field, sorting rows without one to the
// tail regardless of direction.
func sectorPct(rec core.Record, missing float64) float64 {
	if v, found := table.FieldFloat(rec, pctKeys...); found {
		return v
	}
	return missing
}
