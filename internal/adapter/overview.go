package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/table"
)

var (
	overviewCodeKeys = []string{"代码", "股票代码", "证券代码", "symbol"}
	overviewNameKeys = []string{"名称", "股票简称", "证券简称", "简称"}
)

// StockOverview aggregates five independent views of one stock: realtime
// quote, fund flow, fundamentals, a ten-day limit-pool scan, and broker
// reports. Sections fail independently and the call fails only when every
// section does.
func (s *Service) StockOverview(ctx context.Context, symbol string) *core.OperationResult {
	code := CleanSymbol(symbol)
	if code == "" {
		return fail("stock_overview", core.ErrMissingSymbol)
	}

	sections := map[string]core.OverviewSection{
		"realtime":        s.realtimeSection(ctx, code),
		"money_flow":      s.moneyFlowSection(ctx, code),
		"fundamental":     s.fundamentalSection(ctx, code),
		"limit_stats":     s.limitStatsSection(ctx, symbol, code),
		"research_report": s.researchSection(ctx, code),
	}
	for name, section := range sections {
		status := "ok"
		if !section.OK {
			status = "error"
		}
		if s.met != nil {
			s.met.RecordOverviewSection(name, status)
		}
	}

	anyOK := false
	var errs []string
	for _, section := range sections {
		if section.OK {
			anyOK = true
		} else if section.Err != "" {
			errs = append(errs, section.Err)
		}
	}
	if !anyOK {
		msg := strings.Join(errs, "; ")
		if msg == "" {
			msg = "all sub-apis failed"
		}
		return fail("stock_overview", core.WrapError(core.ErrAggregateFailed, errors.New(msg)))
	}

	return ok("stock_overview", map[string]any{
		"symbol":          code,
		"realtime":        sections["realtime"],
		"money_flow":      sections["money_flow"],
		"fundamental":     sections["fundamental"],
		"limit_stats":     sections["limit_stats"],
		"research_report": sections["research_report"],
	})
}

func (s *Service) realtimeSection(ctx context.Context, code string) core.OverviewSection {
	res := s.Intraday(ctx, code, "1", 1)
	if !res.OK {
		return failedSection(res)
	}
	return core.OverviewSection{
		OK:      true,
		Source:  res.Source,
		Payload: map[string]any{"latest": firstRecord(res.Data["items"])},
	}
}

func (s *Service) moneyFlowSection(ctx context.Context, code string) core.OverviewSection {
	res := s.MoneyFlow(ctx, code, 10)
	if !res.OK {
		return failedSection(res)
	}
	return core.OverviewSection{
		OK:     true,
		Source: res.Source,
		Payload: map[string]any{
			"latest": firstRecord(res.Data["items"]),
			"items":  res.Data["items"],
		},
	}
}

func (s *Service) fundamentalSection(ctx context.Context, code string) core.OverviewSection {
	res := s.Fundamental(ctx, code, 10)
	if !res.OK {
		return failedSection(res)
	}
	return core.OverviewSection{
		OK:     true,
		Source: res.Source,
		Payload: map[string]any{
			"latest": res.Data["latest"],
			"items":  res.Data["items"],
		},
	}
}

// limitStatsSection counts how often the stock hit the limit-up or limit-down
// pool over the last ten calendar days. Per-day fetch errors are collected
// but never fail the section.
func (s *Service) limitStatsSection(ctx context.Context, raw, code string) core.OverviewSection {
	upCount := 0
	downCount := 0
	lastDate := ""
	var dayErrs []string

	for offset := 0; offset < 10; offset++ {
		day := s.dateOffset(offset)
		res := s.LimitPool(ctx, day, 300)
		if !res.OK {
			dayErrs = append(dayErrs, fmt.Sprintf("%s: %s", day, res.Err))
			continue
		}
		if lastDate == "" {
			if d, found := res.Data["date"].(string); found && d != "" {
				lastDate = d
			} else {
				lastDate = day
			}
		}
		for _, rec := range overviewRecords(res.Data["up_items"]) {
			if matchesTarget(rec, raw, code) {
				upCount++
			}
		}
		for _, rec := range overviewRecords(res.Data["down_items"]) {
			if matchesTarget(rec, raw, code) {
				downCount++
			}
		}
	}

	payload := map[string]any{
		"days":       10,
		"date":       lastDate,
		"up_count":   upCount,
		"down_count": downCount,
	}
	section := core.OverviewSection{OK: true, Payload: payload}
	if len(dayErrs) > 0 {
		if len(dayErrs) > 3 {
			dayErrs = dayErrs[:3]
		}
		section.Err = strings.Join(dayErrs, "; ")
	}
	return section
}

func (s *Service) researchSection(ctx context.Context, code string) core.OverviewSection {
	res := s.ResearchReport(ctx, code, 3)
	if !res.OK {
		return failedSection(res)
	}
	return core.OverviewSection{
		OK:      true,
		Source:  res.Source,
		Payload: map[string]any{"items": table.Head(overviewRecords(res.Data["items"]), 3)},
	}
}

// matchesTarget reports whether a pool row belongs to the stock, by code
// equality or by the row's name appearing in the user's phrase.
func matchesTarget(rec core.Record, raw, code string) bool {
	for _, key := range overviewCodeKeys {
		if v, found := rec.Get(key); found && v != nil {
			if CleanSymbol(fmt.Sprint(v)) == code {
				return true
			}
		}
	}
	for _, key := range overviewNameKeys {
		if v, found := rec.Get(key); found && v != nil {
			name := fmt.Sprint(v)
			if name != "" && strings.Contains(raw, name) {
				return true
			}
		}
	}
	return false
}

func failedSection(res *core.OperationResult) core.OverviewSection {
	return core.OverviewSection{Source: res.Source, Err: res.Err}
}

func overviewRecords(v any) []core.Record {
	records, _ := v.([]core.Record)
	return records
}

func firstRecord(v any) core.Record {
	records := overviewRecords(v)
	if len(records) == 0 {
		return core.NewRecord()
	}
	return records[0]
}
