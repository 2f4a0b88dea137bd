package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockOverviewAggregates(t *testing.T) {
	reg := capability.NewRegistry()
	reg.Register("stock_zh_a_minute", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("时间", "收盘")
		tab.Append("09:30", 1700.0)
		tab.Append("09:31", 1701.0)
		return tab, nil
	})
	reg.Register("stock_individual_fund_flow", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("日期", "主力净流入-净额")
		tab.Append("2024-01-04", 1000.0)
		tab.Append("2024-01-05", 2000.0)
		return tab, nil
	})
	reg.Register("stock_financial_abstract_ths", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("报告期", "每股收益")
		tab.Append("2023-06-30", 20.1)
		tab.Append("2023-09-30", 30.5)
		return tab, nil
	})
	reg.Register("stock_zt_pool_em", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("代码", "名称")
		tab.Append("600519", "贵州茅台")
		return tab, nil
	})
	reg.Register("stock_research_report_em", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("股票代码", "报告名称")
		tab.Append("600519", "深度报告一")
		tab.Append("600519", "深度报告二")
		tab.Append("600519", "深度报告三")
		tab.Append("600519", "深度报告四")
		return tab, nil
	})

	res := newService(reg).StockOverview(context.Background(), "sh600519")
	require.True(t, res.OK)
	assert.Equal(t, "600519", res.Data["symbol"])

	realtime := res.Data["realtime"].(core.OverviewSection)
	require.True(t, realtime.OK)
	latest := realtime.Payload["latest"].(core.Record)
	when, _ := latest.Get("时间")
	assert.Equal(t, "09:31", when) // newest minute bar

	flow := res.Data["money_flow"].(core.OverviewSection)
	require.True(t, flow.OK)
	flowLatest := flow.Payload["latest"].(core.Record)
	day, _ := flowLatest.Get("日期")
	assert.Equal(t, "2024-01-05", day)

	fundamental := res.Data["fundamental"].(core.OverviewSection)
	require.True(t, fundamental.OK)
	latestReport := fundamental.Payload["latest"].(core.Record)
	period, _ := latestReport.Get("报告期")
	assert.Equal(t, "2023-09-30", period)

	// The stock shows up in the pool on each of the ten scanned days.
	stats := res.Data["limit_stats"].(core.OverviewSection)
	require.True(t, stats.OK)
	assert.Equal(t, 10, stats.Payload["up_count"])
	assert.Equal(t, 0, stats.Payload["down_count"])

	reports := res.Data["research_report"].(core.OverviewSection)
	require.True(t, reports.OK)
	assert.Len(t, reports.Payload["items"], 3)
}

func TestStockOverviewPartialFailure(t *testing.T) {
	reg := capability.NewRegistry()
	reg.Register("stock_zh_a_minute", func(ctx context.Context, args capability.Args) (any, error) {
		return nil, errors.New("minute feed down")
	})
	reg.Register("stock_individual_fund_flow", func(ctx context.Context, args capability.Args) (any, error) {
		tab := table.New("日期")
		tab.Append("2024-01-05")
		return tab, nil
	})

	res := newService(reg).StockOverview(context.Background(), "600519")
	require.True(t, res.OK)

	realtime := res.Data["realtime"].(core.OverviewSection)
	assert.False(t, realtime.OK)
	assert.Contains(t, realtime.Err, "minute feed down")

	flow := res.Data["money_flow"].(core.OverviewSection)
	assert.True(t, flow.OK)

	// The limit scan tolerates a missing pool feed.
	stats := res.Data["limit_stats"].(core.OverviewSection)
	assert.True(t, stats.OK)
	assert.Equal(t, 0, stats.Payload["up_count"])
	assert.NotEmpty(t, stats.Err)
}

func TestStockOverviewRequiresSymbol(t *testing.T) {
	res := newService(capability.NewRegistry()).StockOverview(context.Background(), "")
	assert.False(t, res.OK)
}

func TestStockOverviewAllSectionsSilent(t *testing.T) {
	// Nothing registered: every resolvable section fails, but the limit scan
	// section is always ok, so the aggregate still succeeds.
	res := newService(capability.NewRegistry()).StockOverview(context.Background(), "600519")
	require.True(t, res.OK)
	stats := res.Data["limit_stats"].(core.OverviewSection)
	assert.True(t, stats.OK)
}
