package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/finquery/finquery/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []any
}

type fakeService struct {
	calls []call
}

func (f *fakeService) record(name string, args ...any) *core.OperationResult {
	f.calls = append(f.calls, call{name: name, args: args})
	return &core.OperationResult{OK: true, Source: name}
}

func (f *fakeService) last() call { return f.calls[len(f.calls)-1] }

func (f *fakeService) IndexSpot(ctx context.Context, topN int) *core.OperationResult {
	return f.record("IndexSpot", topN)
}
func (f *fakeService) Kline(ctx context.Context, symbol, period string, topN int) *core.OperationResult {
	return f.record("Kline", symbol, period, topN)
}
func (f *fakeService) Intraday(ctx context.Context, symbol, period string, topN int) *core.OperationResult {
	return f.record("Intraday", symbol, period, topN)
}
func (f *fakeService) LimitPool(ctx context.Context, date string, topN int) *core.OperationResult {
	return f.record("LimitPool", date, topN)
}
func (f *fakeService) MoneyFlow(ctx context.Context, symbol string, topN int) *core.OperationResult {
	return f.record("MoneyFlow", symbol, topN)
}
func (f *fakeService) MarketMoneyFlow(ctx context.Context, date string, topN int) *core.OperationResult {
	return f.record("MarketMoneyFlow", date, topN)
}
func (f *fakeService) SectorMoneyFlow(ctx context.Context, topN int) *core.OperationResult {
	return f.record("SectorMoneyFlow", topN)
}
func (f *fakeService) Fundamental(ctx context.Context, symbol string, topN int) *core.OperationResult {
	return f.record("Fundamental", symbol, topN)
}
func (f *fakeService) StockOverview(ctx context.Context, symbol string) *core.OperationResult {
	return f.record("StockOverview", symbol)
}
func (f *fakeService) MarginLHB(ctx context.Context, symbol, date string, topN int) *core.OperationResult {
	return f.record("MarginLHB", symbol, date, topN)
}
func (f *fakeService) SectorAnalysis(ctx context.Context, sectorType string, topN int) *core.OperationResult {
	return f.record("SectorAnalysis", sectorType, topN)
}
func (f *fakeService) FundBond(ctx context.Context, scope, symbol string, topN int) *core.OperationResult {
	return f.record("FundBond", scope, symbol, topN)
}
func (f *fakeService) HKUSMarket(ctx context.Context, market, symbol string, topN int) *core.OperationResult {
	return f.record("HKUSMarket", market, symbol, topN)
}
func (f *fakeService) Derivatives(ctx context.Context, scope, symbol string, topN int) *core.OperationResult {
	return f.record("Derivatives", scope, symbol, topN)
}
func (f *fakeService) News(ctx context.Context, topN int) *core.OperationResult {
	return f.record("News", topN)
}
func (f *fakeService) ResearchReport(ctx context.Context, symbol string, topN int) *core.OperationResult {
	return f.record("ResearchReport", symbol, topN)
}
func (f *fakeService) StockPick(ctx context.Context, sector string, topN int) *core.OperationResult {
	return f.record("StockPick", sector, topN)
}

type fakeRunner struct {
	analyzeArgs   []string
	portfolioArgs []string
	out           string
	err           error
}

func (f *fakeRunner) Analyze(ctx context.Context, args ...string) (string, error) {
	f.analyzeArgs = args
	return f.out, f.err
}

func (f *fakeRunner) Portfolio(ctx context.Context, args ...string) (string, error) {
	f.portfolioArgs = args
	return f.out, f.err
}

func newTestDispatcher() (*Dispatcher, *fakeService, *fakeRunner) {
	svc := &fakeService{}
	runner := &fakeRunner{}
	return New(svc, runner), svc, runner
}

func query(intent core.Intent, raw string) core.ParsedQuery {
	return core.ParsedQuery{Intent: intent, Raw: raw}
}

func TestDispatchStampsEnvelope(t *testing.T) {
	d, _, _ := newTestDispatcher()

	res := d.Dispatch(context.Background(), query(core.IntentIndexRealtime, "上证指数"))
	require.True(t, res.OK)
	assert.NotEmpty(t, res.RequestID)
	assert.GreaterOrEqual(t, res.ElapsedMS, int64(0))
}

func TestDispatchDefaults(t *testing.T) {
	d, svc, _ := newTestDispatcher()

	d.Dispatch(context.Background(), query(core.IntentIndexRealtime, ""))
	assert.Equal(t, call{name: "IndexSpot", args: []any{300}}, svc.last())

	d.Dispatch(context.Background(), query(core.IntentKlineAnalysis, "K线"))
	assert.Equal(t, call{name: "Kline", args: []any{"000001", "daily", 10}}, svc.last())

	d.Dispatch(context.Background(), core.ParsedQuery{
		Intent: core.IntentKlineAnalysis, Raw: "茅台近30日K线", Symbol: "600519", Limit: 30,
	})
	assert.Equal(t, call{name: "Kline", args: []any{"600519", "daily", 30}}, svc.last())

	d.Dispatch(context.Background(), query(core.IntentLimitStats, "今日涨停"))
	assert.Equal(t, call{name: "LimitPool", args: []any{"", 20}}, svc.last())
}

func TestDispatchMoneyFlowScopes(t *testing.T) {
	d, svc, _ := newTestDispatcher()

	d.Dispatch(context.Background(), query(core.IntentMoneyFlow, "北向资金流向"))
	assert.Equal(t, "MarketMoneyFlow", svc.last().name)

	d.Dispatch(context.Background(), query(core.IntentMoneyFlow, "行业资金流向"))
	assert.Equal(t, "SectorMoneyFlow", svc.last().name)

	d.Dispatch(context.Background(), core.ParsedQuery{
		Intent: core.IntentMoneyFlow, Raw: "茅台资金流向", Symbol: "600519",
	})
	assert.Equal(t, call{name: "MoneyFlow", args: []any{"600519", 10}}, svc.last())
}

func TestDispatchMissingSymbolHints(t *testing.T) {
	d, svc, _ := newTestDispatcher()

	res := d.Dispatch(context.Background(), query(core.IntentStockOverview, "怎么样"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "茅台怎么样")
	assert.Empty(t, svc.calls)

	res = d.Dispatch(context.Background(), query(core.IntentMoneyFlow, "资金流"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "资金流向")

	res = d.Dispatch(context.Background(), query(core.IntentResearchReport, "研报"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "300750")
}

func TestDispatchNewsClamp(t *testing.T) {
	d, svc, _ := newTestDispatcher()

	d.Dispatch(context.Background(), core.ParsedQuery{Intent: core.IntentNews, Raw: "新闻", Limit: 30})
	assert.Equal(t, call{name: "News", args: []any{10}}, svc.last())
}

func TestDispatchScopeRouting(t *testing.T) {
	d, svc, _ := newTestDispatcher()

	d.Dispatch(context.Background(), query(core.IntentSectorAnalysis, "概念板块涨跌"))
	assert.Equal(t, call{name: "SectorAnalysis", args: []any{"concept", 10}}, svc.last())

	d.Dispatch(context.Background(), query(core.IntentFundBond, "可转债行情"))
	assert.Equal(t, "bond", svc.last().args[0])

	d.Dispatch(context.Background(), query(core.IntentHKUSMarket, "美股行情"))
	assert.Equal(t, "us", svc.last().args[0])

	d.Dispatch(context.Background(), query(core.IntentHKUSMarket, "港股行情"))
	assert.Equal(t, "hk", svc.last().args[0])

	d.Dispatch(context.Background(), query(core.IntentDerivatives, "期权行情"))
	assert.Equal(t, "options", svc.last().args[0])

	d.Dispatch(context.Background(), query(core.IntentStockPick, "半导体股票推荐"))
	assert.Equal(t, call{name: "StockPick", args: []any{"半导体", 5}}, svc.last())
}

func TestDispatchVolumeAnalysisDelegates(t *testing.T) {
	d, _, runner := newTestDispatcher()
	runner.out = "volume report"

	res := d.Dispatch(context.Background(), core.ParsedQuery{
		Intent: core.IntentVolumeAnalysis, Raw: "茅台量能分析", Symbol: "600519",
	})
	require.True(t, res.OK)
	assert.Equal(t, []string{"600519", "--minute"}, runner.analyzeArgs)
	assert.Equal(t, "volume report", res.Text)
}

func TestDispatchVolumeAnalysisFailure(t *testing.T) {
	d, _, runner := newTestDispatcher()
	runner.err = errors.New("script exploded")

	res := d.Dispatch(context.Background(), query(core.IntentVolumeAnalysis, "量能分析"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "script exploded")
}

func TestDispatchHelp(t *testing.T) {
	d, _, _ := newTestDispatcher()

	res := d.Dispatch(context.Background(), query(core.IntentHelp, "帮助"))
	require.True(t, res.OK)
	assert.Contains(t, res.Text, "使用指南")
}

func TestPortfolioCommands(t *testing.T) {
	d, _, runner := newTestDispatcher()
	runner.out = "done"

	res := d.Dispatch(context.Background(), query(core.IntentPortfolio,
		"添加持仓 600519 --cost 10.5 --qty 1000"))
	require.True(t, res.OK)
	assert.Equal(t, []string{"add", "600519", "--cost", "10.5", "--qty", "1000"}, runner.portfolioArgs)

	d.Dispatch(context.Background(), query(core.IntentPortfolio, "持仓分析"))
	assert.Equal(t, []string{"analyze"}, runner.portfolioArgs)

	d.Dispatch(context.Background(), query(core.IntentPortfolio, "删除持仓 600519"))
	assert.Equal(t, []string{"remove", "600519"}, runner.portfolioArgs)

	d.Dispatch(context.Background(), query(core.IntentPortfolio, "我的持仓"))
	assert.Equal(t, []string{"show"}, runner.portfolioArgs)
}

func TestPortfolioAddRequiresAllFields(t *testing.T) {
	d, _, runner := newTestDispatcher()

	res := d.Dispatch(context.Background(), query(core.IntentPortfolio, "添加持仓 600519"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "--cost")
	assert.Nil(t, runner.portfolioArgs)
}

func TestPortfolioEmptyOutputGetsPlaceholder(t *testing.T) {
	d, _, runner := newTestDispatcher()
	runner.out = ""

	res := d.Dispatch(context.Background(), query(core.IntentPortfolio, "我的持仓"))
	require.True(t, res.OK)
	assert.Equal(t, "暂无持仓", res.Text)
}
