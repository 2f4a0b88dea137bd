// Package dispatch routes a parsed query to the matching operation adapter
// or script collaborator and stamps the uniform result envelope.
package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarketService is the operation-adapter surface the dispatcher routes to.
type MarketService interface {
	IndexSpot(ctx context.Context, topN int) *core.OperationResult
	Kline(ctx context.Context, symbol, period string, topN int) *core.OperationResult
	Intraday(ctx context.Context, symbol, period string, topN int) *core.OperationResult
	LimitPool(ctx context.Context, date string, topN int) *core.OperationResult
	MoneyFlow(ctx context.Context, symbol string, topN int) *core.OperationResult
	MarketMoneyFlow(ctx context.Context, date string, topN int) *core.OperationResult
	SectorMoneyFlow(ctx context.Context, topN int) *core.OperationResult
	Fundamental(ctx context.Context, symbol string, topN int) *core.OperationResult
	StockOverview(ctx context.Context, symbol string) *core.OperationResult
	MarginLHB(ctx context.Context, symbol, date string, topN int) *core.OperationResult
	SectorAnalysis(ctx context.Context, sectorType string, topN int) *core.OperationResult
	FundBond(ctx context.Context, scope, symbol string, topN int) *core.OperationResult
	HKUSMarket(ctx context.Context, market, symbol string, topN int) *core.OperationResult
	Derivatives(ctx context.Context, scope, symbol string, topN int) *core.OperationResult
	News(ctx context.Context, topN int) *core.OperationResult
	ResearchReport(ctx context.Context, symbol string, topN int) *core.OperationResult
	StockPick(ctx context.Context, sector string, topN int) *core.OperationResult
}

// ScriptRunner is the external-script surface for volume analysis and
// portfolio management.
type ScriptRunner interface {
	Analyze(ctx context.Context, args ...string) (string, error)
	Portfolio(ctx context.Context, args ...string) (string, error)
}

// Dispatcher maps intents to adapter calls.
type Dispatcher struct {
	svc     MarketService
	scripts ScriptRunner
	log     *zap.Logger
	met     *metrics.Registry
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithMetrics wires dispatch counters.
func WithMetrics(m *metrics.Registry) Option {
	return func(d *Dispatcher) { d.met = m }
}

// New creates a dispatcher.
func New(svc MarketService, scripts ScriptRunner, opts ...Option) *Dispatcher {
	d := &Dispatcher{svc: svc, scripts: scripts, log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes one parsed query and stamps request id and elapsed time on
// the result. It never returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, q core.ParsedQuery) *core.OperationResult {
	start := time.Now()
	res := d.route(ctx, q)
	if res == nil {
		res = &core.OperationResult{OK: false, Err: "no handler for intent"}
	}
	res.RequestID = uuid.NewString()
	res.ElapsedMS = time.Since(start).Milliseconds()

	status := "ok"
	if !res.OK {
		status = "error"
	}
	if d.met != nil {
		d.met.RecordDispatch(string(q.Intent), status)
	}
	d.log.Info("query dispatched",
		zap.String("intent", string(q.Intent)),
		zap.String("request_id", res.RequestID),
		zap.String("status", status),
		zap.Int64("elapsed_ms", res.ElapsedMS))
	return res
}

var (
	marketFlowWords = []string{"北向", "南向", "东向", "市场资金", "大盘资金"}
	sectorFlowWords = []string{"行业资金", "板块资金", "行业流入", "板块流入"}
	usMarketWords   = []string{"美股", "nasdaq", "dow", "道琼斯", "标普", "sp500", "s&p", "纳指", "us"}
	bondWords       = []string{"可转债", "转债", "债"}
	optionWords     = []string{"期权", "option"}
	conceptWords    = []string{"概念", "题材"}

	pickSectorWords = []string{
		"半导体", "电子", "汽车", "医药生物", "医药",
		"银行", "保险", "证券", "金融",
		"房地产", "地产", "电力", "传媒",
		"锂电池", "电池", "光伏", "光伏设备",
		"软件", "军工", "食品", "饮料", "白酒", "家电", "纺织",
	}
)

func (d *Dispatcher) route(ctx context.Context, q core.ParsedQuery) *core.OperationResult {
	switch q.Intent {
	case core.IntentIndexRealtime:
		return d.svc.IndexSpot(ctx, 300)

	case core.IntentKlineAnalysis:
		return d.svc.Kline(ctx, orDefault(q.Symbol, "000001"), orDefault(q.Period, "daily"), orInt(q.Limit, 10))

	case core.IntentIntradayAnalysis:
		return d.svc.Intraday(ctx, orDefault(q.Symbol, "000001"), q.Period, orInt(q.Limit, 30))

	case core.IntentVolumeAnalysis:
		return d.volumeAnalysis(ctx, q)

	case core.IntentLimitStats:
		return d.svc.LimitPool(ctx, q.Date, orInt(q.Limit, 20))

	case core.IntentStockOverview:
		if q.Symbol == "" {
			return missingSymbol("请输入股票代码或名称，如：茅台怎么样、宁德时代分析")
		}
		return d.svc.StockOverview(ctx, q.Symbol)

	case core.IntentMoneyFlow:
		topN := orInt(q.Limit, 10)
		if containsAny(q.Raw, marketFlowWords) {
			return d.svc.MarketMoneyFlow(ctx, q.Date, topN)
		}
		if containsAny(q.Raw, sectorFlowWords) {
			return d.svc.SectorMoneyFlow(ctx, topN)
		}
		if q.Symbol == "" {
			return missingSymbol("请输入股票代码或名称，如：茅台资金流向、600519资金流")
		}
		return d.svc.MoneyFlow(ctx, q.Symbol, topN)

	case core.IntentFundamental:
		if q.Symbol == "" {
			return missingSymbol("请输入股票代码或名称，如：茅台财务指标、600519基本面")
		}
		return d.svc.Fundamental(ctx, q.Symbol, orInt(q.Limit, 20))

	case core.IntentMarginLHB:
		return d.svc.MarginLHB(ctx, q.Symbol, q.Date, orInt(q.Limit, 10))

	case core.IntentNews:
		return d.svc.News(ctx, minInt(orInt(q.Limit, 10), 10))

	case core.IntentResearchReport:
		if q.Symbol == "" {
			return missingSymbol("请输入股票代码或名称，如：宁德时代研报、300750机构评级")
		}
		return d.svc.ResearchReport(ctx, q.Symbol, minInt(orInt(q.Limit, 10), 10))

	case core.IntentStockPick:
		sector := ""
		for _, kw := range pickSectorWords {
			if strings.Contains(q.Raw, kw) {
				sector = kw
				break
			}
		}
		return d.svc.StockPick(ctx, sector, 5)

	case core.IntentSectorAnalysis:
		sectorType := "industry"
		if containsAny(q.Raw, conceptWords) {
			sectorType = "concept"
		}
		return d.svc.SectorAnalysis(ctx, sectorType, orInt(q.Limit, 10))

	case core.IntentFundBond:
		scope := "fund"
		if containsAny(strings.ToLower(q.Raw), bondWords) {
			scope = "bond"
		}
		return d.svc.FundBond(ctx, scope, q.Symbol, orInt(q.Limit, 10))

	case core.IntentHKUSMarket:
		market := "hk"
		if containsAny(strings.ToLower(q.Raw), usMarketWords) {
			market = "us"
		}
		return d.svc.HKUSMarket(ctx, market, q.Symbol, orInt(q.Limit, 10))

	case core.IntentDerivatives:
		scope := "futures"
		if containsAny(strings.ToLower(q.Raw), optionWords) {
			scope = "options"
		}
		return d.svc.Derivatives(ctx, scope, q.Symbol, orInt(q.Limit, 10))

	case core.IntentHelp:
		return helpResult()

	case core.IntentPortfolio:
		return d.portfolio(ctx, q)
	}
	return nil
}

// volumeAnalysis delegates to the external analysis script in minute mode.
func (d *Dispatcher) volumeAnalysis(ctx context.Context, q core.ParsedQuery) *core.OperationResult {
	symbol := orDefault(q.Symbol, "000001")
	out, err := d.scripts.Analyze(ctx, symbol, "--minute")
	if err != nil {
		return &core.OperationResult{OK: false, Source: "analyze", Err: err.Error()}
	}
	return &core.OperationResult{OK: true, Source: "analyze", Text: out}
}

func missingSymbol(hint string) *core.OperationResult {
	return &core.OperationResult{OK: false, Err: hint}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
