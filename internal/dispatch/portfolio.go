package dispatch

import (
	"context"
	"regexp"
	"strings"

	"github.com/finquery/finquery/internal/core"
)

var (
	reHoldingCode = regexp.MustCompile(`\b(\d{6})\b`)
	reHoldingCost = regexp.MustCompile(`--?cost\s*(\d+\.?\d*)`)
	reHoldingQty  = regexp.MustCompile(`--?qty\s*(\d+)`)
	reHoldingQty2 = regexp.MustCompile(`数量\s*(\d+)`)
)

// portfolio parses the holding command out of the raw text and delegates to
// the portfolio script.
func (d *Dispatcher) portfolio(ctx context.Context, q core.ParsedQuery) *core.OperationResult {
	text := q.Raw
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(text, "添加") || strings.Contains(lowered, "add"):
		code := firstMatch(reHoldingCode, text)
		cost := firstMatch(reHoldingCost, lowered)
		qty := firstMatch(reHoldingQty, lowered)
		if qty == "" {
			qty = firstMatch(reHoldingQty2, text)
		}
		if code == "" || cost == "" || qty == "" {
			return &core.OperationResult{
				OK:  false,
				Err: "请输入：添加持仓 代码 --cost 成本价 --qty 数量\n例如：添加持仓 600519 --cost 10.5 --qty 1000",
			}
		}
		return d.runPortfolio(ctx, "已添加持仓", "add", code, "--cost", cost, "--qty", qty)

	case strings.Contains(text, "分析"):
		return d.runPortfolio(ctx, "暂无持仓", "analyze")

	case strings.Contains(text, "删除") || strings.Contains(text, "移除"):
		code := firstMatch(reHoldingCode, text)
		if code == "" {
			return &core.OperationResult{OK: false, Err: "请输入要删除的股票代码"}
		}
		return d.runPortfolio(ctx, "已删除", "remove", code)

	default:
		return d.runPortfolio(ctx, "暂无持仓", "show")
	}
}

func (d *Dispatcher) runPortfolio(ctx context.Context, emptyText string, args ...string) *core.OperationResult {
	out, err := d.scripts.Portfolio(ctx, args...)
	if err != nil {
		return &core.OperationResult{OK: false, Source: "portfolio", Err: err.Error()}
	}
	if strings.TrimSpace(out) == "" {
		out = emptyText
	}
	return &core.OperationResult{OK: true, Source: "portfolio", Text: out}
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
