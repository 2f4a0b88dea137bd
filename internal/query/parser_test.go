package query

import (
	"testing"
	"time"

	"github.com/finquery/finquery/internal/core"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)
}

func TestParse_Overview(t *testing.T) {
	p := New(WithNow(fixedClock))

	q := p.Parse("贵州茅台怎么样")
	if q.Intent != core.IntentStockOverview {
		t.Errorf("expected STOCK_OVERVIEW, got %s", q.Intent)
	}
	if q.Symbol != "600519" {
		t.Errorf("expected 600519, got %q", q.Symbol)
	}
}

func TestParse_KlineWithLimit(t *testing.T) {
	p := New(WithNow(fixedClock))

	q := p.Parse("茅台近30日K线")
	if q.Intent != core.IntentKlineAnalysis {
		t.Errorf("expected KLINE_ANALYSIS, got %s", q.Intent)
	}
	if q.Symbol != "600519" {
		t.Errorf("expected 600519, got %q", q.Symbol)
	}
	if q.Limit != 30 {
		t.Errorf("expected limit 30, got %d", q.Limit)
	}
	if q.Period != "" {
		t.Errorf("period should be absent, got %q", q.Period)
	}
}

func TestParse_LimitStatsNoDate(t *testing.T) {
	p := New(WithNow(fixedClock))

	q := p.Parse("今日涨停")
	if q.Intent != core.IntentLimitStats {
		t.Errorf("expected LIMIT_STATS, got %s", q.Intent)
	}
	if q.Date != "2024-01-05" {
		t.Errorf("今日 should resolve to the current date, got %q", q.Date)
	}
}

func TestExtractSymbol(t *testing.T) {
	p := New(WithNow(fixedClock))

	tests := []struct {
		text string
		want string
	}{
		{"600519资金流", "600519"},
		{"sh600519行情", "600519"},
		{"sz000001分析", "000001"},
		{"茅台怎么样", "600519"},
		{"贵州茅台K线", "600519"},
		{"宁德时代财报", "300750"},
		{"AAPL走势", "AAPL"},
		{"hk00700行情", "hk00700"},
		{"今天大盘如何", ""},
	}
	for _, tt := range tests {
		if got := p.extractSymbol(tt.text); got != tt.want {
			t.Errorf("extractSymbol(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractSymbol_LongestAliasWins(t *testing.T) {
	p := New(WithNow(fixedClock), WithAliases(map[string]string{"茅台集团": "999999"}))

	// 茅台集团 contains the shorter alias 茅台; the longer one must win.
	if got := p.extractSymbol("茅台集团新闻"); got != "999999" {
		t.Errorf("expected 999999 via longest alias, got %q", got)
	}
}

func TestExtractDate(t *testing.T) {
	p := New(WithNow(fixedClock))

	tests := []struct {
		text string
		want string
	}{
		{"2024-01-03的涨停", "2024-01-03"},
		{"20240103涨停", "2024-01-03"},
		{"2024/01/03涨停", "2024-01-03"},
		{"今天的大盘", "2024-01-05"},
		{"昨日涨停", "2024-01-04"},
		{"yesterday limit stats", "2024-01-04"},
		{"涨停统计", ""},
	}
	for _, tt := range tests {
		if got := p.extractDate(tt.text); got != tt.want {
			t.Errorf("extractDate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractPeriod(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"茅台5分钟走势", "5"},
		{"600519 15m", "15"},
		{"60分钟线", "60"},
		{"茅台周线", "weekly"},
		{"月线figure", "monthly"},
		{"日线分析", "daily"},
		{"茅台怎么样", ""},
	}
	for _, tt := range tests {
		if got := extractPeriod(tt.text); got != tt.want {
			t.Errorf("extractPeriod(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractLimit(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"top 20 板块", 20},
		{"前10名", 10},
		{"近30日K线", 30},
		{"最近5天资金流", 5},
		{"茅台怎么样", 0},
	}
	for _, tt := range tests {
		if got := extractLimit(tt.text); got != tt.want {
			t.Errorf("extractLimit(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
