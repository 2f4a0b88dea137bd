// Package render turns result envelopes into the plain text the CLI prints.
// It is a presentation boundary only: no market logic lives here.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/core"
)

const maxLen = 1000

var intentEmoji = map[core.Intent]string{
	core.IntentIndexRealtime:    "📈",
	core.IntentKlineAnalysis:    "🕯️",
	core.IntentIntradayAnalysis: "⏱️",
	core.IntentVolumeAnalysis:   "⏱️",
	core.IntentLimitStats:       "🚦",
	core.IntentMoneyFlow:        "💰",
	core.IntentFundamental:      "📊",
	core.IntentStockOverview:    "📌",
	core.IntentMarginLHB:        "🏦",
	core.IntentSectorAnalysis:   "🧩",
	core.IntentDerivatives:      "📉",
	core.IntentFundBond:         "🏛️",
	core.IntentHKUSMarket:       "🌍",
	core.IntentNews:             "📰",
	core.IntentResearchReport:   "📰",
	core.IntentStockPick:        "🏆",
}

// Renderer formats results for one output platform. The qq and telegram
// platforms currently emit identical text; the selector is kept so chat
// frontends can diverge without touching callers.
type Renderer struct {
	platform string
	now      func() time.Time
}

// New creates a renderer for the given platform.
func New(platform string) *Renderer {
	return &Renderer{platform: platform, now: time.Now}
}

// WithNow overrides the timestamp clock, for tests.
func (r *Renderer) WithNow(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render produces the final text for one dispatched result.
func (r *Renderer) Render(q core.ParsedQuery, res *core.OperationResult) string {
	emoji := intentEmoji[q.Intent]
	if emoji == "" {
		emoji = "📌"
	}
	ts := r.now().Format("2006-01-02 15:04")

	if !res.OK {
		return fmt.Sprintf("%s A股分析 · %s\n\n⚠️ 错误: %s", emoji, ts, res.Err)
	}

	// Script and help results carry their text verbatim.
	if res.Text != "" {
		return truncate(res.Text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s A股分析 · %s\n", emoji, ts)
	if res.Source != "" {
		fmt.Fprintf(&b, "来源: %s\n", res.Source)
	}
	b.WriteString("\n")

	if q.Intent == core.IntentStockOverview {
		r.renderOverview(&b, res.Data)
	} else {
		renderItems(&b, res.Data["items"], 10)
	}

	b.WriteString("\n数据源: eastmoney")
	return truncate(b.String())
}

// renderOverview prints each aggregate section with its own status marker.
func (r *Renderer) renderOverview(b *strings.Builder, data map[string]any) {
	if symbol, ok := data["symbol"].(string); ok {
		fmt.Fprintf(b, "📌 个股综合信息 | %s\n\n", symbol)
	}
	for _, name := range []string{"realtime", "money_flow", "fundamental", "limit_stats", "research_report"} {
		section, ok := data[name].(core.OverviewSection)
		if !ok {
			continue
		}
		if !section.OK {
			fmt.Fprintf(b, "[%s] 暂无 (%s)\n", name, section.Err)
			continue
		}
		fmt.Fprintf(b, "[%s]\n", name)
		if latest, ok := section.Payload["latest"].(core.Record); ok && len(latest.Keys) > 0 {
			b.WriteString("  " + recordLine(latest) + "\n")
		}
		if name == "limit_stats" {
			fmt.Fprintf(b, "  近%v日涨跌停: 涨停%v次 / 跌停%v次\n",
				section.Payload["days"], section.Payload["up_count"], section.Payload["down_count"])
		}
		if items, ok := section.Payload["items"].([]core.Record); ok {
			for i, rec := range items {
				if i >= 3 {
					break
				}
				b.WriteString("  - " + recordLine(rec) + "\n")
			}
		}
	}
}

// renderItems prints normalized records, or the payload verbatim when the
// upstream result was not tabular.
func renderItems(b *strings.Builder, items any, limit int) {
	switch v := items.(type) {
	case []core.Record:
		if len(v) == 0 {
			b.WriteString("无数据\n")
			return
		}
		for i, rec := range v {
			if i >= limit {
				fmt.Fprintf(b, "... 还有 %d 条\n", len(v)-limit)
				break
			}
			fmt.Fprintf(b, "%d. %s\n", i+1, recordLine(rec))
		}
	case string:
		b.WriteString(v + "\n")
	default:
		b.WriteString("无数据\n")
	}
}

// recordLine joins a record's fields in source column order.
func recordLine(rec core.Record) string {
	parts := make([]string, 0, len(rec.Keys))
	for _, key := range rec.Keys {
		parts = append(parts, fmt.Sprintf("%s %v", key, rec.Values[key]))
	}
	return strings.Join(parts, " | ")
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	const suffix = "\n...\n(内容过长，已截断)"
	keep := maxLen - len([]rune(suffix))
	return string(runes[:keep]) + suffix
}
