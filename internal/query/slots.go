package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	reLocalCode  = regexp.MustCompile(`\b(?:sh|sz|bj)?(\d{6})\b`)
	reTicker     = regexp.MustCompile(`\b(hk\d{4,5}|[A-Z]{1,5})\b`)
	reDate       = regexp.MustCompile(`(\d{4})[-/]?(\d{2})[-/]?(\d{2})`)
	reTopN       = regexp.MustCompile(`top\s*(\d+)`)
	reFirstN     = regexp.MustCompile(`前\s*(\d+)\s*(名|条|个)?`)
	reRecentN    = regexp.MustCompile(`近\s*(\d+)\s*(日|天|周|月)`)
	reLastN      = regexp.MustCompile(`最近\s*(\d+)\s*(日|天|周|月)`)
)

// extractSymbol pulls an instrument code out of the text. Rule chain: 6-digit
// local code with optional market prefix, then the alias table with
// longest-alias-first matching so multi-character names are not shadowed by
// their substrings, then an uppercase ticker or hk-prefixed code. The first
// matching rule wins.
func (p *Parser) extractSymbol(text string) string {
	if m := reLocalCode.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return m[1]
	}

	for _, name := range p.aliasOrder {
		if strings.Contains(text, name) {
			return p.aliases[name]
		}
	}

	if m := reTicker.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	return ""
}

// extractDate resolves an explicit date or a relative-day keyword to
// YYYY-MM-DD, or returns empty when the text carries neither.
func (p *Parser) extractDate(text string) string {
	if m := reDate.FindStringSubmatch(text); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}

	if strings.Contains(text, "今天") || strings.Contains(text, "今日") || strings.Contains(strings.ToLower(text), "today") {
		return p.now().Format("2006-01-02")
	}
	if strings.Contains(text, "昨天") || strings.Contains(text, "昨日") || strings.Contains(strings.ToLower(text), "yesterday") {
		return p.now().AddDate(0, 0, -1).Format("2006-01-02")
	}

	return ""
}

// extractPeriod maps period tokens to minute intervals or named periods.
// Absent means the adapter supplies its own default.
func extractPeriod(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "1m") || strings.Contains(text, "1分钟"):
		return "1"
	case strings.Contains(lower, "5m") || strings.Contains(text, "5分钟"):
		return "5"
	case strings.Contains(lower, "15m") || strings.Contains(text, "15分钟"):
		return "15"
	case strings.Contains(lower, "30m") || strings.Contains(text, "30分钟"):
		return "30"
	case strings.Contains(lower, "60m") || strings.Contains(text, "60分钟"):
		return "60"
	case strings.Contains(text, "周线") || strings.Contains(lower, "week"):
		return "weekly"
	case strings.Contains(text, "月线") || strings.Contains(lower, "month"):
		return "monthly"
	case strings.Contains(text, "日线") || strings.Contains(lower, "day") || strings.Contains(lower, "daily"):
		return "daily"
	}

	return ""
}

// extractLimit finds a result-size hint. Patterns are tried in fixed order and
// the first match wins.
func extractLimit(text string) int {
	for _, re := range []*regexp.Regexp{reTopN, reFirstN, reRecentN, reLastN} {
		src := text
		if re == reTopN {
			src = strings.ToLower(text)
		}
		if m := re.FindStringSubmatch(src); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

// orderAliases sorts alias names longest first so that, e.g., 贵州茅台 is
// preferred over 茅台 when both appear.
func orderAliases(aliases map[string]string) []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
