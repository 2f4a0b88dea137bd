package adapter

import "strings"

// CleanSymbol lowercases a symbol and strips market prefix letters. The
// operation is idempotent.
func CleanSymbol(symbol string) string {
	if symbol == "" {
		return ""
	}
	s := strings.ToLower(symbol)
	for _, prefix := range []string{"sz", "sh", "bj"} {
		s = strings.ReplaceAll(s, prefix, "")
	}
	return s
}

// MarketFromSymbol derives the market suffix from the leading digit:
// 0/3 Shenzhen, 8/4 Beijing, everything else Shanghai.
func MarketFromSymbol(symbol string) string {
	switch {
	case strings.HasPrefix(symbol, "0"), strings.HasPrefix(symbol, "3"):
		return "sz"
	case strings.HasPrefix(symbol, "8"), strings.HasPrefix(symbol, "4"):
		return "bj"
	default:
		return "sh"
	}
}

// normalizeTradeDate turns a date slot into YYYYMMDD. Empty and today tokens
// resolve to the current date, yesterday tokens to the previous calendar day,
// anything else just loses its separators.
func (s *Service) normalizeTradeDate(value string) string {
	switch value {
	case "", "today", "今日", "今天":
		return s.now().Format("20060102")
	case "yesterday", "昨日", "昨天":
		return s.now().AddDate(0, 0, -1).Format("20060102")
	}
	return strings.NewReplacer("-", "", "/", "").Replace(value)
}

func (s *Service) dateOffset(days int) string {
	return s.now().AddDate(0, 0, -days).Format("20060102")
}
