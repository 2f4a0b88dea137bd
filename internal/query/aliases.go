package query

// Common A-share stock aliases for quick name-to-code routing. Kept
// lightweight and focused on frequently queried names; the config layer can
// extend it at startup, after which the table is read-only.
var defaultAliases = map[string]string{
	"贵州茅台": "600519",
	"茅台":   "600519",
	"宁德时代": "300750",
	"比亚迪":  "002594",
	"五粮液":  "000858",
	"招商银行": "600036",
	"中国平安": "601318",
	"隆基绿能": "601012",
	"药明康德": "603259",
	"美的集团": "000333",
	"格力电器": "000651",
}
