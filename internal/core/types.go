package core

// Intent identifies the logical operation a free-text query maps to.
type Intent string

const (
	IntentIndexRealtime    Intent = "INDEX_REALTIME"
	IntentKlineAnalysis    Intent = "KLINE_ANALYSIS"
	IntentIntradayAnalysis Intent = "INTRADAY_ANALYSIS"
	IntentVolumeAnalysis   Intent = "VOLUME_ANALYSIS"
	IntentLimitStats       Intent = "LIMIT_STATS"
	IntentMoneyFlow        Intent = "MONEY_FLOW"
	IntentFundamental      Intent = "FUNDAMENTAL"
	IntentStockOverview    Intent = "STOCK_OVERVIEW"
	IntentMarginLHB        Intent = "MARGIN_LHB"
	IntentSectorAnalysis   Intent = "SECTOR_ANALYSIS"
	IntentDerivatives      Intent = "DERIVATIVES"
	IntentFundBond         Intent = "FUND_BOND"
	IntentHKUSMarket       Intent = "HK_US_MARKET"
	IntentNews             Intent = "NEWS"
	IntentResearchReport   Intent = "RESEARCH_REPORT"
	IntentStockPick        Intent = "STOCK_PICK"
	IntentHelp             Intent = "HELP"
	IntentPortfolio        Intent = "PORTFOLIO"
)

// ParsedQuery is the immutable result of parsing one free-text query.
// Slot fields are zero-valued when the query did not mention them.
type ParsedQuery struct {
	Intent Intent
	Raw    string
	Symbol string
	Date   string
	Period string
	Limit  int
}

// Record is one normalized row from an upstream result. Field names vary per
// upstream operation; Keys preserves the source column order.
type Record struct {
	Keys   []string
	Values map[string]any
}

// NewRecord creates an empty record.
func NewRecord() Record {
	return Record{Values: make(map[string]any)}
}

// Set appends or overwrites a field, keeping first-set key order.
func (r *Record) Set(key string, value any) {
	if r.Values == nil {
		r.Values = make(map[string]any)
	}
	if _, ok := r.Values[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = value
}

// Get returns the field value and whether it is present.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// OperationResult is the uniform envelope every operation adapter produces.
type OperationResult struct {
	OK        bool
	Source    string // upstream operation that served the request
	Data      map[string]any
	Text      string // verbatim payload from script collaborators
	Err       string
	RequestID string
	ElapsedMS int64
}

// OverviewSection is one independently resolved sub-query of the stock
// overview aggregate.
type OverviewSection struct {
	OK      bool
	Source  string
	Payload map[string]any
	Err     string
}
