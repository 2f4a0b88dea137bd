package query

import (
	"strings"

	"github.com/finquery/finquery/internal/core"
)

// rule maps a keyword set to an intent. Rules are evaluated top to bottom and
// the first set with any keyword present in the text wins, so ordering encodes
// priority: limit-up/down keywords must fire before the generic "分析" rule or
// "涨停分析" would classify as an overview.
type rule struct {
	intent   core.Intent
	keywords []string
}

var rules = []rule{
	{core.IntentHelp, []string{"帮助", "help", "使用指南", "怎么用"}},
	{core.IntentPortfolio, []string{"持仓", "portfolio"}},
	{core.IntentVolumeAnalysis, []string{"量能", "放量", "缩量"}},
	{core.IntentLimitStats, []string{"涨停", "跌停", "涨跌停"}},
	{core.IntentIntradayAnalysis, []string{"分时", "盘口", "逐笔"}},
	{core.IntentKlineAnalysis, []string{"k线", "日线", "周线", "月线", "kline"}},
	{core.IntentStockPick, []string{"推荐", "选股", "买什么"}},
	{core.IntentResearchReport, []string{"研报", "机构评级", "评级"}},
	{core.IntentNews, []string{"新闻", "快讯", "资讯"}},
	{core.IntentStockOverview, []string{"怎么样", "分析", "看下", "评估", "综合"}},
	{core.IntentMoneyFlow, []string{"资金流", "主力资金", "北向资金", "南向资金", "东向资金", "行业资金", "板块资金"}},
	{core.IntentFundamental, []string{"基本面", "财报", "财务", "市盈率", "市净率", "估值", "roe", "毛利率", "净利率", "资产负债率"}},
	{core.IntentMarginLHB, []string{"融资融券", "龙虎榜", "两融", "融资余额", "融券余额"}},
	{core.IntentHKUSMarket, []string{"港股", "美股", "纳斯达克", "道琼斯", "标普", "恒生", "恒指", "nasdaq", "dow", "sp500", "s&p", "hang seng", "hk", "us"}},
	{core.IntentDerivatives, []string{"期货", "期权", "衍生品", "主力合约", "if", "ih", "ic", "im"}},
	{core.IntentFundBond, []string{"基金", "净值", "可转债", "转债", "债券", "etf"}},
	{core.IntentSectorAnalysis, []string{"板块", "行业", "概念", "题材", "轮动", "涨幅榜", "跌幅榜"}},
	{core.IntentIndexRealtime, []string{"大盘", "指数", "上证", "深证", "创业板", "实时"}},
}

// Classify maps free text to an intent. It never fails: text matching no rule
// degrades to the market-snapshot default.
func Classify(text string) core.Intent {
	lower := strings.ToLower(text)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}

	return core.IntentIndexRealtime
}
