package dispatch

import "github.com/finquery/finquery/internal/core"

const helpText = `📈 A股分析使用指南

| 类型 | 示例 |
|------|------|
| 大盘 | A股大盘、上证指数 |
| 分时量能 | 茅台量能分析、600519放量分析 |
| K线 | 茅台近30日K线、600519周线 |
| 涨跌停 | 今日涨停、跌停统计 |
| 资金流 | 茅台资金流向、市场资金流向 |
| 基本面 | 茅台财务指标、ROE |
| 个股综合 | 茅台怎么样、宁德时代分析 |
| 板块 | 行业板块涨跌、概念板块涨跌 |
| 股票推荐 | 推荐股票、半导体股票推荐 |
| 基金/可转债 | 基金净值、可转债行情 |
| 港股 | 港股行情 |
| 新闻 | 财经新闻、宁德时代研报 |
| 持仓管理 | 我的持仓、添加持仓 600519 --cost 10.5 --qty 1000、持仓分析 |

直接发给我就能查~`

func helpResult() *core.OperationResult {
	return &core.OperationResult{OK: true, Source: "help", Text: helpText}
}
