package eastmoney

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/table"
)

// registerOps populates the registry with every operation this provider can
// serve. Catalogue names follow the upstream convention the adapters already
// try; names whose data Eastmoney cannot supply stay unregistered and the
// resolver skips them.
func (c *Client) registerOps(reg *capability.Registry) {
	reg.Register("stock_zh_index_spot_em", c.opIndexSpot)
	reg.Register("stock_zh_a_hist", c.opStockHist)
	reg.Register("stock_zh_a_minute", c.opStockMinute)
	reg.Register("stock_intraday_em", c.opIntraday)
	reg.Register("stock_zt_pool_em", c.opLimitUpPool)
	reg.Register("stock_zt_pool_dtgc_em", c.opLimitDownPool)
	reg.Register("stock_news_em", c.opNews)
	reg.Register("stock_research_report_em", c.opResearchReport)
	reg.Register("stock_individual_fund_flow", c.opIndividualFundFlow)
	reg.Register("stock_market_fund_flow", c.opMarketFundFlow)
	reg.Register("stock_sector_fund_flow_rank", c.opSectorFundFlowRank)
	reg.Register("stock_financial_abstract_ths", c.opFinancialAbstract)
	reg.Register("stock_margin_detail_em", c.opMarginDetail)
	reg.Register("stock_lhb_detail_em", c.opLHBDetail)
	reg.Register("stock_sector_name_code", c.opSectorRanking)
	reg.Register("stock_board_industry_cons_em", c.opBoardConstituents)
	reg.Register("stock_hot_rank_em", c.opHotRank)
	reg.Register("fund_etf_spot_em", c.opETFSpot)
	reg.Register("fund_etf_hist_em", c.opETFHist)
	reg.Register("bond_zh_hs_cov_spot", c.opConvertibleBondSpot)
	reg.Register("stock_hk_spot_em", c.opHKSpot)
	reg.Register("stock_us_spot_em", c.opUSSpot)
	reg.Register("option_current_em", c.opOptionCurrent)
	// Served from the Eastmoney futures board even though the catalogue name
	// is Sina-flavored; the adapters' candidate lists are the contract.
	reg.Register("futures_display_main_sina", c.opFuturesMain)
}

func argOr(args capability.Args, def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := args[k]; ok && v != "" {
			return v
		}
	}
	return def
}

var spotFields = []field{
	{Code: "f12", Label: "代码"},
	{Code: "f14", Label: "名称"},
	{Code: "f2", Label: "最新价"},
	{Code: "f3", Label: "涨跌幅"},
	{Code: "f4", Label: "涨跌额"},
	{Code: "f5", Label: "成交量"},
	{Code: "f6", Label: "成交额"},
}

func (c *Client) opIndexSpot(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:1+s:2,m:0+t:5", spotFields, 300, "")
}

func periodToKlt(period string) string {
	switch period {
	case "weekly":
		return "102"
	case "monthly":
		return "103"
	case "1", "5", "15", "30", "60":
		return period
	default:
		return "101"
	}
}

func (c *Client) opStockHist(ctx context.Context, args capability.Args) (any, error) {
	symbol := argOr(args, "", "symbol", "stock", "code")
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	klt := periodToKlt(argOr(args, "daily", "period"))
	beg := argOr(args, "19900101", "start_date")
	end := argOr(args, "20500101", "end_date")
	return c.kline(ctx, symbol, klt, beg, end)
}

func (c *Client) opStockMinute(ctx context.Context, args capability.Args) (any, error) {
	symbol := argOr(args, "", "symbol", "stock")
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	period := argOr(args, "1", "period")
	switch period {
	case "1", "5", "15", "30", "60":
	default:
		period = "1"
	}
	return c.kline(ctx, cleanMarketPrefix(symbol), period, "19900101", "20500101")
}

func cleanMarketPrefix(symbol string) string {
	s := strings.ToLower(symbol)
	for _, p := range []string{"sh", "sz", "bj"} {
		s = strings.ReplaceAll(s, p, "")
	}
	return s
}

func (c *Client) opIntraday(ctx context.Context, args capability.Args) (any, error) {
	symbol := argOr(args, "", "symbol", "stock")
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	// Tick-level detail is served from the 1-minute bars; the upstream
	// tick endpoint requires a session cookie.
	return c.kline(ctx, cleanMarketPrefix(symbol), "1", "19900101", "20500101")
}

type poolResponse struct {
	Data *poolData `json:"data"`
}

type poolData struct {
	Pool []map[string]any `json:"pool"`
}

func (c *Client) limitPool(ctx context.Context, endpoint, date string) (*table.Table, error) {
	params := url.Values{}
	params.Set("ut", "7eea3edcaed734bea9cbfc24409ed989")
	params.Set("dpt", "wz.ztzt")
	params.Set("Pageindex", "0")
	params.Set("pagesize", "320")
	params.Set("date", date)

	var result poolResponse
	if err := c.getJSON(ctx, endpoint, params, &result); err != nil {
		return nil, err
	}
	if result.Data == nil || len(result.Data.Pool) == 0 {
		return nil, fmt.Errorf("empty pool for date %s", date)
	}

	tab := table.New("代码", "名称", "最新价", "涨跌幅", "成交额", "换手率", "连板数")
	for _, row := range result.Data.Pool {
		price, _ := table.SafeFloat(row["p"])
		tab.Append(row["c"], row["n"], price/1000, row["zdp"], row["amount"], row["hs"], row["lbc"])
	}
	return tab, nil
}

func (c *Client) opLimitUpPool(ctx context.Context, args capability.Args) (any, error) {
	return c.limitPool(ctx, c.cfg.PoolURL, argOr(args, "", "date"))
}

func (c *Client) opLimitDownPool(ctx context.Context, args capability.Args) (any, error) {
	down := strings.Replace(c.cfg.PoolURL, "getTopicZTPool", "getTopicDTPool", 1)
	return c.limitPool(ctx, down, argOr(args, "", "date"))
}

type newsResponse struct {
	Data *newsData `json:"data"`
}

type newsData struct {
	List []struct {
		Title    string `json:"title"`
		Digest   string `json:"digest"`
		ShowTime string `json:"showTime"`
		URL      string `json:"url"`
	} `json:"list"`
}

func (c *Client) opNews(ctx context.Context, args capability.Args) (any, error) {
	params := url.Values{}
	params.Set("client", "web")
	params.Set("biz", "web_news_col")
	params.Set("column", "102")
	params.Set("order", "1")
	params.Set("needInteractData", "0")
	params.Set("page_index", "1")
	params.Set("page_size", "20")

	var result newsResponse
	if err := c.getJSON(ctx, c.cfg.NewsURL, params, &result); err != nil {
		return nil, err
	}
	if result.Data == nil || len(result.Data.List) == 0 {
		return nil, fmt.Errorf("no news returned")
	}

	tab := table.New("标题", "摘要", "发布时间", "链接")
	for _, item := range result.Data.List {
		tab.Append(item.Title, item.Digest, item.ShowTime, item.URL)
	}
	return tab, nil
}

// opResearchReport scrapes the research report list page. The page is plain
// server-rendered HTML so goquery is enough.
func (c *Client) opResearchReport(ctx context.Context, args capability.Args) (any, error) {
	u := c.cfg.ReportURL
	if symbol := argOr(args, "", "symbol", "stock"); symbol != "" {
		u += "?stockCode=" + url.QueryEscape(symbol)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finquery/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching reports: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s status=%d", u, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing report page: %w", err)
	}

	tab := table.New("股票代码", "股票简称", "报告名称", "东财评级", "机构", "日期")
	doc.Find("table tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		if len(cells) >= 6 {
			tab.Append(cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
		}
	})
	if tab.Len() == 0 {
		return nil, fmt.Errorf("no reports found")
	}
	return tab, nil
}

type flowResponse struct {
	Data *flowData `json:"data"`
}

type flowData struct {
	Klines []string `json:"klines"`
}

var flowCols = []string{
	"日期",
	"主力净流入-净额",
	"小单净流入-净额",
	"中单净流入-净额",
	"大单净流入-净额",
	"超大单净流入-净额",
	"主力净流入-净占比",
}

func (c *Client) fundFlow(ctx context.Context, id, id2 string) (*table.Table, error) {
	params := url.Values{}
	params.Set("lmt", "0")
	params.Set("klt", "101")
	params.Set("secid", id)
	if id2 != "" {
		params.Set("secid2", id2)
	}
	params.Set("fields1", "f1,f2,f3,f7")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56,f62")

	var result flowResponse
	if err := c.getJSON(ctx, c.cfg.FlowURL, params, &result); err != nil {
		return nil, err
	}
	if result.Data == nil || len(result.Data.Klines) == 0 {
		return nil, fmt.Errorf("no fund flow data for %s", id)
	}

	tab := table.New(flowCols...)
	for _, line := range result.Data.Klines {
		parts := strings.Split(line, ",")
		values := make([]any, 0, len(flowCols))
		for i := range flowCols {
			if i >= len(parts) {
				values = append(values, nil)
			} else if i == 0 {
				values = append(values, parts[i])
			} else if f, ok := table.SafeFloat(parts[i]); ok {
				values = append(values, f)
			} else {
				values = append(values, parts[i])
			}
		}
		tab.Append(values...)
	}
	return tab, nil
}

func (c *Client) opIndividualFundFlow(ctx context.Context, args capability.Args) (any, error) {
	code := argOr(args, "", "stock", "symbol")
	if code == "" {
		return nil, fmt.Errorf("stock is required")
	}
	market := argOr(args, "", "market")
	id := secid(code)
	if market == "sh" {
		id = "1." + code
	} else if market == "sz" || market == "bj" {
		id = "0." + code
	}
	return c.fundFlow(ctx, id, "")
}

func (c *Client) opMarketFundFlow(ctx context.Context, args capability.Args) (any, error) {
	// Whole-market aggregate: SSE composite vs SZSE component.
	return c.fundFlow(ctx, "1.000001", "0.399001")
}

var sectorFlowFields = []field{
	{Code: "f14", Label: "名称"},
	{Code: "f3", Label: "今日涨跌幅"},
	{Code: "f62", Label: "今日主力净流入-净额"},
	{Code: "f184", Label: "今日主力净流入-净占比"},
}

func (c *Client) opSectorFundFlowRank(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:90+t:2", sectorFlowFields, 100, "f62")
}

type dataCenterResponse struct {
	Result *dataCenterResult `json:"result"`
}

type dataCenterResult struct {
	Data []map[string]any `json:"data"`
}

// dataCenter queries the datacenter report API and projects the named columns.
func (c *Client) dataCenter(ctx context.Context, reportName, filter string, cols []field) (*table.Table, error) {
	params := url.Values{}
	params.Set("reportName", reportName)
	params.Set("pageNumber", "1")
	params.Set("pageSize", "200")
	params.Set("source", "WEB")
	params.Set("client", "WEB")
	if filter != "" {
		params.Set("filter", filter)
	}

	var result dataCenterResponse
	if err := c.getJSON(ctx, c.cfg.DataCenterURL, params, &result); err != nil {
		return nil, err
	}
	if result.Result == nil || len(result.Result.Data) == 0 {
		return nil, fmt.Errorf("%s returned no rows", reportName)
	}

	labels := make([]string, len(cols))
	for i, col := range cols {
		labels[i] = col.Label
	}
	tab := table.New(labels...)
	for _, row := range result.Result.Data {
		values := make([]any, len(cols))
		for i, col := range cols {
			values[i] = row[col.Code]
		}
		tab.Append(values...)
	}
	return tab, nil
}

var financeFields = []field{
	{Code: "REPORT_DATE", Label: "报告期"},
	{Code: "EPSJB", Label: "每股收益"},
	{Code: "BPS", Label: "每股净资产"},
	{Code: "ROEJQ", Label: "净资产收益率"},
	{Code: "XSMLL", Label: "毛利率"},
	{Code: "TOTALOPERATEREVE", Label: "营业总收入"},
	{Code: "PARENTNETPROFIT", Label: "归母净利润"},
	{Code: "ZCFZL", Label: "资产负债率"},
}

func (c *Client) opFinancialAbstract(ctx context.Context, args capability.Args) (any, error) {
	symbol := argOr(args, "", "symbol", "stock")
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	filter := fmt.Sprintf(`(SECUCODE="%s")`, secucode(symbol))
	return c.dataCenter(ctx, "RPT_F10_FINANCE_MAINFINADATA", filter, financeFields)
}

func secucode(code string) string {
	if strings.HasPrefix(code, "6") {
		return code + ".SH"
	}
	if strings.HasPrefix(code, "8") || strings.HasPrefix(code, "4") {
		return code + ".BJ"
	}
	return code + ".SZ"
}

var marginFields = []field{
	{Code: "DATE", Label: "日期"},
	{Code: "SCODE", Label: "代码"},
	{Code: "SECNAME", Label: "名称"},
	{Code: "RZYE", Label: "融资余额"},
	{Code: "RZMRE", Label: "融资买入额"},
	{Code: "RQYE", Label: "融券余额"},
}

func (c *Client) opMarginDetail(ctx context.Context, args capability.Args) (any, error) {
	var filter string
	if date := argOr(args, "", "date", "trade_date"); date != "" {
		filter = fmt.Sprintf(`(DATE='%s')`, date)
	}
	return c.dataCenter(ctx, "RPTA_WEB_RZRQ_GGMX", filter, marginFields)
}

var lhbFields = []field{
	{Code: "SECURITY_CODE", Label: "代码"},
	{Code: "SECURITY_NAME_ABBR", Label: "名称"},
	{Code: "TRADE_DATE", Label: "上榜日"},
	{Code: "EXPLANATION", Label: "解读"},
	{Code: "CHANGE_RATE", Label: "涨跌幅"},
	{Code: "BILLBOARD_NET_AMT", Label: "龙虎榜净买额"},
}

func (c *Client) opLHBDetail(ctx context.Context, args capability.Args) (any, error) {
	var filter string
	start := argOr(args, "", "start_date", "date")
	end := argOr(args, start, "end_date")
	if start != "" {
		filter = fmt.Sprintf(`(TRADE_DATE>='%s')(TRADE_DATE<='%s')`, start, end)
	}
	return c.dataCenter(ctx, "RPT_DAILYBILLBOARD_DETAILSNEW", filter, lhbFields)
}

var boardFields = []field{
	{Code: "f12", Label: "代码"},
	{Code: "f14", Label: "名称"},
	{Code: "f3", Label: "涨跌幅"},
}

func (c *Client) opSectorRanking(ctx context.Context, args capability.Args) (any, error) {
	fs := "m:90+t:2" // industry boards
	if t := argOr(args, "", "sector_type"); t == "概念" || t == "concept" {
		fs = "m:90+t:3"
	}
	return c.clist(ctx, fs, boardFields, 500, "")
}

func (c *Client) opBoardConstituents(ctx context.Context, args capability.Args) (any, error) {
	name := argOr(args, "", "symbol")
	if name == "" {
		return nil, fmt.Errorf("board name is required")
	}

	boards, err := c.clist(ctx, "m:90+t:2", boardFields, 500, "")
	if err != nil {
		return nil, err
	}
	var boardCode string
	for i := 0; i < boards.Len(); i++ {
		row := boards.Row(i)
		if fmt.Sprint(row[1]) == name {
			boardCode = fmt.Sprint(row[0])
			break
		}
	}
	if boardCode == "" {
		return nil, fmt.Errorf("board not found: %s", name)
	}

	return c.clist(ctx, "b:"+boardCode, spotFields, 200, "")
}

func (c *Client) opHotRank(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23", spotFields, 100, "f3")
}

func (c *Client) opETFSpot(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "b:MK0021,b:MK0022,b:MK0023,b:MK0024", spotFields, 200, "")
}

func (c *Client) opETFHist(ctx context.Context, args capability.Args) (any, error) {
	symbol := argOr(args, "", "symbol")
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	klt := periodToKlt(argOr(args, "daily", "period"))
	beg := argOr(args, "19900101", "start_date")
	end := argOr(args, "20500101", "end_date")
	return c.kline(ctx, symbol, klt, beg, end)
}

func (c *Client) opConvertibleBondSpot(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "b:MK0354", spotFields, 500, "")
}

func (c *Client) opHKSpot(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:128+t:3,m:128+t:4,m:128+t:1,m:128+t:2", spotFields, 200, "")
}

func (c *Client) opUSSpot(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:105,m:106,m:107", spotFields, 200, "")
}

var optionFields = []field{
	{Code: "f12", Label: "代码"},
	{Code: "f14", Label: "名称"},
	{Code: "f2", Label: "最新价"},
	{Code: "f3", Label: "涨跌幅"},
	{Code: "f108", Label: "持仓量"},
}

func (c *Client) opOptionCurrent(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:10", optionFields, 200, "")
}

func (c *Client) opFuturesMain(ctx context.Context, args capability.Args) (any, error) {
	return c.clist(ctx, "m:113,m:114,m:115,m:8", spotFields, 200, "")
}
