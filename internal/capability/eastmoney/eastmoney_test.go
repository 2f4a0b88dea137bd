package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/config"
	"github.com/finquery/finquery/internal/table"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.CapabilityConfig{
		Timeout: 5 * time.Second,
		Eastmoney: config.EastmoneyConfig{
			HistoryURL:    srv.URL + "/kline",
			ListURL:       srv.URL + "/clist",
			FlowURL:       srv.URL + "/fflow",
			PoolURL:       srv.URL + "/getTopicZTPool",
			DataCenterURL: srv.URL + "/datacenter",
			NewsURL:       srv.URL + "/news",
			ReportURL:     srv.URL + "/report",
		},
	}
	return New(cfg, nil)
}

func TestOpIndexSpot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/clist", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fs") == "" {
			t.Error("expected fs param")
		}
		w.Write([]byte(`{"data":{"total":2,"diff":[
			{"f12":"000001","f14":"上证指数","f2":3050.1,"f3":0.52,"f4":15.8,"f5":280000000,"f6":340000000000},
			{"f12":"399001","f14":"深证成指","f2":9500.4,"f3":-0.22,"f4":-21.0,"f5":310000000,"f6":400000000000}
		]}}`))
	})
	c := testClient(t, mux)

	payload, err := c.opIndexSpot(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, ok := table.Records(payload, 0)
	if !ok || len(records) != 2 {
		t.Fatalf("expected 2 records, got %d (ok=%v)", len(records), ok)
	}
	if v, _ := records[0].Get("名称"); v != "上证指数" {
		t.Errorf("unexpected first row name: %v", v)
	}
}

func TestOpStockHist(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/kline", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("secid"); got != "1.600519" {
			t.Errorf("expected secid 1.600519, got %s", got)
		}
		if got := r.URL.Query().Get("klt"); got != "101" {
			t.Errorf("expected klt 101, got %s", got)
		}
		w.Write([]byte(`{"data":{"code":"600519","name":"贵州茅台","klines":[
			"2024-01-04,1688.0,1690.5,1699.0,1681.2,25000,42000000,1.05",
			"2024-01-05,1690.0,1702.3,1705.8,1688.8,28000,47000000,1.01"
		]}}`))
	})
	c := testClient(t, mux)

	payload, err := c.opStockHist(context.Background(), capability.Args{"symbol": "600519", "period": "daily"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, ok := table.Records(payload, 0)
	if !ok || len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if v, _ := records[1].Get("日期"); v != "2024-01-05" {
		t.Errorf("unexpected date: %v", v)
	}
	if v, _ := records[1].Get("收盘"); v != 1702.3 {
		t.Errorf("numeric column should parse, got %v", v)
	}
}

func TestOpStockHist_MissingSymbol(t *testing.T) {
	c := testClient(t, http.NewServeMux())
	if _, err := c.opStockHist(context.Background(), nil); err == nil {
		t.Fatal("expected error without symbol")
	}
}

func TestOpLimitUpPool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/getTopicZTPool", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "20240105" {
			t.Errorf("expected date 20240105, got %s", got)
		}
		w.Write([]byte(`{"data":{"pool":[
			{"c":"600519","n":"贵州茅台","p":1702300,"zdp":10.0,"amount":47000000,"hs":1.2,"lbc":2}
		]}}`))
	})
	c := testClient(t, mux)

	payload, err := c.opLimitUpPool(context.Background(), capability.Args{"date": "20240105"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, _ := table.Records(payload, 0)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if v, _ := records[0].Get("最新价"); v != 1702.3 {
		t.Errorf("price should be scaled from thousandths, got %v", v)
	}
}

func TestOpResearchReport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("stockCode"); got != "600519" {
			t.Errorf("expected stockCode 600519, got %s", got)
		}
		w.Write([]byte(`<html><body><table><tbody>
			<tr><td>600519</td><td>贵州茅台</td><td>稳中有进</td><td>买入</td><td>某证券</td><td>2024-01-05</td></tr>
			<tr><td>600519</td><td>贵州茅台</td><td>业绩点评</td><td>增持</td><td>另一证券</td><td>2024-01-04</td></tr>
		</tbody></table></body></html>`))
	})
	c := testClient(t, mux)

	payload, err := c.opResearchReport(context.Background(), capability.Args{"symbol": "600519"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, _ := table.Records(payload, 0)
	if len(records) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(records))
	}
	if v, _ := records[0].Get("东财评级"); v != "买入" {
		t.Errorf("unexpected rating: %v", v)
	}
}

func TestOpIndividualFundFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fflow", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("secid"); got != "1.600519" {
			t.Errorf("expected secid 1.600519, got %s", got)
		}
		w.Write([]byte(`{"data":{"klines":[
			"2024-01-04,1200000,-300000,-200000,500000,700000,3.2",
			"2024-01-05,-800000,200000,100000,-400000,-400000,-2.1"
		]}}`))
	})
	c := testClient(t, mux)

	payload, err := c.opIndividualFundFlow(context.Background(), capability.Args{"stock": "600519", "market": "sh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, _ := table.Records(payload, 0)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if v, _ := records[0].Get("主力净流入-净额"); v != 1200000.0 {
		t.Errorf("unexpected main inflow: %v", v)
	}
}

func TestOpFinancialAbstract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/datacenter", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("reportName"); got != "RPT_F10_FINANCE_MAINFINADATA" {
			t.Errorf("unexpected reportName %s", got)
		}
		w.Write([]byte(`{"result":{"data":[
			{"REPORT_DATE":"2023-09-30","EPSJB":44.68,"BPS":158.2,"ROEJQ":25.1,"XSMLL":91.5,"TOTALOPERATEREVE":105000000000,"PARENTNETPROFIT":52800000000,"ZCFZL":18.3}
		]}}`))
	})
	c := testClient(t, mux)

	payload, err := c.opFinancialAbstract(context.Background(), capability.Args{"symbol": "600519"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, _ := table.Records(payload, 0)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if v, _ := records[0].Get("净资产收益率"); v != 25.1 {
		t.Errorf("unexpected ROE: %v", v)
	}
}

func TestRegistry_RegisteredOps(t *testing.T) {
	c := testClient(t, http.NewServeMux())
	reg := c.Registry()

	for _, op := range []string{
		"stock_zh_a_hist", "stock_zt_pool_em", "stock_individual_fund_flow",
		"stock_financial_abstract_ths", "stock_research_report_em", "stock_news_em",
	} {
		if !reg.Has(op) {
			t.Errorf("expected %s to be registered", op)
		}
	}

	// Sina index snapshot stays unregistered; the adapters fall back to the
	// em variant.
	if reg.Has("stock_zh_index_spot_sina") {
		t.Error("stock_zh_index_spot_sina should not be registered")
	}
}

func TestSecid(t *testing.T) {
	tests := []struct{ code, want string }{
		{"600519", "1.600519"},
		{"510300", "1.510300"},
		{"000001", "0.000001"},
		{"300750", "0.300750"},
	}
	for _, tt := range tests {
		if got := secid(tt.code); got != tt.want {
			t.Errorf("secid(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
}
