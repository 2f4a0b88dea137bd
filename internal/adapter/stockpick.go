package adapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
)

// sectorKeywords maps a canonical board name to the phrases users write.
var sectorKeywords = map[string][]string{
	"半导体":  {"半导体", "芯片", "集成电路"},
	"电子":   {"电子", "科技", "计算机"},
	"汽车":   {"汽车", "新能源车", "整车", "汽配"},
	"医药生物": {"医药", "医疗器械", "中药", "生物医药", "医疗", "医药生物"},
	"医药":   {"医药", "医疗器械", "中药", "生物医药", "医疗", "医药生物"},
	"光伏":   {"光伏", "光伏发电", "光伏设备"},
	"锂电池":  {"锂电池", "锂电", "电池", "动力电池"},
	"新能源":  {"新能源", "储能", "电动车", "电动汽车"},
	"银行":   {"银行", "银行股"},
	"保险":   {"保险", "保险股"},
	"证券":   {"证券", "券商"},
	"金融":   {"金融", "银行", "保险", "证券"},
	"房地产":  {"房地产", "地产", "物业"},
	"地产":   {"房地产", "地产", "物业"},
	"电力":   {"电力", "电力股", "发电"},
	"传媒":   {"传媒", "影视", "游戏"},
	"军工":   {"军工", "航天", "航空", "船舶", "国防"},
	"软件":   {"软件", "互联网", "计算机", "IT", "软件开发"},
	"食品":   {"食品", "零食", "食品加工"},
	"饮料":   {"饮料", "饮品"},
	"白酒":   {"白酒", "酒", "白酒股"},
	"家电":   {"家电", "白色家电", "冰洗"},
	"纺织":   {"纺织", "纺织服装", "服装"},
}

// sectorParam maps the canonical board name to the name the board feed
// actually accepts.
var sectorParam = map[string]string{
	"半导体":  "半导体",
	"电子":   "电子",
	"汽车":   "汽车",
	"医药生物": "医药生物",
	"医药":   "医药生物",
	"银行":   "银行",
	"保险":   "保险",
	"证券":   "证券",
	"房地产":  "房地产",
	"锂电池":  "锂电池",
	"电池":   "电池",
	"光伏":   "光伏设备",
	"光伏设备": "光伏设备",
	"电力":   "电力",
	"传媒":   "传媒",
	"军工":   "军工",
	"软件":   "软件开发",
	"食品":   "食品",
	"饮料":   "饮料",
	"白酒":   "白酒",
	"家电":   "家电",
	"纺织":   "纺织",
}

type pickCandidate struct {
	code string
	name string
	pct  float64
}

// StockPick recommends stocks from a board's constituents when a sector was
// named, otherwise from the hot-rank board, and annotates each candidate with
// the newest buy-rated broker report.
func (s *Service) StockPick(ctx context.Context, sector string, topN int) *core.OperationResult {
	if topN <= 0 {
		topN = 5
	}

	candidates := s.sectorConstituents(ctx, sector)
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].pct > candidates[j].pct })
		candidates = candidates[:minInt(topN, len(candidates))]
	} else {
		hot := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{Operation: "stock_hot_rank_em"}})
		if !hot.OK() {
			return fail("stock_hot_rank_em", hot.Err)
		}
		for _, rec := range recordsOrNil(hot.Payload) {
			code := normalizeCode(recordField(rec, "代码", "股票代码", "证券代码", "symbol"))
			if code == "" {
				continue
			}
			name := recordField(rec, "股票名称", "名称", "简称", "name")
			if name == "" {
				name = code
			}
			pct, _ := table.FieldFloat(rec, "涨跌幅", "涨跌幅%")
			candidates = append(candidates, pickCandidate{code: code, name: name, pct: pct})
		}
		if len(candidates) == 0 {
			return fail("stock_hot_rank_em", errors.New("热门股票数据为空"))
		}
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].pct > candidates[j].pct })
		candidates = candidates[:minInt(10, len(candidates))]
	}

	reports := s.buyRatedReports(ctx)

	selected := make([]core.Record, 0, len(candidates))
	for _, c := range candidates {
		rec := core.NewRecord()
		rec.Set("name", c.name)
		rec.Set("code", c.code)
		rec.Set("pct", c.pct)
		report := reports[c.code]
		rec.Set("report_org", report.org)
		rec.Set("report_rating", report.rating)
		rec.Set("report_title", report.title)
		selected = append(selected, rec)
	}

	return ok("stock_pick", map[string]any{
		"items": selected[:minInt(topN, len(selected))],
		"count": len(selected),
	})
}

// sectorConstituents loads a board's constituents when the sector phrase maps
// onto a known board. Failures degrade to the hot-rank path.
func (s *Service) sectorConstituents(ctx context.Context, sector string) []pickCandidate {
	if sector == "" {
		return nil
	}
	lowered := strings.ToLower(sector)
	board := ""
	for canonical, words := range sectorKeywords {
		for _, w := range words {
			if strings.Contains(lowered, strings.ToLower(w)) {
				board = canonical
				break
			}
		}
		if board != "" {
			break
		}
	}
	if board == "" {
		return nil
	}
	param := sectorParam[board]
	if param == "" {
		param = board
	}

	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{
		Operation: "stock_board_industry_cons_em",
		Args:      []capability.Args{{"symbol": param}},
	}})
	if !out.OK() {
		return nil
	}

	var picks []pickCandidate
	for _, rec := range recordsOrNil(out.Payload) {
		code := normalizeCode(recordField(rec, "代码", "股票代码"))
		if code == "" {
			continue
		}
		name := recordField(rec, "名称", "股票名称")
		if name == "" {
			name = code
		}
		pct, _ := table.FieldFloat(rec, "涨跌幅")
		picks = append(picks, pickCandidate{code: code, name: name, pct: pct})
	}
	return picks
}

type reportNote struct {
	org    string
	rating string
	title  string
}

// buyRatedReports indexes the newest buy-rated report per stock from the
// market-wide report feed. Empty on any failure.
func (s *Service) buyRatedReports(ctx context.Context) map[string]reportNote {
	out := s.res.Resolve(ctx, s.cap, []resolver.Candidate{{Operation: "stock_research_report_em"}})
	reports := map[string]reportNote{}
	if !out.OK() {
		return reports
	}
	records := table.Head(recordsOrNil(out.Payload), 50)
	for _, rec := range records {
		code := normalizeCode(recordField(rec, "股票代码", "代码"))
		rating := recordField(rec, "东财评级", "评级")
		if code == "" || !strings.Contains(rating, "买入") {
			continue
		}
		if _, seen := reports[code]; seen {
			continue
		}
		org := recordField(rec, "机构")
		if org == "" {
			org = "机构"
		}
		reports[code] = reportNote{
			org:    org,
			rating: rating,
			title:  truncateRunes(recordField(rec, "报告名称"), 20),
		}
	}
	return reports
}

// normalizeCode reduces a possibly prefixed board code to six digits.
func normalizeCode(value string) string {
	text := strings.ToUpper(strings.TrimSpace(value))
	if text == "" {
		return ""
	}
	text = strings.NewReplacer("SH", "", "SZ", "", "BJ", "").Replace(text)
	var digits []rune
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) >= 6 {
		return string(digits[:6])
	}
	return text
}

func recordField(rec core.Record, keys ...string) string {
	for _, key := range keys {
		if v, found := rec.Get(key); found && v != nil {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
