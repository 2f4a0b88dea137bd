package adapter

import (
	"testing"
	"time"

	"github.com/finquery/finquery/internal/capability"
	"github.com/stretchr/testify/assert"
)

func TestCleanSymbol(t *testing.T) {
	assert.Equal(t, "600519", CleanSymbol("sh600519"))
	assert.Equal(t, "600519", CleanSymbol("SH600519"))
	assert.Equal(t, "000001", CleanSymbol("sz000001"))
	assert.Equal(t, "430047", CleanSymbol("bj430047"))
	assert.Equal(t, "600519", CleanSymbol("600519"))
	assert.Equal(t, "", CleanSymbol(""))

	// Cleaning an already clean symbol changes nothing.
	assert.Equal(t, CleanSymbol("600519"), CleanSymbol(CleanSymbol("sh600519")))
}

func TestMarketFromSymbol(t *testing.T) {
	assert.Equal(t, "sz", MarketFromSymbol("000001"))
	assert.Equal(t, "sz", MarketFromSymbol("300750"))
	assert.Equal(t, "bj", MarketFromSymbol("830799"))
	assert.Equal(t, "bj", MarketFromSymbol("430047"))
	assert.Equal(t, "sh", MarketFromSymbol("600519"))
	assert.Equal(t, "sh", MarketFromSymbol("688981"))
}

func TestNormalizeTradeDate(t *testing.T) {
	s := New(capability.NewRegistry(), WithNow(func() time.Time {
		return time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local)
	}))

	assert.Equal(t, "20240105", s.normalizeTradeDate(""))
	assert.Equal(t, "20240105", s.normalizeTradeDate("today"))
	assert.Equal(t, "20240105", s.normalizeTradeDate("今天"))
	assert.Equal(t, "20240104", s.normalizeTradeDate("yesterday"))
	assert.Equal(t, "20240104", s.normalizeTradeDate("昨日"))
	assert.Equal(t, "20240105", s.normalizeTradeDate("2024-01-05"))
	assert.Equal(t, "20240105", s.normalizeTradeDate("2024/01/05"))
	assert.Equal(t, "20240105", s.normalizeTradeDate("20240105"))
}
