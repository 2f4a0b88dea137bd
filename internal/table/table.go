// Package table models tabular upstream results and their projection into
// normalized records.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finquery/finquery/internal/core"
)

// Tabular is implemented by upstream payloads that can project to records.
// Payloads that do not implement it are handled via the string fallback.
type Tabular interface {
	Columns() []string
	Len() int
	Row(i int) []any
}

// Table is the standard Tabular implementation returned by capabilities.
type Table struct {
	cols []string
	rows [][]any
}

// New creates a table with the given column labels.
func New(cols ...string) *Table {
	return &Table{cols: cols}
}

// Append adds one row. Short rows are padded with nil.
func (t *Table) Append(values ...any) {
	row := make([]any, len(t.cols))
	copy(row, values)
	t.rows = append(t.rows, row)
}

func (t *Table) Columns() []string { return t.cols }
func (t *Table) Len() int          { return len(t.rows) }
func (t *Table) Row(i int) []any   { return t.rows[i] }

// Records projects a payload to normalized records. A nil payload projects to
// an empty set. The second return reports whether the payload was tabular;
// callers use Fallback for the degraded string path when it is not.
// A positive limit keeps only the first limit rows; zero keeps everything.
func Records(payload any, limit int) ([]core.Record, bool) {
	if payload == nil {
		return []core.Record{}, true
	}

	tab, ok := payload.(Tabular)
	if !ok {
		return nil, false
	}

	n := tab.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	cols := tab.Columns()
	records := make([]core.Record, 0, n)
	for i := 0; i < n; i++ {
		row := tab.Row(i)
		rec := core.NewRecord()
		for j, col := range cols {
			if j < len(row) {
				rec.Set(col, row[j])
			} else {
				rec.Set(col, nil)
			}
		}
		records = append(records, rec)
	}
	return records, true
}

// Fallback renders a non-tabular payload as a string. Degraded but non-fatal.
func Fallback(payload any) string {
	return fmt.Sprint(payload)
}

// Reverse returns the records in reverse order. Callers apply it before
// limiting when an upstream operation reports oldest-first.
func Reverse(records []core.Record) []core.Record {
	out := make([]core.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// Head keeps the first n records; n <= 0 keeps everything.
func Head(records []core.Record, n int) []core.Record {
	if n > 0 && n < len(records) {
		return records[:n]
	}
	return records
}

// symbolKeys is the prioritized set of code-like field names scanned when a
// result must be narrowed to one instrument.
var symbolKeys = []string{"代码", "股票代码", "证券代码", "symbol", "代码简称"}

// FilterBySymbol keeps rows whose code-like field contains symbol. When no row
// matches the filter is a no-op so that field-name drift across upstream
// schema variants cannot discard a whole result set.
func FilterBySymbol(records []core.Record, symbol string) []core.Record {
	if symbol == "" {
		return records
	}

	var filtered []core.Record
	for _, rec := range records {
		for _, key := range symbolKeys {
			v, ok := rec.Get(key)
			if !ok || v == nil {
				continue
			}
			if strings.Contains(fmt.Sprint(v), symbol) {
				filtered = append(filtered, rec)
				break
			}
		}
	}

	if len(filtered) == 0 {
		return records
	}
	return filtered
}

// SafeFloat parses a scalar as a float, tolerating thousands separators and a
// trailing percent sign.
func SafeFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(x, ",", ""), "%", ""))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		f, err := strconv.ParseFloat(fmt.Sprint(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}

// FieldFloat returns the first parseable value among the given keys.
func FieldFloat(rec core.Record, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok && v != nil {
			if f, fok := SafeFloat(v); fok {
				return f, true
			}
		}
	}
	return 0, false
}
