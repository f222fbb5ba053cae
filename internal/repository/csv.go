package repository

import (
	"backtestreport/types"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMissingColumn = errors.New("missing csv column")

// CSVBarStore reads bars from <Dir>/<TICKER>_<interval>.csv files with a
// header naming at least end_time and close.
type CSVBarStore struct {
	Dir string
}

func NewCSVBarStore(dir string) *CSVBarStore {
	return &CSVBarStore{Dir: dir}
}

func (s *CSVBarStore) GetBars(_ context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.csv", strings.ToUpper(ticker), interval))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	defer f.Close()

	bars, err := ReadBarsCSV(f, ticker)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	bars = filterBars(bars, start, end)
	if len(bars) == 0 {
		return nil, ErrNoCandles
	}
	return bars, nil
}

// ReadBarsCSV parses bars. end_time is RFC3339 or Unix milliseconds;
// open, high, low and volume are optional.
func ReadBarsCSV(r io.Reader, ticker string) ([]types.Bar, error) {
	rows, cols, err := readTable(r, "end_time", "close")
	if err != nil {
		return nil, err
	}
	bars := make([]types.Bar, 0, len(rows))
	for line, row := range rows {
		ts, err := parseTime(row[cols["end_time"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		closePrice, err := decimal.NewFromString(row[cols["close"]])
		if err != nil {
			return nil, fmt.Errorf("line %d close: %w", line+2, err)
		}
		b := types.NewBar(ts, closePrice)
		b.Ticker = ticker
		for name, dst := range map[string]*decimal.Decimal{"open": &b.Open, "high": &b.High, "low": &b.Low, "volume": &b.Volume} {
			i, ok := cols[name]
			if !ok || row[i] == "" {
				continue
			}
			v, err := decimal.NewFromString(row[i])
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line+2, name, err)
			}
			*dst = v
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// ReadPositionsCSV parses closed positions from entry_index, exit_index and
// side columns. side is long/short or BUY/SELL. entry_price and exit_price
// are optional.
func ReadPositionsCSV(r io.Reader) ([]types.ClosedPosition, error) {
	rows, cols, err := readTable(r, "entry_index", "exit_index", "side")
	if err != nil {
		return nil, err
	}
	positions := make([]types.ClosedPosition, 0, len(rows))
	for line, row := range rows {
		var p types.ClosedPosition
		if p.EntryIndex, err = strconv.Atoi(row[cols["entry_index"]]); err != nil {
			return nil, fmt.Errorf("line %d entry_index: %w", line+2, err)
		}
		if p.ExitIndex, err = strconv.Atoi(row[cols["exit_index"]]); err != nil {
			return nil, fmt.Errorf("line %d exit_index: %w", line+2, err)
		}
		if p.IsLong, err = parseSide(row[cols["side"]]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if i, ok := cols["entry_price"]; ok && row[i] != "" {
			if p.EntryPrice, err = decimal.NewFromString(row[i]); err != nil {
				return nil, fmt.Errorf("line %d entry_price: %w", line+2, err)
			}
		}
		if i, ok := cols["exit_price"]; ok && row[i] != "" {
			if p.ExitPrice, err = decimal.NewFromString(row[i]); err != nil {
				return nil, fmt.Errorf("line %d exit_price: %w", line+2, err)
			}
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// ReadPositionsCSVFile opens path and parses it with ReadPositionsCSV.
func ReadPositionsCSVFile(path string) ([]types.ClosedPosition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open positions file: %w", err)
	}
	defer f.Close()

	positions, err := ReadPositionsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return positions, nil
}

// readTable reads a headed CSV and maps the lower-cased column names to
// their index.
func readTable(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, cols, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func parseSide(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", string(types.SideTypeBuy):
		return true, nil
	case "SHORT", string(types.SideTypeSell):
		return false, nil
	default:
		return false, fmt.Errorf("unknown side %q", s)
	}
}
