package engine

import (
	"backtestreport/types"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteTradesCSVFile writes trades to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return WriteTradesCSV(f, trades)
}

// WriteTradesCSV writes trades to any io.Writer as CSV.
func WriteTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"index",
		"side",
		"entry_time", // RFC3339
		"exit_time",
		"entry_price",
		"exit_price",
		"entry_amount",
		"exit_amount",
		"profit",
		"profit_pct",
		"fee",
		"max_loss",
		"max_drawdown",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		if err := writeTradeRow(cw, t); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func writeTradeRow(cw *csv.Writer, t types.TradeRecord) error {
	record := []string{
		strconv.Itoa(t.Index),
		string(t.Side),
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		t.EntryPrice.String(),
		t.ExitPrice.String(),
		t.EntryAmount.StringFixed(8),
		t.ExitAmount.StringFixed(8),
		t.Profit.StringFixed(8),
		t.ProfitPct.String(),
		t.Fee.StringFixed(8),
		t.MaxLoss.String(),
		t.MaxDrawdown.String(),
	}

	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
