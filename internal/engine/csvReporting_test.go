package engine

import (
	"backtestreport/types"
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTradesCSV(t *testing.T) {
	trades := realizeTrades(dailyBars(100, 110, 99), []types.ClosedPosition{long(0, 1), short(1, 2)}, dec("1000"), dec("0.001"))

	var buf bytes.Buffer
	require.NoError(t, WriteTradesCSV(&buf, trades))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "index", rows[0][0])
	assert.Equal(t, "max_drawdown", rows[0][len(rows[0])-1])
	assert.Equal(t, []string{"1", "BUY"}, rows[1][:2])
	assert.Equal(t, []string{"2", "SELL"}, rows[2][:2])
	assert.Equal(t, "2024-01-01T00:00:00Z", rows[1][2])
	assert.Equal(t, "0.1", rows[1][9])
}

func TestWriteTradesCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteTradesCSVFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "index,side,entry_time,exit_time,entry_price,exit_price,entry_amount,exit_amount,profit,profit_pct,fee,max_loss,max_drawdown\n", string(data))

	err = WriteTradesCSVFile(filepath.Join(t.TempDir(), "missing", "trades.csv"), nil)
	assert.Error(t, err)
}
