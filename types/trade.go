package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is the realized view of one ClosedPosition after fees and
// capital compounding.
type TradeRecord struct {
	Index       int             `json:"index"`
	Side        Side            `json:"type"`
	EntryTime   time.Time       `json:"entryTime"`
	ExitTime    time.Time       `json:"exitTime"`
	EntryPrice  decimal.Decimal `json:"entryPrice"`
	ExitPrice   decimal.Decimal `json:"exitPrice"`
	EntryAmount decimal.Decimal `json:"entryAmount"`
	ExitAmount  decimal.Decimal `json:"exitAmount"`
	Profit      decimal.Decimal `json:"profit"`
	ProfitPct   decimal.Decimal `json:"profitPercentage"`
	Fee         decimal.Decimal `json:"fee"`
	MaxLoss     decimal.Decimal `json:"maxLoss"`
	MaxDrawdown decimal.Decimal `json:"maxDrawdown"`
}

func (t TradeRecord) IsWin() bool {
	return t.Profit.GreaterThan(decimal.Zero)
}
