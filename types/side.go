package types

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)
