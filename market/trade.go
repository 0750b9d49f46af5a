package market

import "time"

// Side is the taker side of an executed trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade represents a normalized trade tick. Trades are kept in
// exchange-reported execution order; downstream calculations depend on
// sequence order, not on sorting by time.
type Trade struct {
	Time  int64   // epoch milliseconds
	Price float64 // positive
	Qty   float64 // non-negative; zero-qty trades contribute nothing to ratios
	Side  Side
}

// TakerSide derives the taker side from the exchange's isBuyerMaker flag.
// isBuyerMaker=true means the buyer was the resting side, so the taker sold.
func TakerSide(isBuyerMaker bool) Side {
	if isBuyerMaker {
		return SideSell
	}
	return SideBuy
}

// FormatTime renders an epoch-millisecond timestamp as "2006-01-02 15:04:05"
// in UTC. Pure function of the epoch value.
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}
