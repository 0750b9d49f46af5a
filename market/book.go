package market

// Level is one resting order book level.
type Level struct {
	Price float64
	Qty   float64
}

// Book is an order book snapshot. Bids are sorted descending by price, asks
// ascending, as reported by the exchange. A crossed book (best bid above
// best ask) is tolerated and simply yields a negative spread downstream.
type Book struct {
	Bids         []Level
	Asks         []Level
	LastUpdateID int64 // exchange book-revision identifier, passed through verbatim
}

// BestBid returns the top bid level, if any.
func (b *Book) BestBid() (Level, bool) {
	if b == nil || len(b.Bids) == 0 {
		return Level{}, false
	}
	return b.Bids[0], true
}

// BestAsk returns the top ask level, if any.
func (b *Book) BestAsk() (Level, bool) {
	if b == nil || len(b.Asks) == 0 {
		return Level{}, false
	}
	return b.Asks[0], true
}

// SumQty sums quantities over at most the first n levels. If fewer levels
// exist, all available levels are summed.
func SumQty(levels []Level, n int) float64 {
	if n > len(levels) {
		n = len(levels)
	}
	total := 0.0
	for _, lv := range levels[:n] {
		total += lv.Qty
	}
	return total
}
