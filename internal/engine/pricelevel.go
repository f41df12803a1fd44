package engine

// PriceLevel is the FIFO queue of resting orders at one limit price on one
// side. Invariants: TotalQty == sum of Orders[i].Qty, every Orders[i].Price
// == Price, every Orders[i].Qty > 0, Orders is ordered oldest-first.
type PriceLevel struct {
	Price    float32
	TotalQty uint32
	Orders   []Order
}

func newPriceLevel(price float32) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Add appends order to the tail of the queue. The caller guarantees
// order.Price == l.Price and order.Qty > 0.
func (l *PriceLevel) Add(order Order) {
	l.Orders = append(l.Orders, order)
	l.TotalQty += order.Qty
}

// Remove locates the first order with the given id (scanning from the
// head), removes it, and returns it. The second return value is false if
// no such order is resting at this level.
func (l *PriceLevel) Remove(id uint32) (Order, bool) {
	for i, o := range l.Orders {
		if o.ID != id {
			continue
		}
		removed := o
		l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
		l.TotalQty -= removed.Qty
		return removed, true
	}
	return Order{}, false
}

// MatchAgainst runs the local fill loop: while incoming has quantity left
// and the level is non-empty, cross it against the head resting order.
// The trade price is always l.Price, the resting side's price.
func (l *PriceLevel) MatchAgainst(incoming *Order) []Trade {
	var trades []Trade

	for incoming.Qty > 0 && len(l.Orders) > 0 {
		passive := &l.Orders[0]

		qty := min32(incoming.Qty, passive.Qty)
		trades = append(trades, Trade{
			AggressiveID: incoming.ID,
			PassiveID:    passive.ID,
			Price:        l.Price,
			Qty:          qty,
		})

		incoming.Qty -= qty
		passive.Qty -= qty
		l.TotalQty -= qty

		if passive.Qty == 0 {
			l.Orders = l.Orders[1:]
		}
	}

	return trades
}

func (l *PriceLevel) empty() bool {
	return l.TotalQty == 0
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
