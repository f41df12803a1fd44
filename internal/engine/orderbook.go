package engine

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLimitAbsent is returned by Cancel when no PriceLevel exists at the
	// requested (side, price).
	ErrLimitAbsent = errors.New("no price level at that side and price")
	// ErrIDAbsent is returned by Cancel when the PriceLevel exists but does
	// not contain the requested order id.
	ErrIDAbsent = errors.New("order id not resting at that price level")
)

// OrderRef addresses a resting order for cancellation.
type OrderRef struct {
	Side  Side
	Price float32
	ID    uint32
}

// OrderBook is a single-instrument, price/time-priority continuous limit
// order book. It is not safe for concurrent use: submit and cancel must be
// externally serialized (see internal/server, which owns exactly one
// OrderBook per instrument and drives it from a single goroutine).
type OrderBook struct {
	Symbol string

	Bids sideIndex
	Asks sideIndex

	trades []Trade
}

// NewOrderBook creates an empty book for symbol.
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		Symbol: symbol,
		Bids:   newBidIndex(),
		Asks:   newAskIndex(),
	}
}

// Submit validates, matches, and rests order. Returns the trades generated
// by this call; they are also appended to the book's trade log. A zero-qty
// or non-finite-price order is silently dropped: no trade, nothing
// inserted.
func (b *OrderBook) Submit(order Order) []Trade {
	if order.Qty == 0 || math.IsNaN(float64(order.Price)) || math.IsInf(float64(order.Price), 0) {
		return nil
	}

	trades := sweep(b.side(order.Side.Opposite()), &order)
	if len(trades) > 0 {
		b.trades = append(b.trades, trades...)
	}

	if order.Qty > 0 {
		b.side(order.Side).GetOrInsert(order.Price).Add(order)
	}

	return trades
}

// side returns the sideIndex corresponding to s: Bids for Buy, Asks for
// Sell.
func (b *OrderBook) side(s Side) sideIndex {
	if s == Buy {
		return b.Bids
	}
	return b.Asks
}

// Cancel removes the resting order identified by ref. It does not
// generate trades and does not affect the trade log.
func (b *OrderBook) Cancel(ref OrderRef) (Order, error) {
	side := b.side(ref.Side)

	level, ok := side.Get(ref.Price)
	if !ok {
		return Order{}, ErrLimitAbsent
	}

	removed, ok := level.Remove(ref.ID)
	if !ok {
		return Order{}, ErrIDAbsent
	}

	side.DropIfEmpty(ref.Price)
	return removed, nil
}

// BestBid returns the highest-priced bid level, if any.
func (b *OrderBook) BestBid() (*PriceLevel, bool) {
	return b.Bids.Best()
}

// BestAsk returns the lowest-priced ask level, if any.
func (b *OrderBook) BestAsk() (*PriceLevel, bool) {
	return b.Asks.Best()
}

// Spread returns best_ask - best_bid when both sides are populated. If
// only one side is populated it returns that side's signed price as a
// single-field monitoring signal (negative for a bid-only book); if the
// book is empty it returns 0.
func (b *OrderBook) Spread() float32 {
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()

	switch {
	case hasBid && hasAsk:
		return ask.Price - bid.Price
	case hasBid:
		return -bid.Price
	case hasAsk:
		return ask.Price
	default:
		return 0
	}
}

// Trades returns the book's append-only trade log, oldest first.
func (b *OrderBook) Trades() []Trade {
	return b.trades
}

// Summary renders a one-line textual summary: best ask, best bid, trade
// count, spread.
func (b *OrderBook) Summary() string {
	bidStr, askStr := "-", "-"
	if bid, ok := b.BestBid(); ok {
		bidStr = fmt.Sprintf("%g", bid.Price)
	}
	if ask, ok := b.BestAsk(); ok {
		askStr = fmt.Sprintf("%g", ask.Price)
	}
	return fmt.Sprintf("symbol=%s best_ask=%s best_bid=%s trades=%d spread=%g",
		b.Symbol, askStr, bidStr, len(b.trades), b.Spread())
}
