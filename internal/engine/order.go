package engine

import "fmt"

// Order is a plain limit order. It is copied freely: an incoming Order is
// held transiently inside Submit, a resting Order lives inside exactly one
// PriceLevel until it is fully filled or cancelled.
type Order struct {
	ID    uint32  // client-supplied identifier, opaque to the engine
	Side  Side    // Buy or Sell
	Price float32 // limit price; finite, non-negative
	Qty   uint32  // remaining quantity; mutates as the order fills
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id:%d side:%s price:%g qty:%d}", o.ID, o.Side, o.Price, o.Qty)
}
