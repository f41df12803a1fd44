package engine

import "fmt"

// Trade records that two units of opposing liquidity crossed. Price is
// always the passive (resting) order's price; price improvement accrues
// to the aggressor. A Trade is emitted once and never mutated afterward.
type Trade struct {
	AggressiveID uint32
	PassiveID    uint32
	Price        float32
	Qty          uint32
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{aggressive:%d passive:%d price:%g qty:%d}",
		t.AggressiveID, t.PassiveID, t.Price, t.Qty)
}
