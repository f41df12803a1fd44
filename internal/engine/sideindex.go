package engine

import (
	"math"

	"github.com/tidwall/btree"
)

// priceBits maps a finite, non-negative float32 onto a uint32 that sorts
// the same way the price does, giving a strict total order to hand to a
// BTreeG as a comparator. NaN is rejected by the caller before it ever
// reaches here.
func priceBits(p float32) uint32 {
	bits := math.Float32bits(p)
	if bits&0x80000000 != 0 {
		return ^bits
	}
	return bits | 0x80000000
}

// PriceLevels is the underlying ordered container backing one side of the
// book: a BTreeG keyed by price, comparator direction chosen per side.
type PriceLevels = btree.BTreeG[*PriceLevel]

// sideIndex is a price-ordered mapping from price to PriceLevel. For Bids
// it iterates highest price first; for Asks, lowest price first. Both are
// backed by the same btree.BTreeG, just with inverted comparators.
type sideIndex struct {
	levels *PriceLevels
}

func newBidIndex() sideIndex {
	return sideIndex{levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return priceBits(a.Price) > priceBits(b.Price) // highest first
	})}
}

func newAskIndex() sideIndex {
	return sideIndex{levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return priceBits(a.Price) < priceBits(b.Price) // lowest first
	})}
}

// Best returns the level at the best price for this side, or false if the
// side is empty.
func (s sideIndex) Best() (*PriceLevel, bool) {
	return s.levels.Min()
}

// Get looks up the level at price without creating one.
func (s sideIndex) Get(price float32) (*PriceLevel, bool) {
	return s.levels.Get(&PriceLevel{Price: price})
}

// GetOrInsert returns the existing level at price, creating an empty one
// if none exists yet.
func (s sideIndex) GetOrInsert(price float32) *PriceLevel {
	if level, ok := s.levels.Get(&PriceLevel{Price: price}); ok {
		return level
	}
	level := newPriceLevel(price)
	s.levels.Set(level)
	return level
}

// DropIfEmpty removes the level at price if it currently holds no
// quantity. No-op if the level doesn't exist or isn't empty.
func (s sideIndex) DropIfEmpty(price float32) {
	if level, ok := s.levels.Get(&PriceLevel{Price: price}); ok && level.empty() {
		s.levels.Delete(level)
	}
}

// dropEmptyLevels evicts every currently-empty level. Defensive: the
// matching routine should only ever leave at most one empty level behind
// per sweep iteration, but this sweeps all of them to be sure no empty
// level survives (invariant I1).
func (s sideIndex) dropEmptyLevels() {
	var empties []*PriceLevel
	s.levels.Scan(func(level *PriceLevel) bool {
		if level.empty() {
			empties = append(empties, level)
		}
		return true
	})
	for _, level := range empties {
		s.levels.Delete(level)
	}
}

// Len reports the number of resting price levels on this side.
func (s sideIndex) Len() int {
	return s.levels.Len()
}

// Items returns every level on this side in best-first order. Intended for
// reporting and tests, not for hot-path matching.
func (s sideIndex) Items() []*PriceLevel {
	items := make([]*PriceLevel, 0, s.levels.Len())
	s.levels.Scan(func(level *PriceLevel) bool {
		items = append(items, level)
		return true
	})
	return items
}
