package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideIndex_BidsIterateHighestFirst(t *testing.T) {
	bids := newBidIndex()
	bids.GetOrInsert(99.0).Add(Order{ID: 1, Side: Buy, Price: 99.0, Qty: 10})
	bids.GetOrInsert(98.0).Add(Order{ID: 2, Side: Buy, Price: 98.0, Qty: 10})
	bids.GetOrInsert(100.5).Add(Order{ID: 3, Side: Buy, Price: 100.5, Qty: 10})

	items := bids.Items()
	prices := make([]float32, len(items))
	for i, l := range items {
		prices[i] = l.Price
	}
	assert.Equal(t, []float32{100.5, 99.0, 98.0}, prices)

	best, ok := bids.Best()
	assert.True(t, ok)
	assert.EqualValues(t, 100.5, best.Price)
}

func TestSideIndex_AsksIterateLowestFirst(t *testing.T) {
	asks := newAskIndex()
	asks.GetOrInsert(100.0).Add(Order{ID: 1, Side: Sell, Price: 100.0, Qty: 10})
	asks.GetOrInsert(101.0).Add(Order{ID: 2, Side: Sell, Price: 101.0, Qty: 10})
	asks.GetOrInsert(99.5).Add(Order{ID: 3, Side: Sell, Price: 99.5, Qty: 10})

	items := asks.Items()
	prices := make([]float32, len(items))
	for i, l := range items {
		prices[i] = l.Price
	}
	assert.Equal(t, []float32{99.5, 100.0, 101.0}, prices)

	best, ok := asks.Best()
	assert.True(t, ok)
	assert.EqualValues(t, 99.5, best.Price)
}

func TestSideIndex_DropIfEmpty(t *testing.T) {
	asks := newAskIndex()
	level := asks.GetOrInsert(100.0)
	level.Add(Order{ID: 1, Side: Sell, Price: 100.0, Qty: 10})

	level.Remove(1)
	assert.True(t, level.empty())

	asks.DropIfEmpty(100.0)
	_, ok := asks.Get(100.0)
	assert.False(t, ok)
}

func TestSideIndex_GetOrInsert_ReusesExistingLevel(t *testing.T) {
	bids := newBidIndex()
	l1 := bids.GetOrInsert(10.0)
	l1.Add(Order{ID: 1, Side: Buy, Price: 10.0, Qty: 5})
	l2 := bids.GetOrInsert(10.0)
	assert.Same(t, l1, l2)
	assert.EqualValues(t, 5, l2.TotalQty)
}

func TestPriceBits_PreservesOrderForNonNegativeFinite(t *testing.T) {
	prices := []float32{0, 0.01, 1, 12.2, 12.5, 100, 1e6}
	for i := 1; i < len(prices); i++ {
		assert.Less(t, priceBits(prices[i-1]), priceBits(prices[i]))
	}
}
