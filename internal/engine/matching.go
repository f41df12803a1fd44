package engine

// marketable reports whether the best level on the opposite side, at
// levelPrice, can trade against an incoming order limited at
// incomingPrice. For an aggressive Sell, the opposite side is Bids, and a
// bid is marketable when bid_price >= sell_price. For an aggressive Buy,
// the opposite side is Asks, and an ask is marketable when
// ask_price <= buy_price.
func marketable(side Side, levelPrice, incomingPrice float32) bool {
	if side == Buy {
		return levelPrice <= incomingPrice
	}
	return levelPrice >= incomingPrice
}

// sweep matches incoming against the opposite side best-first, generating
// trades, until incoming is exhausted or the best remaining level on the
// opposite side is no longer marketable. Each iteration either reduces
// incoming.Qty, removes an emptied level, or breaks, so the loop
// terminates.
func sweep(opposite sideIndex, incoming *Order) []Trade {
	var trades []Trade

	for {
		opposite.dropEmptyLevels()

		if incoming.Qty == 0 {
			break
		}

		level, ok := opposite.Best()
		if !ok {
			break
		}

		if !marketable(incoming.Side, level.Price, incoming.Price) {
			break
		}

		trades = append(trades, level.MatchAgainst(incoming)...)
	}

	opposite.dropEmptyLevels()
	return trades
}
