package cryptotax

// Lot is an open cost-basis slice: a quantity of coin acquired on a given
// date at a fixed unit price, consumed oldest-first on disposal.
type Lot struct {
	Amount Quantity `json:"amount"`
	Price  Money    `json:"price"` // unit price at acquisition
	Date   Date     `json:"date"`  // acquisition date
}

// Value returns the cost-basis value of the lot (amount times unit price).
func (l Lot) Value() Money { return l.Price.Mul(l.Amount) }

// lots is the FIFO queue of open lots of one ledger bucket. Lots are kept in
// acquisition order: appends go to the tail, consumption walks from the head.
type lots []Lot

// consume takes the requested quantity from the head of the queue. Each
// touched lot yields one match carrying the matched amount and the lot's
// original price and date. Drained lots are pruned from the remaining queue.
// If the queue runs out first, the shortfall is returned as unmatched and the
// caller decides how to surface it.
func (l lots) consume(requested Quantity) (matches []Lot, remaining lots, unmatched Quantity) {
	unmatched = requested
	for _, cur := range l {
		if !unmatched.IsPositive() {
			remaining = append(remaining, cur)
			continue
		}
		take := unmatched.Min(cur.Amount)
		matches = append(matches, Lot{Amount: take, Price: cur.Price, Date: cur.Date})
		unmatched = unmatched.Sub(take)
		if cur.Amount.GreaterThan(take) {
			// Partial consumption, the head lot survives shrunk.
			remaining = append(remaining, Lot{Amount: cur.Amount.Sub(take), Price: cur.Price, Date: cur.Date})
		}
	}
	return matches, remaining, unmatched
}

// total is the sum of the remaining lot amounts.
func (l lots) total() Quantity {
	var t Quantity
	for _, cur := range l {
		t = t.Add(cur.Amount)
	}
	return t
}

// baseCost is the total cost-basis value of the remaining lots.
func (l lots) baseCost() Money {
	var c Money
	for _, cur := range l {
		c = c.Add(cur.Value())
	}
	return c
}
