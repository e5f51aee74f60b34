package cryptotax

import (
	"iter"
	"maps"
	"slices"
)

// bucket holds the open lots of one (coin, wallet) pair.
type bucket struct {
	Coin   string
	Wallet string
	lots   lots
}

// Ledger maintains, per (coin, wallet) key, the FIFO queue of open cost-basis
// lots. A Ledger is exclusively owned by one calculation run: every call to
// Compute constructs its own and discards it on return, so there is no shared
// state between concurrent calculations.
type Ledger struct {
	buckets map[string]*bucket
}

// NewLedger creates an empty lot ledger.
func NewLedger() *Ledger {
	return &Ledger{buckets: make(map[string]*bucket)}
}

// BucketKey returns the ledger key for a (coin, wallet) pair.
func BucketKey(coin, wallet string) string {
	return coin + "_" + wallet
}

// Has reports whether a bucket exists for the (coin, wallet) pair. A bucket
// exists from the moment something was appended to it, even if all its lots
// have since been drained.
func (l *Ledger) Has(coin, wallet string) bool {
	_, ok := l.buckets[BucketKey(coin, wallet)]
	return ok
}

// Append pushes a new lot to the tail of the (coin, wallet) queue, creating
// the bucket on first use. Since transactions arrive date-sorted, append
// order equals acquisition-date order.
func (l *Ledger) Append(coin, wallet string, amount Quantity, price Money, day Date) {
	key := BucketKey(coin, wallet)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{Coin: coin, Wallet: wallet}
		l.buckets[key] = b
	}
	b.lots = append(b.lots, Lot{Amount: amount, Price: price, Date: day})
}

// Consume takes the requested quantity from the (coin, wallet) queue in FIFO
// order and returns one match per touched lot plus the unmatched remainder.
// A missing bucket is treated as empty: no matches, everything unmatched.
func (l *Ledger) Consume(coin, wallet string, requested Quantity) (matches []Lot, unmatched Quantity) {
	b, ok := l.buckets[BucketKey(coin, wallet)]
	if !ok {
		return nil, requested
	}
	matches, b.lots, unmatched = b.lots.consume(requested)
	return matches, unmatched
}

// Total is the sum of the remaining lot amounts of the (coin, wallet) pair,
// rounded to the coin-quantity precision. A missing bucket totals zero.
func (l *Ledger) Total(coin, wallet string) Quantity {
	b, ok := l.buckets[BucketKey(coin, wallet)]
	if !ok {
		return Quantity{}
	}
	return b.lots.total().Round()
}

// buckets are iterated in sorted key order so reports are deterministic.
func (l *Ledger) all() iter.Seq[*bucket] {
	return func(yield func(*bucket) bool) {
		keys := slices.Collect(maps.Keys(l.buckets))
		slices.Sort(keys)
		for _, key := range keys {
			if !yield(l.buckets[key]) {
				return
			}
		}
	}
}
