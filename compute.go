package cryptotax

import (
	"fmt"
	"maps"
	"slices"
)

// Compute runs the FIFO engine over canonical, date-sorted transactions and
// returns the full report. It is a pure function of its inputs: every call
// builds its own Ledger and tax-year buckets and discards them on return.
//
// Callers are expected to feed it the output of Normalize. Ledger-state
// failures (disposing from a bucket that was never funded) do not abort the
// run; they are recorded on the affected result and processing continues.
func Compute(txs []Transaction, policy Policy) *Report {
	c := &run{
		policy: policy,
		ledger: NewLedger(),
		years:  make(map[int]*YearSummary),
		snaps:  make(map[int][]Balance),
	}
	for i, tx := range txs {
		id := i + 1
		switch v := tx.(type) {
		case Buy:
			c.buy(id, v)
		case Sell:
			c.sell(id, v)
		case Trade:
			c.trade(id, v)
		case Transfer:
			c.transfer(id, v)
		}
		// The original acquisition cost standing at each fiscal-year start is
		// what the next year's disposals will be measured against.
		if tx.When().IsTaxYearStart() {
			if snap := c.balances(); len(snap) > 0 {
				c.snaps[tx.When().Year()] = snap
			}
		}
	}
	return c.finish(txs)
}

// run is the working state of one calculation: the lot ledger, the result
// list and the per-tax-year accumulators. Never reused across calls.
type run struct {
	policy  Policy
	ledger  *Ledger
	results []Result
	years   map[int]*YearSummary
	snaps   map[int][]Balance
}

func (c *run) buy(id int, t Buy) {
	// Under a fee-aware policy only the net quantity reaches the wallet.
	effective := t.Amount
	if !c.policy.FeeRate.IsZero() {
		effective = t.Amount.Sub(Q(t.Amount.value.Mul(c.policy.FeeRate)))
	}
	c.ledger.Append(t.Coin, t.Wallet, effective, t.Price, t.Date)

	c.results = append(c.results, Result{
		ID:         id,
		Type:       TxBuy,
		Date:       t.Date,
		Wallet:     t.Wallet,
		Coin:       t.Coin,
		Amount:     t.Amount,
		Price:      t.Price,
		Details:    fmt.Sprintf("Bought %s %s at %s", effective.Round(), t.Coin, t.Price),
		Remaining:  c.ledger.Total(t.Coin, t.Wallet),
		BalanceKey: BucketKey(t.Coin, t.Wallet),
	})
}

func (c *run) sell(id int, t Sell) {
	res := Result{
		ID:         id,
		Type:       TxSell,
		Date:       t.Date,
		Wallet:     t.Wallet,
		Coin:       t.Coin,
		Amount:     t.Amount,
		Price:      t.Price,
		BalanceKey: BucketKey(t.Coin, t.Wallet),
	}
	if !c.ledger.Has(t.Coin, t.Wallet) {
		res.Err = fmt.Sprintf("Insufficient %s balance for sale", t.Coin)
		c.results = append(c.results, res)
		return
	}

	matched, gain, tax, unmatched := c.dispose(t.Coin, t.Wallet, t.Amount, t.Price, t.Date)
	res.MatchedLots = matched
	res.CapitalGain = gain
	res.Tax = tax
	res.Unmatched = unmatched
	res.TaxYear = t.Date.TaxYear()
	res.Remaining = c.ledger.Total(t.Coin, t.Wallet)
	c.bucketYear(res.TaxYear, gain, tax)
	c.results = append(c.results, res)
}

func (c *run) trade(id int, t Trade) {
	res := Result{
		ID:         id,
		Type:       TxTrade,
		Date:       t.Date,
		Wallet:     t.Wallet,
		FromCoin:   t.FromCoin,
		ToCoin:     t.ToCoin,
		Amount:     t.Amount,
		Price:      t.Price,
		BalanceKey: BucketKey(t.FromCoin, t.Wallet),
	}
	if !c.ledger.Has(t.FromCoin, t.Wallet) {
		res.Err = fmt.Sprintf("Insufficient %s balance for trade", t.FromCoin)
		c.results = append(c.results, res)
		return
	}

	matched, gain, tax, unmatched := c.dispose(t.FromCoin, t.Wallet, t.Amount, t.Price, t.Date)

	// The acquired quantity is derived from the value actually transferred,
	// not from the input amount: total net proceeds divided by unit price.
	var netProceeds Money
	for _, m := range matched {
		netProceeds = netProceeds.Add(m.Proceeds.Sub(m.Fee))
	}
	var received Quantity
	if t.Price.IsPositive() {
		received = netProceeds.DivPrice(t.Price)
	}
	c.ledger.Append(t.ToCoin, t.Wallet, received, t.Price, t.Date)

	res.MatchedLots = matched
	res.CapitalGain = gain
	res.Tax = tax
	res.Unmatched = unmatched
	res.ReceivedAmount = received
	res.TaxYear = t.Date.TaxYear()
	res.RemainingFrom = c.ledger.Total(t.FromCoin, t.Wallet)
	res.RemainingTo = c.ledger.Total(t.ToCoin, t.Wallet)
	c.bucketYear(res.TaxYear, gain, tax)
	c.results = append(c.results, res)
}

func (c *run) transfer(id int, t Transfer) {
	res := Result{
		ID:         id,
		Type:       TxTransfer,
		Date:       t.Date,
		Wallet:     t.Wallet,
		Coin:       t.Coin,
		Amount:     t.Amount,
		FromWallet: t.FromWallet,
		ToWallet:   t.ToWallet,
	}
	if !c.ledger.Has(t.Coin, t.FromWallet) {
		res.Err = fmt.Sprintf("Insufficient balance in %s wallet", t.FromWallet)
		c.results = append(c.results, res)
		return
	}

	// A transfer is basis-preserving: each moved slice keeps its original
	// unit price and acquisition date for future holding-period computation.
	matches, unmatched := c.ledger.Consume(t.Coin, t.FromWallet, t.Amount)
	for _, m := range matches {
		c.ledger.Append(t.Coin, t.ToWallet, m.Amount, m.Price, m.Date)
	}

	res.Transferred = matches
	res.Unmatched = unmatched
	res.Details = fmt.Sprintf("Transferred %s %s from %s to %s", t.Amount, t.Coin, t.FromWallet, t.ToWallet)
	res.RemainingFrom = c.ledger.Total(t.Coin, t.FromWallet)
	res.RemainingTo = c.ledger.Total(t.Coin, t.ToWallet)
	c.results = append(c.results, res)
}

// dispose consumes lots FIFO from one bucket and prices each matched slice:
// cost at the lot's basis, proceeds at the disposal price (net of any venue
// fee), and per-lot tax with the annual exclusion pro-rated by the slice's
// share of the requested amount.
func (c *run) dispose(coin, wallet string, requested Quantity, price Money, day Date) (matched []MatchedLot, gain, tax Money, unmatched Quantity) {
	matches, unmatched := c.ledger.Consume(coin, wallet, requested)
	for _, m := range matches {
		cost := m.Price.Mul(m.Amount)
		proceeds := price.Mul(m.Amount)
		net := c.policy.net(proceeds)
		g := net.Sub(cost)

		holding := day.YearsSince(m.Date)
		longTerm := holding >= c.policy.LongTermYears
		rate := c.policy.Rate(longTerm)

		// This slice's share of the sale's annual exclusion.
		exclusion := c.policy.AnnualExclusion.Mul(m.Amount.Div(requested))
		taxable := g.Sub(exclusion)
		if taxable.IsNegative() {
			taxable = Money{}
		}
		t := taxable.Rate(rate)

		matched = append(matched, MatchedLot{
			Date:         m.Date,
			Price:        m.Price,
			Amount:       m.Amount,
			Cost:         cost,
			Proceeds:     proceeds,
			Fee:          proceeds.Sub(net),
			Gain:         g,
			HoldingYears: holding,
			LongTerm:     longTerm,
			TaxRate:      rate.Mul(hundred).InexactFloat64(),
			Tax:          t,
		})
		gain = gain.Add(g)
		tax = tax.Add(t)
	}
	return matched, gain, tax, unmatched
}

// bucketYear routes a disposal's gain and tax into its tax-year accumulator,
// creating the bucket lazily on first use.
func (c *run) bucketYear(year int, gain, tax Money) {
	y, ok := c.years[year]
	if !ok {
		y = &YearSummary{Year: year}
		c.years[year] = y
	}
	y.TotalGains = y.TotalGains.Add(gain)
	y.TotalTax = y.TotalTax.Add(tax)
	y.Transactions++
}

// balances assembles the non-empty buckets in deterministic order. The empty
// case is an empty slice, never nil, so reports always carry a balances array.
func (c *run) balances() []Balance {
	out := []Balance{}
	for b := range c.ledger.all() {
		total := b.lots.total()
		if !total.IsPositive() {
			continue
		}
		base := b.lots.baseCost()
		out = append(out, Balance{
			Coin:        b.Coin,
			Wallet:      b.Wallet,
			TotalAmount: total.Round(),
			BaseCost:    base,
			AverageCost: base.Div(total),
			Lots:        slices.Clone(b.lots),
		})
	}
	return out
}

// finish assembles the final report from the run's state.
func (c *run) finish(txs []Transaction) *Report {
	report := &Report{
		Results:  c.results,
		Balances: c.balances(),
		Policy:   c.policy,
	}

	for _, year := range slices.Sorted(maps.Keys(c.years)) {
		report.YearlySummary = append(report.YearlySummary, *c.years[year])
	}
	for _, year := range slices.Sorted(maps.Keys(c.snaps)) {
		report.Snapshots = append(report.Snapshots, Snapshot{Year: year, Balances: c.snaps[year]})
	}

	disposals := 0
	for _, res := range c.results {
		report.TotalCapitalGain = report.TotalCapitalGain.Add(res.CapitalGain)
		report.TotalTax = report.TotalTax.Add(res.Tax)
		if res.IsDisposal() {
			disposals++
		}
	}

	// Distinct coins and wallets observed in the input and in what is left.
	coins := make(map[string]struct{})
	wallets := make(map[string]struct{})
	for _, tx := range txs {
		switch v := tx.(type) {
		case Buy:
			coins[v.Coin] = struct{}{}
			wallets[v.Wallet] = struct{}{}
		case Sell:
			coins[v.Coin] = struct{}{}
			wallets[v.Wallet] = struct{}{}
		case Trade:
			coins[v.FromCoin] = struct{}{}
			coins[v.ToCoin] = struct{}{}
			wallets[v.Wallet] = struct{}{}
		case Transfer:
			coins[v.Coin] = struct{}{}
			wallets[v.FromWallet] = struct{}{}
			wallets[v.ToWallet] = struct{}{}
		}
	}
	for _, b := range report.Balances {
		coins[b.Coin] = struct{}{}
		wallets[b.Wallet] = struct{}{}
	}

	report.Summary = Summary{
		TransactionsProcessed: len(txs),
		SellTransactions:      disposals,
		YearsCovered:          len(report.YearlySummary),
		UniqueCoins:           len(coins),
		UniqueWallets:         len(wallets),
	}
	return report
}
