package cryptotax

import "encoding/json"

// MatchedLot records one (partial) lot consumption by a disposal, in the
// order lots were consumed. Tax is evaluated per matched lot, not per
// transaction: one sale can straddle the short- and long-term rates when it
// drains lots of different ages.
type MatchedLot struct {
	Date         Date     // acquisition date of the matched lot
	Price        Money    // unit price of the matched lot
	Amount       Quantity // quantity taken from the lot
	Cost         Money    // Amount * Price
	Proceeds     Money    // Amount * disposal price, gross of any venue fee
	Fee          Money    // venue fee on proceeds; zero under the default policy
	Gain         Money    // net proceeds - cost
	HoldingYears float64  // fractional years between acquisition and disposal
	LongTerm     bool
	TaxRate      float64 // percent
	Tax          Money
}

// MarshalJSON implements the json.Marshaler interface for MatchedLot.
func (m MatchedLot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("buy_date", m.Date)
	w.Append("buy_price", m.Price)
	w.Append("amount_sold", m.Amount)
	w.Append("cost", m.Cost)
	w.Append("proceeds", m.Proceeds)
	if !m.Fee.IsZero() {
		w.Append("fee", m.Fee)
	}
	w.Append("gain", m.Gain)
	w.Append("holding_years", round2(m.HoldingYears))
	w.Append("is_long_term", m.LongTerm)
	w.Append("tax_rate", m.TaxRate)
	w.Append("tax_amount", m.Tax)
	return w.MarshalJSON()
}

// Result is the per-transaction outcome appended to the report in processing
// order. Ledger-state failures are not fatal: they surface here as Err with
// zero gain and tax while the rest of the batch keeps processing.
type Result struct {
	ID     int // 1-based position after date sorting
	Type   TxType
	Date   Date
	Wallet string

	Coin     string // buy, sell, transfer
	FromCoin string // trade
	ToCoin   string // trade

	FromWallet string // transfer
	ToWallet   string // transfer

	Amount Quantity
	Price  Money

	Err     string // ledger-state error, e.g. insufficient balance
	Details string

	CapitalGain Money
	Tax         Money
	TaxYear     int
	MatchedLots []MatchedLot

	ReceivedAmount Quantity // trade: derived quantity of ToCoin
	Transferred    []Lot    // transfer: moved slices, basis preserved

	Unmatched     Quantity // requested amount not covered by open lots
	Remaining     Quantity // bucket total after the operation (buy, sell)
	RemainingFrom Quantity // source bucket total after the operation
	RemainingTo   Quantity // destination bucket total after the operation

	BalanceKey string
}

// IsDisposal reports whether the result realized gains (sell or trade).
func (r Result) IsDisposal() bool { return r.Type == TxSell || r.Type == TxTrade }

// MarshalJSON implements the json.Marshaler interface for Result. Field
// presence follows the transaction kind.
func (r Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("transaction_id", r.ID)
	w.Append("type", r.Type)
	switch r.Type {
	case TxTrade:
		w.Append("from_coin", r.FromCoin)
		w.Append("to_coin", r.ToCoin)
	default:
		w.Append("coin", r.Coin)
	}
	w.Append("amount", r.Amount)
	if r.Type != TxTransfer {
		w.Append("price", r.Price)
	}
	w.Append("date", r.Date)
	if r.Type == TxTransfer {
		w.Append("from_wallet", r.FromWallet)
		w.Append("to_wallet", r.ToWallet)
	} else {
		w.Append("wallet", r.Wallet)
	}
	w.Optional("error", r.Err)
	w.Optional("details", r.Details)
	w.Append("capital_gain", r.CapitalGain)
	w.Append("total_tax", r.Tax)
	w.Optional("tax_year", r.TaxYear)
	if r.MatchedLots != nil {
		w.Append("matched_buys", r.MatchedLots)
	}
	if r.Type == TxTrade && r.Err == "" {
		w.Append("received_amount", r.ReceivedAmount)
		w.Append("received_coin", r.ToCoin)
	}
	if r.Transferred != nil {
		w.Append("transferred", r.Transferred)
	}
	if !r.Unmatched.IsZero() {
		w.Append("remaining_to_sell", r.Unmatched)
	}
	switch r.Type {
	case TxBuy, TxSell:
		w.Append("remaining_balance", r.Remaining)
	case TxTrade, TxTransfer:
		if r.Err == "" {
			w.Append("remaining_balance_from", r.RemainingFrom)
			w.Append("remaining_balance_to", r.RemainingTo)
		}
	}
	w.Optional("balance_key", r.BalanceKey)
	return w.MarshalJSON()
}

// Balance is the final state of one (coin, wallet) bucket: its remaining
// open lots and their aggregate cost basis.
type Balance struct {
	Coin        string   `json:"coin"`
	Wallet      string   `json:"wallet"`
	TotalAmount Quantity `json:"total_amount"`
	BaseCost    Money    `json:"base_cost"`
	AverageCost Money    `json:"average_cost"`
	Lots        []Lot    `json:"lots"`
}

// YearSummary accumulates the gains and tax of one South African tax year,
// identified by its ending calendar year.
type YearSummary struct {
	Year         int   `json:"year"`
	TotalGains   Money `json:"total_gains"`
	TotalTax     Money `json:"total_tax"`
	Transactions int   `json:"transactions"`
}

// Snapshot captures the per-bucket base cost standing on a 1st of March, the
// first day of a fiscal year.
type Snapshot struct {
	Year     int       `json:"year"`
	Balances []Balance `json:"balances"`
}

// Summary carries the headline counts of a calculation.
type Summary struct {
	TransactionsProcessed int `json:"transactions_processed"`
	SellTransactions      int `json:"sell_transactions"`
	YearsCovered          int `json:"years_covered"`
	UniqueCoins           int `json:"unique_coins"`
	UniqueWallets         int `json:"unique_wallets"`
}

// Report is the complete outcome of one calculation run.
type Report struct {
	Results          []Result
	Balances         []Balance
	YearlySummary    []YearSummary // sorted ascending by year
	TotalCapitalGain Money
	TotalTax         Money
	Summary          Summary
	Snapshots        []Snapshot // base-cost snapshots taken on tax-year starts
	Policy           Policy
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("results", r.Results)
	w.Append("balances", r.Balances)
	w.Append("yearlySummary", r.YearlySummary)
	w.Append("totalCapitalGain", r.TotalCapitalGain)
	w.Append("totalTax", r.TotalTax)
	w.Append("summary", r.Summary)
	if r.Snapshots != nil {
		w.Append("baseCostSnapshots", r.Snapshots)
	}
	w.Append("tax_parameters", r.Policy)
	return w.MarshalJSON()
}

var _ json.Marshaler = (*Report)(nil)

// round2 rounds reporting floats (holding years) to two decimal places.
func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
