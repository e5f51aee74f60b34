package cryptotax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is a loosely-typed transaction as supplied by callers, before any
// validation. String fields may carry stray whitespace or wrong case; numeric
// fields are raw strings so that a missing value is distinguishable from zero.
type Record struct {
	Type        string `json:"type"`
	Coin        string `json:"coin,omitempty"`
	FromCoin    string `json:"from_coin,omitempty"`
	ToCoin      string `json:"to_coin,omitempty"`
	Amount      string `json:"amount"`
	Price       string `json:"price"`
	Date        string `json:"date"`
	Wallet      string `json:"wallet,omitempty"`
	FromWallet  string `json:"from_wallet,omitempty"`
	ToWallet    string `json:"to_wallet,omitempty"`
	Fee         string `json:"fee,omitempty"`
	FeeCoin     string `json:"fee_coin,omitempty"`
	Description string `json:"description,omitempty"`
}

// ValidationError reports the first record that failed validation. A
// validation failure is fatal for the whole batch: no partial result is ever
// produced from a batch containing an invalid record.
type ValidationError struct {
	Index  int    // position of the offending record in the input
	Field  string // name of the offending field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transaction at index %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

func invalid(index int, field, format string, args ...any) *ValidationError {
	return &ValidationError{Index: index, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Normalize validates and canonicalizes raw records and returns them as
// canonical transactions sorted by date ascending. The sort is stable:
// records sharing a date keep their original relative order.
//
// Validation short-circuits on the first failing record, in this order:
// required fields, numeric constraints, date parsing, kind membership.
func Normalize(records []Record) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := normalizeRecord(i, rec)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	// Stable sort keeps the original relative order of same-day transactions.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].When().Before(txs[j].When())
	})
	return txs, nil
}

func normalizeRecord(index int, rec Record) (Transaction, error) {
	kind := TxType(strings.ToLower(strings.TrimSpace(rec.Type)))

	// 1. Required fields per kind.
	if kind == "" {
		return nil, invalid(index, "type", "missing required field")
	}
	if strings.TrimSpace(rec.Amount) == "" {
		return nil, invalid(index, "amount", "missing required field")
	}
	if strings.TrimSpace(rec.Price) == "" {
		return nil, invalid(index, "price", "missing required field")
	}
	if strings.TrimSpace(rec.Date) == "" {
		return nil, invalid(index, "date", "missing required field")
	}
	if kind == TxTrade {
		if strings.TrimSpace(rec.FromCoin) == "" {
			return nil, invalid(index, "from_coin", "trade requires from_coin")
		}
		if strings.TrimSpace(rec.ToCoin) == "" {
			return nil, invalid(index, "to_coin", "trade requires to_coin")
		}
	}

	// 2. Numeric constraints.
	amount, err := decimal.NewFromString(strings.TrimSpace(rec.Amount))
	if err != nil {
		return nil, invalid(index, "amount", "not a number: %q", rec.Amount)
	}
	if !amount.IsPositive() {
		return nil, invalid(index, "amount", "must be positive, got %s", amount)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
	if err != nil {
		return nil, invalid(index, "price", "not a number: %q", rec.Price)
	}
	if price.IsNegative() {
		return nil, invalid(index, "price", "must not be negative, got %s", price)
	}
	fee := decimal.Zero
	if f := strings.TrimSpace(rec.Fee); f != "" {
		fee, err = decimal.NewFromString(f)
		if err != nil {
			return nil, invalid(index, "fee", "not a number: %q", rec.Fee)
		}
		if fee.IsNegative() {
			return nil, invalid(index, "fee", "must not be negative, got %s", fee)
		}
	}

	// 3. Date parsing.
	day, err := ParseDate(rec.Date)
	if err != nil {
		return nil, invalid(index, "date", "unparseable date %q", rec.Date)
	}

	// Canonical forms: coins uppercased, wallets trimmed with a default.
	coin := strings.ToUpper(strings.TrimSpace(rec.Coin))
	wallet := strings.TrimSpace(rec.Wallet)
	if wallet == "" {
		wallet = DefaultWallet
	}

	base := baseTx{
		Type:        kind,
		Date:        day,
		Wallet:      wallet,
		Fee:         Q(fee),
		FeeCoin:     strings.ToUpper(strings.TrimSpace(rec.FeeCoin)),
		Description: strings.TrimSpace(rec.Description),
	}

	// 4. Kind membership, building the canonical transaction.
	var tx Transaction
	switch kind {
	case TxBuy:
		if coin == "" {
			return nil, invalid(index, "coin", "missing required field")
		}
		tx = Buy{baseTx: base, Coin: coin, Amount: Q(amount), Price: M(price)}
	case TxSell:
		if coin == "" {
			return nil, invalid(index, "coin", "missing required field")
		}
		tx = Sell{baseTx: base, Coin: coin, Amount: Q(amount), Price: M(price)}
	case TxTrade:
		tx = Trade{
			baseTx:   base,
			FromCoin: strings.ToUpper(strings.TrimSpace(rec.FromCoin)),
			ToCoin:   strings.ToUpper(strings.TrimSpace(rec.ToCoin)),
			Amount:   Q(amount),
			Price:    M(price),
		}
	case TxTransfer:
		if coin == "" {
			return nil, invalid(index, "coin", "missing required field")
		}
		// Wallet endpoints fall back to the record's wallet.
		fromWallet := strings.TrimSpace(rec.FromWallet)
		if fromWallet == "" {
			fromWallet = wallet
		}
		toWallet := strings.TrimSpace(rec.ToWallet)
		if toWallet == "" {
			toWallet = wallet
		}
		tx = Transfer{
			baseTx:     base,
			Coin:       coin,
			Amount:     Q(amount),
			Price:      M(price),
			FromWallet: fromWallet,
			ToWallet:   toWallet,
		}
	default:
		return nil, invalid(index, "type", "unknown transaction type %q", rec.Type)
	}

	if err := tx.Validate(); err != nil {
		return nil, invalid(index, "transaction", "%v", err)
	}
	return tx, nil
}
