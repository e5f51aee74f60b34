package cryptotax

import (
	"errors"
	"fmt"
)

// TxType is a typed string for identifying transaction kinds.
type TxType string

// Transaction kinds accepted by the engine.
const (
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
	TxTrade    TxType = "trade"
	TxTransfer TxType = "transfer"
)

// DefaultWallet is the custody label used when a transaction does not name one.
const DefaultWallet = "default"

// Transaction defines the common interface for the four canonical transaction
// kinds. Values are immutable once produced by the Normalizer; downstream code
// switches exhaustively over the concrete types.
type Transaction interface {
	What() TxType // What returns the kind of the transaction (e.g. "buy", "sell").
	When() Date   // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate() error
}

// baseTx carries the fields common to every transaction kind.
type baseTx struct {
	Type        TxType
	Date        Date
	Wallet      string
	Fee         Quantity // optional, informational: fee paid to the venue
	FeeCoin     string   // optional, the asset the fee was paid in
	Description string   // optional free-text note
}

// What returns the kind of the transaction.
func (t baseTx) What() TxType { return t.Type }

// When returns the date of the transaction.
func (t baseTx) When() Date { return t.Date }

func (t baseTx) equal(o baseTx) bool {
	return t.Type == o.Type && t.Date == o.Date && t.Wallet == o.Wallet &&
		t.Fee.Equal(o.Fee) && t.FeeCoin == o.FeeCoin && t.Description == o.Description
}

// Validate checks the base fields shared by all kinds.
func (t baseTx) Validate() error {
	if t.Date.IsZero() {
		return errors.New("date is missing")
	}
	if t.Wallet == "" {
		return errors.New("wallet is missing")
	}
	return nil
}

// Buy represents an acquisition of a coin at a unit price in the home currency.
type Buy struct {
	baseTx
	Coin   string   // Coin is the ticker symbol of the acquired asset.
	Amount Quantity // Amount is the acquired quantity.
	Price  Money    // Price is the unit price in the home currency.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, coin, wallet string, amount Quantity, price Money) Buy {
	return Buy{
		baseTx: baseTx{Type: TxBuy, Date: day, Wallet: wallet},
		Coin:   coin,
		Amount: amount,
		Price:  price,
	}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.baseTx.equal(o.baseTx) && t.Coin == o.Coin &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// Validate checks the Buy transaction's fields.
func (t Buy) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if t.Coin == "" {
		return errors.New("coin is missing")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", t.Price)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("coin", t.Coin)
	w.Append("amount", t.Amount)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Append("wallet", t.Wallet)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee)
	}
	w.Optional("fee_coin", t.FeeCoin)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

// Sell represents a disposal of a coin at a unit price in the home currency.
type Sell struct {
	baseTx
	Coin   string   // Coin is the ticker symbol of the disposed asset.
	Amount Quantity // Amount is the disposed quantity.
	Price  Money    // Price is the unit price in the home currency.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, coin, wallet string, amount Quantity, price Money) Sell {
	return Sell{
		baseTx: baseTx{Type: TxSell, Date: day, Wallet: wallet},
		Coin:   coin,
		Amount: amount,
		Price:  price,
	}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.baseTx.equal(o.baseTx) && t.Coin == o.Coin &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// Validate checks the Sell transaction's fields.
func (t Sell) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if t.Coin == "" {
		return errors.New("coin is missing")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", t.Price)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("coin", t.Coin)
	w.Append("amount", t.Amount)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Append("wallet", t.Wallet)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee)
	}
	w.Optional("fee_coin", t.FeeCoin)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

// Trade represents a disposal of one coin to acquire another within the same
// wallet. The disposed asset is FromCoin; Price is the unit price of the
// disposed asset in the home currency.
type Trade struct {
	baseTx
	FromCoin string   // FromCoin is the ticker symbol of the disposed asset.
	ToCoin   string   // ToCoin is the ticker symbol of the acquired asset.
	Amount   Quantity // Amount is the disposed quantity of FromCoin.
	Price    Money    // Price is the unit price of FromCoin in the home currency.
}

// NewTrade creates a new Trade transaction.
func NewTrade(day Date, fromCoin, toCoin, wallet string, amount Quantity, price Money) Trade {
	return Trade{
		baseTx:   baseTx{Type: TxTrade, Date: day, Wallet: wallet},
		FromCoin: fromCoin,
		ToCoin:   toCoin,
		Amount:   amount,
		Price:    price,
	}
}

func (t Trade) Equal(other Transaction) bool {
	o, ok := other.(Trade)
	return ok && t.baseTx.equal(o.baseTx) && t.FromCoin == o.FromCoin && t.ToCoin == o.ToCoin &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// Validate checks the Trade transaction's fields. Both sides of the trade are
// required; there is no default asset.
func (t Trade) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if t.FromCoin == "" {
		return errors.New("from_coin is missing")
	}
	if t.ToCoin == "" {
		return errors.New("to_coin is missing")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", t.Price)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("from_coin", t.FromCoin)
	w.Append("to_coin", t.ToCoin)
	w.Append("amount", t.Amount)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Append("wallet", t.Wallet)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee)
	}
	w.Optional("fee_coin", t.FeeCoin)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

// Transfer represents a custody move of a coin between two wallets. It is
// basis-preserving: no gain is realized and moved lots keep their original
// acquisition date and unit price.
type Transfer struct {
	baseTx
	Coin       string   // Coin is the ticker symbol of the moved asset.
	Amount     Quantity // Amount is the moved quantity.
	Price      Money    // Price is informational; transfers realize no gain.
	FromWallet string   // FromWallet is the source custody label.
	ToWallet   string   // ToWallet is the destination custody label.
}

// NewTransfer creates a new Transfer transaction.
func NewTransfer(day Date, coin, fromWallet, toWallet string, amount Quantity) Transfer {
	return Transfer{
		baseTx:     baseTx{Type: TxTransfer, Date: day, Wallet: DefaultWallet},
		Coin:       coin,
		Amount:     amount,
		FromWallet: fromWallet,
		ToWallet:   toWallet,
	}
}

func (t Transfer) Equal(other Transaction) bool {
	o, ok := other.(Transfer)
	return ok && t.baseTx.equal(o.baseTx) && t.Coin == o.Coin &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price) &&
		t.FromWallet == o.FromWallet && t.ToWallet == o.ToWallet
}

// Validate checks the Transfer transaction's fields. Wallet endpoints default
// to the transaction's wallet during normalization, so both must be set here.
func (t Transfer) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if t.Coin == "" {
		return errors.New("coin is missing")
	}
	if t.FromWallet == "" {
		return errors.New("from_wallet is missing")
	}
	if t.ToWallet == "" {
		return errors.New("to_wallet is missing")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", t.Price)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transfer.
func (t Transfer) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("coin", t.Coin)
	w.Append("amount", t.Amount)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Append("wallet", t.Wallet)
	w.Append("from_wallet", t.FromWallet)
	w.Append("to_wallet", t.ToWallet)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee)
	}
	w.Optional("fee_coin", t.FeeCoin)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}
