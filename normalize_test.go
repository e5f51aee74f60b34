package cryptotax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Canonicalizes(t *testing.T) {
	txs, err := Normalize([]Record{
		{Type: " Buy ", Coin: " btc ", Amount: "1.5", Price: "100000", Date: "2024-3-1"},
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	buy, ok := txs[0].(Buy)
	require.True(t, ok)
	assert.Equal(t, "BTC", buy.Coin)
	assert.Equal(t, DefaultWallet, buy.Wallet)
	assert.Equal(t, on("2024-03-01"), buy.When())
	assert.True(t, buy.Amount.Equal(Q(1.5)))
	assert.True(t, buy.Price.Equal(R(100000)))
}

func TestNormalize_TransferWalletFallback(t *testing.T) {
	txs, err := Normalize([]Record{
		{Type: "transfer", Coin: "btc", Amount: "1", Price: "0", Date: "2024-01-01", Wallet: "exchange", ToWallet: "cold"},
	})
	require.NoError(t, err)

	tr, ok := txs[0].(Transfer)
	require.True(t, ok)
	assert.Equal(t, "exchange", tr.FromWallet, "from_wallet should fall back to the record's wallet")
	assert.Equal(t, "cold", tr.ToWallet)
}

func TestNormalize_SortsByDateStable(t *testing.T) {
	txs, err := Normalize([]Record{
		{Type: "sell", Coin: "BTC", Amount: "1", Price: "300", Date: "2024-06-01"},
		{Type: "buy", Coin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01"},
		{Type: "buy", Coin: "ETH", Amount: "2", Price: "50", Date: "2024-01-01"},
	})
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// Date order first; the two same-day buys keep their input order.
	assert.Equal(t, "BTC", txs[0].(Buy).Coin)
	assert.Equal(t, "ETH", txs[1].(Buy).Coin)
	assert.Equal(t, TxSell, txs[2].What())
}

func TestNormalize_ValidationFailures(t *testing.T) {
	valid := Record{Type: "buy", Coin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01"}

	cases := []struct {
		name  string
		bad   Record
		field string
	}{
		{"missing type", Record{Coin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01"}, "type"},
		{"unknown type", Record{Type: "stake", Coin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01"}, "type"},
		{"missing amount", Record{Type: "buy", Coin: "BTC", Price: "100", Date: "2024-01-01"}, "amount"},
		{"zero amount", Record{Type: "buy", Coin: "BTC", Amount: "0", Price: "100", Date: "2024-01-01"}, "amount"},
		{"negative amount", Record{Type: "buy", Coin: "BTC", Amount: "-1", Price: "100", Date: "2024-01-01"}, "amount"},
		{"non-numeric amount", Record{Type: "buy", Coin: "BTC", Amount: "lots", Price: "100", Date: "2024-01-01"}, "amount"},
		{"negative price", Record{Type: "buy", Coin: "BTC", Amount: "1", Price: "-5", Date: "2024-01-01"}, "price"},
		{"missing date", Record{Type: "buy", Coin: "BTC", Amount: "1", Price: "100"}, "date"},
		{"bad date", Record{Type: "buy", Coin: "BTC", Amount: "1", Price: "100", Date: "someday"}, "date"},
		{"missing coin", Record{Type: "buy", Amount: "1", Price: "100", Date: "2024-01-01"}, "coin"},
		{"trade missing from_coin", Record{Type: "trade", ToCoin: "ETH", Amount: "1", Price: "100", Date: "2024-01-01"}, "from_coin"},
		{"trade missing to_coin", Record{Type: "trade", FromCoin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01"}, "to_coin"},
		{"negative fee", Record{Type: "buy", Coin: "BTC", Amount: "1", Price: "100", Date: "2024-01-01", Fee: "-1"}, "fee"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// One bad record poisons the whole batch, valid siblings included.
			txs, err := Normalize([]Record{valid, c.bad})
			require.Error(t, err)
			assert.Nil(t, txs)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, 1, verr.Index)
			assert.Equal(t, c.field, verr.Field)
		})
	}
}

func TestNormalize_ZeroPriceIsValid(t *testing.T) {
	_, err := Normalize([]Record{
		{Type: "sell", Coin: "BTC", Amount: "1", Price: "0", Date: "2024-01-01"},
	})
	assert.NoError(t, err)
}
