package cryptotax

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_JSONShape(t *testing.T) {
	txs := []Transaction{
		NewBuy(on("2020-01-01"), "BTC", "default", Q(1), R(100000)),
		NewSell(on("2024-05-01"), "BTC", "default", Q(1), R(300000)),
	}
	report := Compute(txs, DefaultPolicy())

	data, err := json.Marshal(report)
	require.NoError(t, err)
	out := string(data)

	// Top-level sections in their fixed order.
	for _, key := range []string{`"results":[`, `"balances":[`, `"yearlySummary":[`, `"totalCapitalGain":`, `"totalTax":`, `"summary":{`, `"tax_parameters":{`} {
		assert.Contains(t, out, key)
	}
	assert.Less(t, strings.Index(out, `"results"`), strings.Index(out, `"balances"`))
	assert.Less(t, strings.Index(out, `"balances"`), strings.Index(out, `"yearlySummary"`))
	assert.Less(t, strings.Index(out, `"summary"`), strings.Index(out, `"tax_parameters"`))

	// The disposal carries its matched lots with per-lot tax detail.
	assert.Contains(t, out, `"matched_buys":[`)
	assert.Contains(t, out, `"buy_date":"2020-01-01"`)
	assert.Contains(t, out, `"is_long_term":true`)
	assert.Contains(t, out, `"tax_rate":10`)
	assert.Contains(t, out, `"tax_year":2025`)

	// Policy parameters the report was computed under.
	assert.Contains(t, out, `"annual_exclusion":40000`)
	assert.Contains(t, out, `"short_term_rate":18`)
	assert.Contains(t, out, `"long_term_rate":10`)
	assert.Contains(t, out, `"tax_year_start":"1 March"`)
}

func TestResult_JSONByKind(t *testing.T) {
	txs := []Transaction{
		NewBuy(on("2024-01-01"), "BTC", "exchange", Q(2), R(100000)),
		NewTrade(on("2024-02-01"), "BTC", "ETH", "exchange", Q(1), R(120000)),
		NewTransfer(on("2024-03-02"), "BTC", "exchange", "cold", Q(0.5)),
	}
	report := Compute(txs, DefaultPolicy())
	require.Len(t, report.Results, 3)

	buy, err := json.Marshal(report.Results[0])
	require.NoError(t, err)
	assert.Contains(t, string(buy), `"coin":"BTC"`)
	assert.Contains(t, string(buy), `"remaining_balance":2`)
	assert.Contains(t, string(buy), `"balance_key":"BTC_exchange"`)
	assert.NotContains(t, string(buy), `"from_coin"`)

	trade, err := json.Marshal(report.Results[1])
	require.NoError(t, err)
	assert.Contains(t, string(trade), `"from_coin":"BTC"`)
	assert.Contains(t, string(trade), `"to_coin":"ETH"`)
	assert.Contains(t, string(trade), `"received_coin":"ETH"`)
	assert.Contains(t, string(trade), `"remaining_balance_from":1`)
	assert.NotContains(t, string(trade), `"coin":"BTC"`)

	transfer, err := json.Marshal(report.Results[2])
	require.NoError(t, err)
	assert.Contains(t, string(transfer), `"from_wallet":"exchange"`)
	assert.Contains(t, string(transfer), `"to_wallet":"cold"`)
	assert.Contains(t, string(transfer), `"transferred":[`)
	assert.Contains(t, string(transfer), `"amount":0.5,"date":"2024-03-02"`,
		"a transfer row has no price between amount and date")
}

func TestResult_JSONError(t *testing.T) {
	report := Compute([]Transaction{
		NewSell(on("2024-01-01"), "ETH", "default", Q(1), R(1000)),
	}, DefaultPolicy())

	data, err := json.Marshal(report.Results[0])
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"error":"Insufficient ETH balance for sale"`)
	assert.NotContains(t, out, `"tax_year"`, "a failed sale has no tax year")
	assert.NotContains(t, out, `"matched_buys"`)
}

func TestQuantityMoney_JSONRounding(t *testing.T) {
	// Quantities round to 8 places and money to 2 at the output boundary.
	q := Q(1).Div(Q(3))
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, "0.33333333", string(data))

	m := R(100).Div(Q(3))
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "33.33", string(data))
}
