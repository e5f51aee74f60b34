package cryptotax_test

import (
	"fmt"

	"github.com/capegains/cryptotax"
)

// A single buy held past the three-year threshold, then sold: the gain is
// long-term, and tax applies to what exceeds the annual exclusion.
func ExampleCompute() {
	txs, err := cryptotax.Normalize([]cryptotax.Record{
		{Type: "buy", Coin: "BTC", Amount: "1", Price: "100000", Date: "2020-01-01"},
		{Type: "sell", Coin: "BTC", Amount: "1", Price: "300000", Date: "2024-05-01"},
	})
	if err != nil {
		panic(err)
	}

	report := cryptotax.Compute(txs, cryptotax.DefaultPolicy())
	fmt.Printf("capital gain: %.2f\n", report.TotalCapitalGain.InexactFloat64())
	fmt.Printf("tax due: %.2f\n", report.TotalTax.InexactFloat64())
	fmt.Printf("tax year: %d\n", report.YearlySummary[0].Year)

	// Output:
	// capital gain: 200000.00
	// tax due: 16000.00
	// tax year: 2025
}
