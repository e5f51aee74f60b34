package renderer

import (
	"fmt"
	"strings"

	"github.com/capegains/cryptotax"
)

// taxYearLabel formats a tax year by the calendar year it ends in, the way
// SARS filing seasons are named.
func taxYearLabel(year int) string {
	return fmt.Sprintf("%d/%d", year-1, year)
}

// ReportMarkdown renders the full calculation report: headline totals, the
// per-year breakdown, remaining balances and the per-transaction results.
func ReportMarkdown(report *cryptotax.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Tax Report\n\n")
	fmt.Fprintf(&b, "Total Capital Gain: %s\n\n", report.TotalCapitalGain.SignedString())
	fmt.Fprintf(&b, "Total Tax Due: %s\n\n", report.TotalTax.String())
	fmt.Fprintf(&b, "Processed %d transactions (%d disposals) across %d tax years, %d coins, %d wallets.\n\n",
		report.Summary.TransactionsProcessed,
		report.Summary.SellTransactions,
		report.Summary.YearsCovered,
		report.Summary.UniqueCoins,
		report.Summary.UniqueWallets,
	)

	b.WriteString(YearsMarkdown(report))
	b.WriteString(BalancesMarkdown(report))
	b.WriteString(ResultsMarkdown(report))

	return b.String()
}

// YearsMarkdown renders the per-tax-year summary table.
func YearsMarkdown(report *cryptotax.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Gains per Tax Year\n\n")
	fmt.Fprintln(&b, "| Tax Year | Disposals | Total Gains | Total Tax |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, y := range report.YearlySummary {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			taxYearLabel(y.Year),
			y.Transactions,
			y.TotalGains.SignedString(),
			y.TotalTax.String(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | **%s** |\n\n",
		report.TotalCapitalGain.SignedString(),
		report.TotalTax.String(),
	)

	return b.String()
}

// BalancesMarkdown renders the remaining holdings per (coin, wallet) bucket.
func BalancesMarkdown(report *cryptotax.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Remaining Balances\n\n")
	if len(report.Balances) == 0 {
		fmt.Fprint(&b, "No remaining holdings.\n\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Coin | Wallet | Amount | Base Cost | Average Cost | Open Lots |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
	for _, bal := range report.Balances {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
			bal.Coin,
			bal.Wallet,
			bal.TotalAmount,
			bal.BaseCost,
			bal.AverageCost,
			len(bal.Lots),
		)
	}
	fmt.Fprintln(&b)

	return b.String()
}

// ResultsMarkdown renders one row per processed transaction, with failed ones
// carrying their error instead of a gain.
func ResultsMarkdown(report *cryptotax.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Transactions\n\n")
	fmt.Fprintln(&b, "| # | Date | Type | Asset | Amount | Capital Gain | Tax | Note |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|---:|:---|")
	for _, res := range report.Results {
		note := res.Details
		if res.Err != "" {
			note = "⚠️ " + res.Err
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			res.ID,
			res.Date,
			res.Type,
			resultAsset(res),
			res.Amount,
			res.CapitalGain.SignedString(),
			res.Tax.String(),
			note,
		)
	}
	fmt.Fprintln(&b)

	return b.String()
}

// resultAsset names the asset column of a result row. Trades show both legs.
func resultAsset(res cryptotax.Result) string {
	if res.Type == cryptotax.TxTrade {
		return res.FromCoin + "→" + res.ToCoin
	}
	return res.Coin
}
