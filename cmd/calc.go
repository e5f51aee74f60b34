package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/capegains/cryptotax"
	"github.com/capegains/cryptotax/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	ledgerFile string
	feeRate    float64
	asJSON     bool
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "FIFO capital-gains tax calculation over the ledger" }
func (*calcCmd) Usage() string {
	return `cct calc [-f <file>] [-fee <rate>] [-json]

  Runs the FIFO capital-gains calculation over all transactions and displays
  the full report: per-transaction results, remaining balances, and the tax
  due per tax year. With -json the complete report is written as JSON.

Usage Examples:
# Report on the default transactions file.
$ cct calc

# Machine-readable report from stdin, with a 0.25% venue fee.
$ cct calc -f - -fee 0.0025 -json

`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "f", defaultLedgerFile, "Transactions file (JSON array or JSONL). Use - for stdin.")
	f.Float64Var(&c.feeRate, "fee", 0, "Venue fee rate applied to buys and disposal proceeds (e.g. 0.0025)")
	f.BoolVar(&c.asJSON, "json", false, "Write the full report as JSON instead of markdown")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(c.ledgerFile)
	if err != nil {
		return fail("Error loading transactions: %v", err)
	}

	policy := cryptotax.DefaultPolicy()
	if c.feeRate != 0 {
		policy.FeeRate = decimal.NewFromFloat(c.feeRate)
	}

	report := cryptotax.Compute(txs, policy)

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fail("Error encoding report: %v", err)
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
