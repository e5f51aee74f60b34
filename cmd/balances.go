package cmd

import (
	"context"
	"flag"

	"github.com/capegains/cryptotax"
	"github.com/capegains/cryptotax/renderer"
	"github.com/google/subcommands"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct {
	ledgerFile string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "remaining holdings per coin and wallet" }
func (*balancesCmd) Usage() string {
	return `cct balances [-f <file>]

  Displays the holdings left after processing all transactions: the open
  cost-basis lots of each coin and wallet, with their total and average cost.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "f", defaultLedgerFile, "Transactions file (JSON array or JSONL). Use - for stdin.")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(c.ledgerFile)
	if err != nil {
		return fail("Error loading transactions: %v", err)
	}

	report := cryptotax.Compute(txs, cryptotax.DefaultPolicy())
	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
