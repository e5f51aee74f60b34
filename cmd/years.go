package cmd

import (
	"context"
	"flag"

	"github.com/capegains/cryptotax"
	"github.com/capegains/cryptotax/renderer"
	"github.com/google/subcommands"
)

// yearsCmd holds the flags for the 'years' subcommand.
type yearsCmd struct {
	ledgerFile string
}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "capital gains and tax due per tax year" }
func (*yearsCmd) Usage() string {
	return `cct years [-f <file>]

  Displays the capital gain and tax due for each South African tax year
  (1 March to end of February) touched by the ledger's disposals.
`
}

func (c *yearsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "f", defaultLedgerFile, "Transactions file (JSON array or JSONL). Use - for stdin.")
}

func (c *yearsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(c.ledgerFile)
	if err != nil {
		return fail("Error loading transactions: %v", err)
	}

	report := cryptotax.Compute(txs, cryptotax.DefaultPolicy())
	printMarkdown(renderer.YearsMarkdown(report))
	return subcommands.ExitSuccess
}
