package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/capegains/cryptotax"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	ledgerFile string
	write      bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the transactions file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cct fmt [-f <file>] [-w]

  Validates and formats the transactions file. This command reads all
  transactions, validates them, sorts them by date, and writes them out in a
  canonical JSONL format with uppercased coin symbols and explicit wallets.
  By default the result goes to stdout. Use -w to rewrite the file in place.

Usage Examples:
# Print the canonical form of the default transactions file.
$ cct fmt

# Rewrite a file in place.
$ cct fmt -f 2024.jsonl -w

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "f", defaultLedgerFile, "Transactions file (JSON array or JSONL). Use - for stdin.")
	f.BoolVar(&c.write, "w", false, "Write the canonical form back to the file instead of stdout")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(c.ledgerFile)
	if err != nil {
		return fail("Error loading transactions: %v", err)
	}

	if !c.write {
		if err := cryptotax.EncodeTransactions(os.Stdout, txs); err != nil {
			return fail("Error writing transactions: %v", err)
		}
		return subcommands.ExitSuccess
	}

	if c.ledgerFile == "-" {
		return fail("Error: -w cannot be used with stdin")
	}
	file, err := os.Create(c.ledgerFile)
	if err != nil {
		return fail("Error opening transactions file %q for writing: %v", c.ledgerFile, err)
	}
	defer file.Close()
	if err := cryptotax.EncodeTransactions(file, txs); err != nil {
		return fail("Error writing transactions file %q: %v", c.ledgerFile, err)
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %d transactions in %s.\n", len(txs), c.ledgerFile)
	return subcommands.ExitSuccess
}
