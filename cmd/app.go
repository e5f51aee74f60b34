// Package cmd implements the CLI application to compute crypto capital-gains
// tax reports.
package cmd

import (
	"fmt"
	"os"

	"github.com/capegains/cryptotax"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&calcCmd{}, "reports")
	c.Register(&yearsCmd{}, "reports")
	c.Register(&balancesCmd{}, "reports")

	c.Register(&fmtCmd{}, "transactions")
}

// defaultLedgerFile is the transactions file commands read when -f is absent.
const defaultLedgerFile = "transactions.jsonl"

// decodeRecords reads raw records from the given file, or from stdin when the
// path is "-".
func decodeRecords(path string) ([]cryptotax.Record, error) {
	if path == "-" {
		return cryptotax.DecodeRecords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file %q: %w", path, err)
	}
	defer f.Close()
	return cryptotax.DecodeRecords(f)
}

// loadTransactions reads and normalizes the transactions file into canonical,
// date-sorted transactions ready for the engine.
func loadTransactions(path string) ([]cryptotax.Transaction, error) {
	records, err := decodeRecords(path)
	if err != nil {
		return nil, err
	}
	return cryptotax.Normalize(records)
}

// printMarkdown renders a markdown string for the terminal. If rendering
// fails the raw markdown is printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error to stderr and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
