// Package cryptotax computes South African capital-gains tax on crypto
// transaction histories using FIFO cost-basis matching.
//
// The pipeline has three stages. DecodeRecords reads loosely-typed records
// from JSON or JSONL input. Normalize validates them all-or-nothing and
// produces canonical, date-sorted transactions. Compute replays those
// transactions against a lot ledger, matching every disposal to its oldest
// open lots, and returns a Report with per-transaction results, per-tax-year
// totals and the remaining holdings.
//
// Tax follows the SARS individual regime: the tax year runs 1 March to end of
// February, gains on lots held at least three years are taxed at the
// long-term rate, and an annual exclusion is deducted before tax. The regime
// parameters live in Policy; DefaultPolicy carries the current ones.
package cryptotax
