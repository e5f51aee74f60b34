package cryptotax

import "github.com/shopspring/decimal"

// hundred converts fractional rates to the percentages reports present.
var hundred = decimal.NewFromInt(100)

// Policy carries the fixed parameters of the South African capital-gains
// regime, exposed as named values rather than magic numbers. DefaultPolicy is
// what callers want unless they are modelling a venue fee.
type Policy struct {
	// ShortTermRate applies to gains on lots held less than LongTermYears.
	ShortTermRate decimal.Decimal
	// LongTermRate applies to gains on lots held at least LongTermYears.
	LongTermRate decimal.Decimal
	// LongTermYears is the holding threshold, in fractional years, at which
	// a lot qualifies for the long-term rate.
	LongTermYears float64
	// AnnualExclusion is the gain amount per tax year not subject to tax.
	// Within one disposal it is pro-rated across matched lots by their share
	// of the requested amount.
	AnnualExclusion Money
	// FeeRate is an optional venue fee. When non-zero, buys credit only
	// amount*(1-FeeRate) to the ledger and disposals compute gains on
	// proceeds net of the fee. Zero disables fee handling entirely.
	FeeRate decimal.Decimal
}

// DefaultPolicy returns the current regime: 18% short-term, 10% long-term at
// a 3 year threshold, R40,000 annual exclusion, and no venue fee.
func DefaultPolicy() Policy {
	return Policy{
		ShortTermRate:   decimal.NewFromFloat(0.18),
		LongTermRate:    decimal.NewFromFloat(0.10),
		LongTermYears:   3.0,
		AnnualExclusion: M(40000),
	}
}

// Rate returns the tax rate for a holding period.
func (p Policy) Rate(longTerm bool) decimal.Decimal {
	if longTerm {
		return p.LongTermRate
	}
	return p.ShortTermRate
}

// net deducts the venue fee from an amount of proceeds. With a zero FeeRate
// it is the identity.
func (p Policy) net(proceeds Money) Money {
	if p.FeeRate.IsZero() {
		return proceeds
	}
	return proceeds.Sub(proceeds.Rate(p.FeeRate))
}

// MarshalJSON implements the json.Marshaler interface for Policy, with rates
// expressed as percentages the way reports present them.
func (p Policy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("annual_exclusion", p.AnnualExclusion)
	w.Append("short_term_rate", p.ShortTermRate.Mul(hundred))
	w.Append("long_term_rate", p.LongTermRate.Mul(hundred))
	w.Append("long_term_threshold_years", p.LongTermYears)
	w.Append("tax_year_start", "1 March")
	w.Append("tax_year_end", "28/29 February")
	return w.MarshalJSON()
}
