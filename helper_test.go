package cryptotax

// on is a helper for tests to create a date from a literal.
func on(str string) Date { return MustParseDate(str) }

// R is a helper for tests to create home-currency money from a const.
func R(v float64) Money { return M(v) }
