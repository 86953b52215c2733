package domain

// All monetary amounts are integer paise. Floating point never touches money.

// ComputeTax returns the tax on subtotal at rateBps basis points
// (1800 = 18%), rounded half-up to the nearest paisa.
func ComputeTax(subtotalPaise int64, rateBps int64) int64 {
	return (subtotalPaise*rateBps + 5000) / 10000
}
