package domain

// Denominations the till carries, in cents, descending. 1000 down to 0.10
// in the store's currency units.
var Denominations = []int64{
	100000, 50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100, 50, 20, 10,
}

type DenominationCount struct {
	UnitCents int64
	Count     int64
}

// Breakdown is advisory for the cashier; settlement never depends on it.
type Breakdown struct {
	Lines []DenominationCount

	// RemainderCents is whatever is left below the smallest denomination.
	RemainderCents int64
}

// ChangeBreakdown greedily decomposes a change amount over Denominations.
func ChangeBreakdown(changeCents int64) Breakdown {
	var b Breakdown
	if changeCents <= 0 {
		return b
	}

	rest := changeCents
	for _, unit := range Denominations {
		if n := rest / unit; n > 0 {
			b.Lines = append(b.Lines, DenominationCount{UnitCents: unit, Count: n})
			rest -= n * unit
		}
	}
	b.RemainderCents = rest
	return b
}
