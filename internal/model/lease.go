package model

// LeaseOption is one priced combination of annual mileage, contract length
// and first payment for a vehicle. Dimensions are pointers because the
// source rows may miss any of them; rows with a missing dimension are
// skipped when a price matrix is built.
type LeaseOption struct {
	MileagePerYear *int     `json:"mileage_per_year"`
	PeriodMonths   *int     `json:"period_months"`
	FirstPayment   *float64 `json:"first_payment"`
	MonthlyPrice   float64  `json:"monthly_price"`
	TotalCost      *float64 `json:"total_cost,omitempty"`
}

// Complete reports whether all three dimensions are present.
func (o LeaseOption) Complete() bool {
	return o.MileagePerYear != nil && o.PeriodMonths != nil && o.FirstPayment != nil
}

// LeaseConfig is a user's normalized mileage/term/deposit selection.
// Immutable once produced by the normalizer.
type LeaseConfig struct {
	Mileage int `json:"selectedMileage"`
	Term    int `json:"selectedTerm"`
	Deposit int `json:"selectedDeposit"`
}

// PriceImpact describes what switching to another matrix cell would cost
// relative to a caller-supplied current price.
type PriceImpact struct {
	Available        bool    `json:"available"`
	NewPrice         float64 `json:"new_price,omitempty"`
	Difference       float64 `json:"difference"`
	PercentageChange float64 `json:"percentage_change"`
	IsIncrease       bool    `json:"is_increase"`
	IsDecrease       bool    `json:"is_decrease"`
	IsSame           bool    `json:"is_same"`
	IsCheapest       bool    `json:"is_cheapest"`
	IsMostExpensive  bool    `json:"is_most_expensive"`
}
