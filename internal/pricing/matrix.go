package pricing

import (
	"sort"

	"lease-pricing-api/internal/model"
)

// priceTolerance absorbs float rounding when comparing monthly prices.
const priceTolerance = 0.01

// priceKey addresses one cell of the matrix. A composite key avoids the
// collision risk of concatenated strings if numeric formatting changes.
type priceKey struct {
	mileage int
	period  int
	deposit float64
}

// PriceMatrix indexes one vehicle's lease offers by (mileage, period,
// deposit) for exact lookup. It never interpolates between cells: a
// combination absent from the source offers has no derivable price.
type PriceMatrix struct {
	index  map[priceKey]model.LeaseOption
	offers []model.LeaseOption

	cheapest      float64
	mostExpensive float64
	mean          float64
}

// NewPriceMatrix builds a matrix from a vehicle's full offer list.
// Offers missing any dimension are excluded; duplicate keys are
// last-write-wins.
func NewPriceMatrix(offers []model.LeaseOption) *PriceMatrix {
	m := &PriceMatrix{
		index: make(map[priceKey]model.LeaseOption, len(offers)),
	}

	pos := make(map[priceKey]int, len(offers))
	for _, o := range offers {
		if !o.Complete() || o.MonthlyPrice <= 0 {
			continue
		}
		key := priceKey{
			mileage: *o.MileagePerYear,
			period:  *o.PeriodMonths,
			deposit: *o.FirstPayment,
		}
		m.index[key] = o
		if i, dup := pos[key]; dup {
			m.offers[i] = o
		} else {
			pos[key] = len(m.offers)
			m.offers = append(m.offers, o)
		}
	}

	var sum float64
	for i, o := range m.offers {
		if i == 0 {
			m.cheapest = o.MonthlyPrice
			m.mostExpensive = o.MonthlyPrice
		} else {
			if o.MonthlyPrice < m.cheapest {
				m.cheapest = o.MonthlyPrice
			}
			if o.MonthlyPrice > m.mostExpensive {
				m.mostExpensive = o.MonthlyPrice
			}
		}
		sum += o.MonthlyPrice
	}
	if len(m.offers) > 0 {
		m.mean = sum / float64(len(m.offers))
	}
	return m
}

// Len returns the number of indexed offers.
func (m *PriceMatrix) Len() int {
	return len(m.offers)
}

// GetOffer returns the offer at an exact (mileage, period, deposit) cell.
func (m *PriceMatrix) GetOffer(mileage, period int, deposit float64) (model.LeaseOption, bool) {
	o, ok := m.index[priceKey{mileage: mileage, period: period, deposit: deposit}]
	return o, ok
}

// GetPrice returns the monthly price at an exact cell, or false when the
// combination does not exist in the source offers.
func (m *PriceMatrix) GetPrice(mileage, period int, deposit float64) (float64, bool) {
	o, ok := m.GetOffer(mileage, period, deposit)
	if !ok {
		return 0, false
	}
	return o.MonthlyPrice, true
}

// GetPriceImpact describes what moving to the given cell would cost
// relative to currentPrice. An absent cell yields Available=false.
func (m *PriceMatrix) GetPriceImpact(currentPrice float64, mileage, period int, deposit float64) model.PriceImpact {
	newPrice, ok := m.GetPrice(mileage, period, deposit)
	if !ok {
		return model.PriceImpact{Available: false}
	}

	diff := newPrice - currentPrice
	var pct float64
	if currentPrice != 0 {
		pct = diff / currentPrice * 100
	}

	return model.PriceImpact{
		Available:        true,
		NewPrice:         newPrice,
		Difference:       diff,
		PercentageChange: pct,
		IsIncrease:       diff > 0,
		IsDecrease:       diff < 0,
		IsSame:           diff < priceTolerance && diff > -priceTolerance,
		IsCheapest:       newPrice <= m.cheapest+priceTolerance,
		IsMostExpensive:  newPrice >= m.mostExpensive-priceTolerance,
	}
}

// DimensionPrice is one available value of a dimension and the monthly
// price it would cost with the other two dimensions held fixed.
type DimensionPrice struct {
	Value float64 `json:"value"`
	Price float64 `json:"price"`
}

// GetPriceRangeForDimension lists every available value of one dimension
// and its price, holding the other two dimensions at the given config.
// Used to populate "price if you picked this instead" hints without a
// lookup per option. Values are sorted ascending.
func (m *PriceMatrix) GetPriceRangeForDimension(dim Dimension, cfg model.LeaseConfig) []DimensionPrice {
	seen := make(map[float64]float64)
	for key, o := range m.index {
		switch dim {
		case DimMileage:
			if key.period == cfg.Term && key.deposit == float64(cfg.Deposit) {
				seen[float64(key.mileage)] = o.MonthlyPrice
			}
		case DimTerm:
			if key.mileage == cfg.Mileage && key.deposit == float64(cfg.Deposit) {
				seen[float64(key.period)] = o.MonthlyPrice
			}
		case DimDeposit:
			if key.mileage == cfg.Mileage && key.period == cfg.Term {
				seen[key.deposit] = o.MonthlyPrice
			}
		}
	}

	out := make([]DimensionPrice, 0, len(seen))
	for v, p := range seen {
		out = append(out, DimensionPrice{Value: v, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// GetCheapestOption returns the offer with the lowest monthly price.
// Ties go to the first offer encountered in source order.
func (m *PriceMatrix) GetCheapestOption() (model.LeaseOption, bool) {
	if len(m.offers) == 0 {
		return model.LeaseOption{}, false
	}
	best := m.offers[0]
	for _, o := range m.offers[1:] {
		if o.MonthlyPrice < best.MonthlyPrice {
			best = o
		}
	}
	return best, true
}

// Stats returns the cheapest, most expensive and mean monthly price over
// all indexed offers.
func (m *PriceMatrix) Stats() (cheapest, mostExpensive, mean float64, ok bool) {
	if len(m.offers) == 0 {
		return 0, 0, 0, false
	}
	return m.cheapest, m.mostExpensive, m.mean, true
}
