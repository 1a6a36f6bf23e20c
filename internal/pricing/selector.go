package pricing

import (
	"math"

	"lease-pricing-api/internal/model"
)

// SelectionMethod records which term path produced the default offer.
type SelectionMethod string

const (
	SelectionExact    SelectionMethod = "exact"
	SelectionFallback SelectionMethod = "fallback"
)

// termPreference is the order in which contract lengths are tried when
// picking the displayed default offer. 36 months is the canonical term;
// 24 then 48 are fallbacks. Other terms are never picked as the default.
var termPreference = []int{36, 24, 48}

// highMileageTiers are treated as interchangeable when the target mileage
// is 35000: the market thins out above 30k km/year, so any "35k+" tier
// counts as a match.
var highMileageTiers = map[int]bool{
	35000: true,
	40000: true,
	45000: true,
	50000: true,
}

// OfferSelection is a selected default offer plus how it was chosen.
type OfferSelection struct {
	Offer  model.LeaseOption `json:"offer"`
	Method SelectionMethod   `json:"selection_method"`
}

// SelectBestOffer picks one canonical default offer for a vehicle given a
// target mileage and deposit. Pure: the same offer list and targets always
// yield the same result. Returns nil when no offer matches the mileage.
func SelectBestOffer(offers []model.LeaseOption, targetMileage int, targetDeposit float64) *OfferSelection {
	candidates := filterByMileage(offers, targetMileage)
	if len(candidates) == 0 {
		return nil
	}

	for _, period := range termPreference {
		var atPeriod []model.LeaseOption
		for _, o := range candidates {
			if *o.PeriodMonths == period {
				atPeriod = append(atPeriod, o)
			}
		}
		if len(atPeriod) == 0 {
			continue
		}

		method := SelectionFallback
		if period == 36 {
			method = SelectionExact
		}
		return &OfferSelection{
			Offer:  pickByDeposit(atPeriod, targetDeposit),
			Method: method,
		}
	}
	return nil
}

func filterByMileage(offers []model.LeaseOption, targetMileage int) []model.LeaseOption {
	var out []model.LeaseOption
	for _, o := range offers {
		if !o.Complete() {
			continue
		}
		m := *o.MileagePerYear
		if targetMileage == 35000 {
			if highMileageTiers[m] {
				out = append(out, o)
			}
		} else if m == targetMileage {
			out = append(out, o)
		}
	}
	return out
}

// pickByDeposit prefers an exact deposit match, then the numerically
// closest deposit, breaking ties by the lowest monthly price.
func pickByDeposit(offers []model.LeaseOption, targetDeposit float64) model.LeaseOption {
	best := offers[0]
	bestDist := math.Abs(*best.FirstPayment - targetDeposit)
	for _, o := range offers[1:] {
		dist := math.Abs(*o.FirstPayment - targetDeposit)
		if dist < bestDist || (dist == bestDist && o.MonthlyPrice < best.MonthlyPrice) {
			best = o
			bestDist = dist
		}
	}
	return best
}
