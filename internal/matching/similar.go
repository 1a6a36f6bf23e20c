package matching

import (
	"context"
	"log/slog"
	"math"

	"lease-pricing-api/internal/model"
)

// Broad query window around the reference vehicle's monthly price. One
// fetch is issued per reference vehicle; every tier filters the same
// candidate set client-side.
const (
	priceWindowLow  = 0.6
	priceWindowHigh = 1.4
	fetchMultiplier = 3
)

// ListingSource is the external listing store's query capability.
type ListingSource interface {
	Search(ctx context.Context, filters model.ListingFilters, limit int) ([]model.Listing, error)
}

// Tier is one step of the fallback ladder: a predicate plus the minimum
// result count that makes the tier acceptable.
type Tier struct {
	Name       string
	MinResults int
	matches    func(ref, candidate model.Listing) bool
}

// defaultTiers is tried in order until one meets its minimum.
var defaultTiers = []Tier{
	{
		Name:       "same_make_model",
		MinResults: 1,
		matches: func(ref, c model.Listing) bool {
			return SameName(ref.Make, c.Make) && SameName(ref.Model, c.Model)
		},
	},
	{
		Name:       "same_make_body",
		MinResults: 3,
		matches: func(ref, c model.Listing) bool {
			return SameName(ref.Make, c.Make) && SameName(ref.BodyType, c.BodyType)
		},
	},
	{
		Name:       "same_make_broad",
		MinResults: 2,
		matches: func(ref, c model.Listing) bool {
			return SameName(ref.Make, c.Make)
		},
	},
	{
		Name:       "similar_price_band",
		MinResults: 2,
		matches: func(ref, c model.Listing) bool {
			return math.Abs(c.MonthlyPrice-ref.MonthlyPrice) <= 0.2*ref.MonthlyPrice
		},
	},
	{
		Name:       "price_only",
		MinResults: 1,
		matches: func(ref, c model.Listing) bool {
			return true
		},
	},
}

// rareMakes are brands with so few listings that the broad query would
// otherwise be flooded with irrelevant mainstream vehicles; for these the
// query itself is constrained to the same make.
var rareMakes = map[string]bool{
	"aston martin": true,
	"bentley":      true,
	"ferrari":      true,
	"lamborghini":  true,
	"lotus":        true,
	"maserati":     true,
	"mclaren":      true,
	"morgan":       true,
	"porsche":      true,
	"rolls-royce":  true,
}

// SimilarResult is the matcher's output plus the tier metadata the UI uses
// for messaging ("showing broader matches").
type SimilarResult struct {
	SimilarCars       []model.Listing `json:"similar_cars"`
	ActiveTier        string          `json:"active_tier"`
	HasMinimumResults bool            `json:"has_minimum_results"`
}

// SimilarMatcher finds comparable listings for a reference vehicle by
// trying successively broader matching tiers.
type SimilarMatcher struct {
	source ListingSource
	tiers  []Tier
}

// NewSimilarMatcher creates a matcher over the given listing source.
func NewSimilarMatcher(source ListingSource) *SimilarMatcher {
	return &SimilarMatcher{source: source, tiers: defaultTiers}
}

// FindSimilar returns up to targetCount listings comparable to ref.
// A reference vehicle with missing price or identity data degrades to an
// empty result, never an error; only the store fetch itself can fail.
func (m *SimilarMatcher) FindSimilar(ctx context.Context, ref model.Listing, targetCount int) (SimilarResult, error) {
	if targetCount <= 0 {
		targetCount = 6
	}
	if ref.MonthlyPrice <= 0 || ref.Make == "" || ref.Model == "" {
		slog.Debug("similar listings skipped, incomplete reference", "listing_id", ref.ID)
		return SimilarResult{SimilarCars: []model.Listing{}}, nil
	}

	filters := model.ListingFilters{
		MonthlyPriceMin: ref.MonthlyPrice * priceWindowLow,
		MonthlyPriceMax: ref.MonthlyPrice * priceWindowHigh,
		ExcludeID:       ref.ID,
	}
	if rareMakes[Normalize(ref.Make)] {
		filters.Make = ref.Make
	}

	candidates, err := m.source.Search(ctx, filters, targetCount*fetchMultiplier)
	if err != nil {
		return SimilarResult{}, err
	}
	candidates = excludeReference(ref, candidates)

	for _, tier := range m.tiers {
		var matched []model.Listing
		for _, c := range candidates {
			if tier.matches(ref, c) {
				matched = append(matched, c)
			}
		}
		if len(matched) < tier.MinResults {
			continue
		}
		if len(matched) > targetCount {
			matched = matched[:targetCount]
		}
		return SimilarResult{
			SimilarCars:       matched,
			ActiveTier:        tier.Name,
			HasMinimumResults: true,
		}, nil
	}

	return SimilarResult{SimilarCars: []model.Listing{}}, nil
}

// excludeReference drops the reference vehicle from the candidate set,
// comparing every id field so the same vehicle cannot reappear under its
// legacy listing id.
func excludeReference(ref model.Listing, candidates []model.Listing) []model.Listing {
	refIDs := make(map[string]bool, 2)
	if ref.ID != "" {
		refIDs[ref.ID] = true
	}
	if ref.LegacyID != "" {
		refIDs[ref.LegacyID] = true
	}

	out := candidates[:0]
	for _, c := range candidates {
		if (c.ID != "" && refIDs[c.ID]) || (c.LegacyID != "" && refIDs[c.LegacyID]) {
			continue
		}
		out = append(out, c)
	}
	return out
}
