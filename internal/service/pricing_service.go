package service

import (
	"context"
	"fmt"

	"lease-pricing-api/internal/model"
	"lease-pricing-api/internal/pricing"
)

// ListingStore is the slice of the listing repository the services need.
type ListingStore interface {
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Search(ctx context.Context, filters model.ListingFilters, limit int) ([]model.Listing, error)
}

// DimensionImpact pairs one available dimension value with its price and
// the impact of switching to it from the selected offer.
type DimensionImpact struct {
	Value  float64           `json:"value"`
	Price  float64           `json:"price"`
	Impact model.PriceImpact `json:"impact"`
}

// PricingResponse is everything the storefront needs to render one
// listing's lease selector.
type PricingResponse struct {
	Listing         model.Listing            `json:"listing"`
	Config          model.LeaseConfig        `json:"config"`
	SelectedOffer   *model.LeaseOption       `json:"selected_offer"`
	SelectionMethod pricing.SelectionMethod  `json:"selection_method,omitempty"`
	Score           *pricing.ScoreBreakdown  `json:"score,omitempty"`
	MileageOptions  []DimensionImpact        `json:"mileage_options"`
	TermOptions     []DimensionImpact        `json:"term_options"`
	DepositOptions  []DimensionImpact        `json:"deposit_options"`
	CheapestOffer   *model.LeaseOption       `json:"cheapest_offer,omitempty"`
}

// PricingService turns a listing's raw offer rows into the selected
// default offer, its score and the per-dimension price impact maps.
type PricingService struct {
	store      ListingStore
	calculator *pricing.ScoreCalculator
}

func NewPricingService(store ListingStore, calculator *pricing.ScoreCalculator) *PricingService {
	return &PricingService{store: store, calculator: calculator}
}

// GetListingPricing loads a listing and prices it under the given raw
// configuration parameters. Missing offers are a normal outcome: the
// response carries a nil SelectedOffer, never an error.
func (s *PricingService) GetListingPricing(ctx context.Context, listingID string, params map[string]string) (*PricingResponse, error) {
	listing, err := s.store.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", listingID, err)
	}

	cfg := pricing.NormalizeLeaseParams(params)
	matrix := pricing.NewPriceMatrix(listing.LeasePricing)

	resp := &PricingResponse{
		Listing: *listing,
		Config:  cfg,
	}

	// Exact cell for the user's selection first, the canonical default
	// otherwise.
	if offer, ok := matrix.GetOffer(cfg.Mileage, cfg.Term, float64(cfg.Deposit)); ok {
		resp.SelectedOffer = &offer
		resp.SelectionMethod = pricing.SelectionExact
	} else if sel := pricing.SelectBestOffer(listing.LeasePricing, cfg.Mileage, float64(cfg.Deposit)); sel != nil {
		resp.SelectedOffer = &sel.Offer
		resp.SelectionMethod = sel.Method
	}

	if resp.SelectedOffer != nil {
		current := resp.SelectedOffer.MonthlyPrice
		breakdown := s.calculator.Calculate(pricing.ScoreInput{
			RetailPrice:    listing.RetailPrice,
			MonthlyPrice:   current,
			MileagePerYear: *resp.SelectedOffer.MileagePerYear,
			FirstPayment:   *resp.SelectedOffer.FirstPayment,
			ContractMonths: *resp.SelectedOffer.PeriodMonths,
		})
		resp.Score = &breakdown

		resp.MileageOptions = s.dimensionImpacts(matrix, pricing.DimMileage, cfg, current)
		resp.TermOptions = s.dimensionImpacts(matrix, pricing.DimTerm, cfg, current)
		resp.DepositOptions = s.dimensionImpacts(matrix, pricing.DimDeposit, cfg, current)
	}

	if cheapest, ok := matrix.GetCheapestOption(); ok {
		resp.CheapestOffer = &cheapest
	}

	return resp, nil
}

func (s *PricingService) dimensionImpacts(matrix *pricing.PriceMatrix, dim pricing.Dimension, cfg model.LeaseConfig, current float64) []DimensionImpact {
	prices := matrix.GetPriceRangeForDimension(dim, cfg)
	out := make([]DimensionImpact, 0, len(prices))
	for _, p := range prices {
		mileage, term, deposit := cfg.Mileage, cfg.Term, float64(cfg.Deposit)
		switch dim {
		case pricing.DimMileage:
			mileage = int(p.Value)
		case pricing.DimTerm:
			term = int(p.Value)
		case pricing.DimDeposit:
			deposit = p.Value
		}
		out = append(out, DimensionImpact{
			Value:  p.Value,
			Price:  p.Price,
			Impact: matrix.GetPriceImpact(current, mileage, term, deposit),
		})
	}
	return out
}

// ScoreOffer scores an arbitrary offer input, for backoffice probes.
func (s *PricingService) ScoreOffer(input pricing.ScoreInput) pricing.ScoreBreakdown {
	return s.calculator.Calculate(input)
}
