package service

import (
	"context"
	"testing"

	"lease-pricing-api/internal/model"
	"lease-pricing-api/internal/pricing"
	"lease-pricing-api/internal/repository"
)

type mockStore struct {
	listings    map[string]*model.Listing
	searchCalls int
	searchFunc  func(filters model.ListingFilters, limit int) ([]model.Listing, error)
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if l, ok := m.listings[id]; ok {
		return l, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) Search(ctx context.Context, filters model.ListingFilters, limit int) ([]model.Listing, error) {
	m.searchCalls++
	if m.searchFunc != nil {
		return m.searchFunc(filters, limit)
	}
	return nil, nil
}

func leaseOption(mileage, period int, deposit, price float64) model.LeaseOption {
	d := deposit
	return model.LeaseOption{
		MileagePerYear: &mileage,
		PeriodMonths:   &period,
		FirstPayment:   &d,
		MonthlyPrice:   price,
	}
}

func testListing() *model.Listing {
	return &model.Listing{
		ID:          "l1",
		Make:        "VW",
		Model:       "ID.4",
		BodyType:    "SUV",
		RetailPrice: 400000,
		LeasePricing: []model.LeaseOption{
			leaseOption(15000, 36, 0, 4000),
			leaseOption(15000, 24, 0, 4300),
			leaseOption(20000, 36, 0, 4500),
			leaseOption(15000, 36, 10000, 3700),
		},
	}
}

func newPricingService(store ListingStore) *PricingService {
	return NewPricingService(store, pricing.NewScoreCalculator(pricing.DefaultScoreProfile()))
}

func TestGetListingPricing_DefaultConfig(t *testing.T) {
	store := &mockStore{listings: map[string]*model.Listing{"l1": testListing()}}
	svc := newPricingService(store)

	resp, err := svc.GetListingPricing(context.Background(), "l1", map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Config.Mileage != 15000 || resp.Config.Term != 36 || resp.Config.Deposit != 0 {
		t.Errorf("unexpected config: %+v", resp.Config)
	}
	if resp.SelectedOffer == nil {
		t.Fatal("expected a selected offer")
	}
	if resp.SelectedOffer.MonthlyPrice != 4000 {
		t.Errorf("expected the 15000/36/0 offer, got %v", resp.SelectedOffer.MonthlyPrice)
	}
	if resp.SelectionMethod != pricing.SelectionExact {
		t.Errorf("expected exact selection, got %s", resp.SelectionMethod)
	}
	if resp.Score == nil {
		t.Fatal("expected a score")
	}
	if resp.Score.TotalScore != 86 {
		t.Errorf("score = %d, want 86", resp.Score.TotalScore)
	}
}

func TestGetListingPricing_ImpactMaps(t *testing.T) {
	store := &mockStore{listings: map[string]*model.Listing{"l1": testListing()}}
	svc := newPricingService(store)

	resp, err := svc.GetListingPricing(context.Background(), "l1", map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.MileageOptions) != 2 {
		t.Fatalf("expected 2 mileage options, got %d", len(resp.MileageOptions))
	}
	upgrade := resp.MileageOptions[1]
	if upgrade.Value != 20000 || !upgrade.Impact.IsIncrease || upgrade.Impact.Difference != 500 {
		t.Errorf("unexpected mileage upgrade impact: %+v", upgrade)
	}

	if len(resp.DepositOptions) != 2 {
		t.Fatalf("expected 2 deposit options, got %d", len(resp.DepositOptions))
	}
	if !resp.DepositOptions[1].Impact.IsDecrease {
		t.Errorf("expected deposit 10000 to lower the price: %+v", resp.DepositOptions[1])
	}
}

func TestGetListingPricing_FallsBackToSelector(t *testing.T) {
	l := testListing()
	// Drop every 36-month offer at the default deposit; the selector must
	// fall back rather than fail.
	l.LeasePricing = []model.LeaseOption{
		leaseOption(15000, 24, 0, 4300),
		leaseOption(15000, 48, 0, 3900),
	}
	store := &mockStore{listings: map[string]*model.Listing{"l1": l}}
	svc := newPricingService(store)

	resp, err := svc.GetListingPricing(context.Background(), "l1", map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SelectedOffer == nil {
		t.Fatal("expected fallback selection")
	}
	if *resp.SelectedOffer.PeriodMonths != 24 {
		t.Errorf("expected 24-month fallback, got %d", *resp.SelectedOffer.PeriodMonths)
	}
	if resp.SelectionMethod != pricing.SelectionFallback {
		t.Errorf("expected fallback method, got %s", resp.SelectionMethod)
	}
}

func TestGetListingPricing_NoOfferIsNotAnError(t *testing.T) {
	l := testListing()
	l.LeasePricing = nil
	store := &mockStore{listings: map[string]*model.Listing{"l1": l}}
	svc := newPricingService(store)

	resp, err := svc.GetListingPricing(context.Background(), "l1", map[string]string{})
	if err != nil {
		t.Fatalf("no offer available must be a normal state, got error: %v", err)
	}
	if resp.SelectedOffer != nil {
		t.Errorf("expected nil selected offer, got %+v", resp.SelectedOffer)
	}
	if resp.Score != nil {
		t.Error("expected no score without an offer")
	}
}

func TestGetListingPricing_NotFound(t *testing.T) {
	store := &mockStore{}
	svc := newPricingService(store)

	if _, err := svc.GetListingPricing(context.Background(), "missing", nil); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestScoreOffer_GuardedInput(t *testing.T) {
	svc := newPricingService(&mockStore{})

	got := svc.ScoreOffer(pricing.ScoreInput{RetailPrice: 50000, MonthlyPrice: 1500})
	if got.TotalScore != 0 || got.Baseline.Method != pricing.BaselineImplausibleRetail {
		t.Errorf("unexpected guarded breakdown: %+v", got)
	}
}
