package pricing

import (
	"testing"

	"lease-pricing-api/internal/model"
)

func TestSelectBestOffer_PrefersThirtySixMonths(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 24, 0, 2999), // cheaper, still not preferred
		leaseOption(15000, 36, 0, 3999),
		leaseOption(15000, 48, 0, 3499),
	}

	sel := SelectBestOffer(offers, 15000, 0)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if *sel.Offer.PeriodMonths != 36 {
		t.Errorf("expected 36-month offer, got %d", *sel.Offer.PeriodMonths)
	}
	if sel.Method != SelectionExact {
		t.Errorf("expected exact selection method, got %s", sel.Method)
	}
}

func TestSelectBestOffer_FallbackOrder(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 24, 0, 4299),
		leaseOption(15000, 48, 0, 3999),
	}

	sel := SelectBestOffer(offers, 15000, 0)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if *sel.Offer.PeriodMonths != 24 {
		t.Errorf("expected 24-month fallback before 48, got %d", *sel.Offer.PeriodMonths)
	}
	if sel.Method != SelectionFallback {
		t.Errorf("expected fallback selection method, got %s", sel.Method)
	}
}

func TestSelectBestOffer_IgnoresUnpreferredTerms(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 12, 0, 2999),
		leaseOption(15000, 60, 0, 2499),
	}

	if sel := SelectBestOffer(offers, 15000, 0); sel != nil {
		t.Errorf("expected nil for offers outside the term preference, got %+v", sel)
	}
}

func TestSelectBestOffer_ExactMileageRequired(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(20000, 36, 0, 3999),
	}

	if sel := SelectBestOffer(offers, 15000, 0); sel != nil {
		t.Errorf("expected nil for mileage mismatch, got %+v", sel)
	}
}

func TestSelectBestOffer_HighMileageBucket(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(45000, 36, 0, 5999),
	}

	sel := SelectBestOffer(offers, 35000, 0)
	if sel == nil {
		t.Fatal("expected 45000 km offer to satisfy the 35k+ bucket")
	}
	if *sel.Offer.MileagePerYear != 45000 {
		t.Errorf("unexpected offer mileage %d", *sel.Offer.MileagePerYear)
	}

	// The bucket only applies when the target itself is 35000
	if sel := SelectBestOffer(offers, 40000, 0); sel == nil {
		t.Error("expected exact match at 40000")
	}
	if sel := SelectBestOffer([]model.LeaseOption{leaseOption(40000, 36, 0, 5999)}, 45000, 0); sel != nil {
		t.Error("expected no bucket matching for non-35000 target")
	}
}

func TestSelectBestOffer_DepositExactMatch(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 36, 0, 3999),
		leaseOption(15000, 36, 20000, 3499),
	}

	sel := SelectBestOffer(offers, 15000, 20000)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if *sel.Offer.FirstPayment != 20000 {
		t.Errorf("expected exact deposit match, got %v", *sel.Offer.FirstPayment)
	}
}

func TestSelectBestOffer_DepositClosestMatch(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 36, 0, 3999),
		leaseOption(15000, 36, 20000, 3499),
		leaseOption(15000, 36, 50000, 2999),
	}

	sel := SelectBestOffer(offers, 15000, 15000)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if *sel.Offer.FirstPayment != 20000 {
		t.Errorf("expected nearest deposit 20000, got %v", *sel.Offer.FirstPayment)
	}
}

func TestSelectBestOffer_DepositTieBreaksOnPrice(t *testing.T) {
	offers := []model.LeaseOption{
		leaseOption(15000, 36, 10000, 3999),
		leaseOption(15000, 36, 20000, 3499),
	}

	// 15000 is equidistant from both deposits; lowest monthly price wins
	sel := SelectBestOffer(offers, 15000, 15000)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Offer.MonthlyPrice != 3499 {
		t.Errorf("expected price tie-break to pick 3499, got %v", sel.Offer.MonthlyPrice)
	}
}

func TestSelectBestOffer_Deterministic(t *testing.T) {
	offers := testOffers()

	first := SelectBestOffer(offers, 15000, 5000)
	for i := 0; i < 10; i++ {
		next := SelectBestOffer(offers, 15000, 5000)
		if next == nil || first == nil {
			t.Fatal("expected selections")
		}
		if *next.Offer.FirstPayment != *first.Offer.FirstPayment ||
			next.Offer.MonthlyPrice != first.Offer.MonthlyPrice ||
			next.Method != first.Method {
			t.Fatalf("selection not deterministic: %+v vs %+v", first, next)
		}
	}
}
