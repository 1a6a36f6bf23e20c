package pricing

import (
	"testing"

	"lease-pricing-api/internal/model"
)

func TestNormalizeLeaseParams_Defaults(t *testing.T) {
	cfg := NormalizeLeaseParams(map[string]string{})

	if cfg.Mileage != 15000 {
		t.Errorf("expected default mileage 15000, got %d", cfg.Mileage)
	}
	if cfg.Term != 36 {
		t.Errorf("expected default term 36, got %d", cfg.Term)
	}
	if cfg.Deposit != 0 {
		t.Errorf("expected default deposit 0, got %d", cfg.Deposit)
	}
}

func TestNormalizeLeaseParams_LegacyKeys(t *testing.T) {
	cfg := NormalizeLeaseParams(map[string]string{
		"km":  "20000",
		"mdr": "24",
		"udb": "10000",
	})

	if cfg.Mileage != 20000 || cfg.Term != 24 || cfg.Deposit != 10000 {
		t.Errorf("legacy keys not read: %+v", cfg)
	}
}

func TestNormalizeLeaseParams_DescriptiveKeyWins(t *testing.T) {
	cfg := NormalizeLeaseParams(map[string]string{
		"km":              "20000",
		"selectedMileage": "25000",
	})

	if cfg.Mileage != 25000 {
		t.Errorf("expected descriptive key to win, got %d", cfg.Mileage)
	}
}

func TestNormalizeLeaseParams_UnparsableIsAbsent(t *testing.T) {
	cfg := NormalizeLeaseParams(map[string]string{
		"selectedMileage": "plenty",
		"mdr":             "24x",
	})

	if cfg.Mileage != 15000 {
		t.Errorf("unparsable mileage should default, got %d", cfg.Mileage)
	}
	if cfg.Term != 36 {
		t.Errorf("unparsable term should default, got %d", cfg.Term)
	}
}

func TestParseLeaseParams_AbsentIsNil(t *testing.T) {
	raw := ParseLeaseParams(map[string]string{"km": "20000"})

	if raw.Mileage == nil || *raw.Mileage != 20000 {
		t.Errorf("expected mileage 20000, got %v", raw.Mileage)
	}
	if raw.Term != nil {
		t.Errorf("expected nil term, got %v", *raw.Term)
	}
	if raw.Deposit != nil {
		t.Errorf("expected nil deposit, got %v", *raw.Deposit)
	}
}

func TestClamp_ContinuousRanges(t *testing.T) {
	cases := []struct {
		dim   Dimension
		value int
		want  int
	}{
		{DimMileage, 5000, 10000},
		{DimMileage, 30000, 30000},
		{DimMileage, 99999, 50000},
		{DimDeposit, -1, 0},
		{DimDeposit, 200000, 150000},
	}

	for _, c := range cases {
		if got := Clamp(c.dim, c.value); got != c.want {
			t.Errorf("Clamp(%s, %d) = %d, want %d", c.dim, c.value, got, c.want)
		}
	}
}

func TestClamp_TermSnapsToAllowed(t *testing.T) {
	cases := []struct {
		value int
		want  int
	}{
		{36, 36},
		{35, 36},
		{1, 12},
		{100, 60},
		// equidistant between 12 and 24: first minimal-distance candidate
		// in set order wins
		{18, 12},
		{30, 24},
	}

	for _, c := range cases {
		if got := Clamp(DimTerm, c.value); got != c.want {
			t.Errorf("Clamp(term, %d) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestValidateLeaseConfig_StrictRejects(t *testing.T) {
	cfg := model.LeaseConfig{Mileage: 5000, Term: 36, Deposit: 0}

	if _, err := ValidateLeaseConfig(cfg, true); err == nil {
		t.Fatal("expected strict validation error for out-of-range mileage")
	}
}

func TestValidateLeaseConfig_NonStrictClamps(t *testing.T) {
	cfg := model.LeaseConfig{Mileage: 5000, Term: 35, Deposit: 999999}

	out, err := ValidateLeaseConfig(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Mileage != 10000 || out.Term != 36 || out.Deposit != 150000 {
		t.Errorf("expected clamped config, got %+v", out)
	}
}
