package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScoreProfile holds every tunable constant of the lease score so an
// alternate weighting (a future rebalance) can be swapped in without
// touching the algorithm.
type ScoreProfile struct {
	// Sub-score weights. Should sum to 1.0.
	MonthlyRateWeight float64 `json:"monthly_rate_weight"`
	MileageWeight     float64 `json:"mileage_weight"`
	UpfrontWeight     float64 `json:"upfront_weight"`

	// Blend between the 12-month and full-term exit horizons.
	EML12Weight   float64 `json:"eml_12_weight"`
	EMLTermWeight float64 `json:"eml_term_weight"`

	// Anchors mapping the blended EML percentage onto 0-100.
	EMLBestPercent  float64 `json:"eml_best_percent"`
	EMLWorstPercent float64 `json:"eml_worst_percent"`

	// Retail prices outside this band are treated as bad source data.
	RetailPriceMin float64 `json:"retail_price_min"`
	RetailPriceMax float64 `json:"retail_price_max"`
}

// DefaultScoreProfile returns the v2.1 Danish-market weighting.
func DefaultScoreProfile() ScoreProfile {
	return ScoreProfile{
		MonthlyRateWeight: 0.45,
		MileageWeight:     0.35,
		UpfrontWeight:     0.20,
		EML12Weight:       0.7,
		EMLTermWeight:     0.3,
		EMLBestPercent:    0.85,
		EMLWorstPercent:   2.25,
		RetailPriceMin:    75_000,
		RetailPriceMax:    2_500_000,
	}
}

// LoadScoreProfile loads a profile from a JSON file, falling back to the
// default profile on read errors.
func LoadScoreProfile(path string) (ScoreProfile, error) {
	p := DefaultScoreProfile()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read score profile: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("unmarshal score profile: %w", err)
	}
	return p, nil
}
