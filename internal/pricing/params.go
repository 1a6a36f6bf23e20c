package pricing

import (
	"fmt"
	"strconv"

	"lease-pricing-api/internal/model"
)

// Dimension identifies one axis of a lease configuration.
type Dimension string

const (
	DimMileage Dimension = "mileage"
	DimTerm    Dimension = "term"
	DimDeposit Dimension = "deposit"
)

// dimensionSpec couples the two accepted parameter names for one dimension
// with its default and its valid range. Keeping both naming schemes in one
// table keeps them in lock-step.
type dimensionSpec struct {
	primaryKey string
	legacyKey  string
	defaultVal int
	min        int
	max        int
	allowed    []int // discrete set; snap instead of clamp when non-nil
}

var dimensionSpecs = map[Dimension]dimensionSpec{
	DimMileage: {
		primaryKey: "selectedMileage",
		legacyKey:  "km",
		defaultVal: 15000,
		min:        10000,
		max:        50000,
	},
	DimTerm: {
		primaryKey: "selectedTerm",
		legacyKey:  "mdr",
		defaultVal: 36,
		allowed:    []int{12, 24, 36, 48, 60},
	},
	DimDeposit: {
		primaryKey: "selectedDeposit",
		legacyKey:  "udb",
		defaultVal: 0,
		min:        0,
		max:        150000,
	},
}

// RawLeaseParams holds the parsed-but-not-defaulted selection. A nil field
// means the parameter was missing or unparsable.
type RawLeaseParams struct {
	Mileage *int
	Term    *int
	Deposit *int
}

// ParseLeaseParams reads a flat key-value map under both naming schemes.
// The descriptive key wins when both are present. Values that do not parse
// as integers are treated as absent.
func ParseLeaseParams(params map[string]string) RawLeaseParams {
	return RawLeaseParams{
		Mileage: parseDimension(params, DimMileage),
		Term:    parseDimension(params, DimTerm),
		Deposit: parseDimension(params, DimDeposit),
	}
}

func parseDimension(params map[string]string, dim Dimension) *int {
	spec := dimensionSpecs[dim]
	for _, key := range []string{spec.primaryKey, spec.legacyKey} {
		raw, ok := params[key]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// NormalizeLeaseParams parses a flat key-value map, applies defaults for
// absent dimensions and clamps every value into its valid range. This is
// the default path for interactive callers; it never fails.
func NormalizeLeaseParams(params map[string]string) model.LeaseConfig {
	return ParseLeaseParams(params).Normalize()
}

// Normalize applies defaults to absent dimensions and clamps the result.
func (r RawLeaseParams) Normalize() model.LeaseConfig {
	return model.LeaseConfig{
		Mileage: Clamp(DimMileage, valueOrDefault(r.Mileage, DimMileage)),
		Term:    Clamp(DimTerm, valueOrDefault(r.Term, DimTerm)),
		Deposit: Clamp(DimDeposit, valueOrDefault(r.Deposit, DimDeposit)),
	}
}

func valueOrDefault(v *int, dim Dimension) int {
	if v != nil {
		return *v
	}
	return dimensionSpecs[dim].defaultVal
}

// Clamp forces a value into the dimension's valid range. Continuous
// dimensions clamp to a closed interval; the term dimension snaps to the
// nearest allowed contract length, first minimal-distance candidate in set
// order winning ties.
func Clamp(dim Dimension, value int) int {
	spec := dimensionSpecs[dim]
	if spec.allowed != nil {
		best := spec.allowed[0]
		bestDist := absInt(value - best)
		for _, candidate := range spec.allowed[1:] {
			if d := absInt(value - candidate); d < bestDist {
				best = candidate
				bestDist = d
			}
		}
		return best
	}
	if value < spec.min {
		return spec.min
	}
	if value > spec.max {
		return spec.max
	}
	return value
}

// ValidateLeaseConfig checks a config against the dimension ranges.
// In strict mode an out-of-range value produces an error naming the
// offending dimension; this path is for persisted preferences that must be
// rejected outright. Non-strict mode clamps silently and never fails.
func ValidateLeaseConfig(cfg model.LeaseConfig, strict bool) (model.LeaseConfig, error) {
	checks := []struct {
		dim   Dimension
		value int
	}{
		{DimMileage, cfg.Mileage},
		{DimTerm, cfg.Term},
		{DimDeposit, cfg.Deposit},
	}

	out := cfg
	for _, c := range checks {
		clamped := Clamp(c.dim, c.value)
		if clamped == c.value {
			continue
		}
		if strict {
			return cfg, fmt.Errorf("lease config %s out of range: %d", c.dim, c.value)
		}
		switch c.dim {
		case DimMileage:
			out.Mileage = clamped
		case DimTerm:
			out.Term = clamped
		case DimDeposit:
			out.Deposit = clamped
		}
	}
	return out, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
