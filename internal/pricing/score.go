package pricing

import "math"

// calculationVersion tags every breakdown so historical scores can be told
// apart from future formula revisions.
const calculationVersion = "2.1"

// Baseline methods describing which code path produced a score.
const (
	BaselineAnchors           = "anchors"
	BaselineInvalidPrice      = "invalid_price"
	BaselineImplausibleRetail = "implausible_retail"
)

// ScoreInput is everything the lease score needs about one offer.
type ScoreInput struct {
	RetailPrice    float64 `json:"retail_price"`
	MonthlyPrice   float64 `json:"monthly_price"`
	MileagePerYear int     `json:"mileage_per_year"`
	FirstPayment   float64 `json:"first_payment"`
	ContractMonths int     `json:"contract_months"` // defaults to 36 when zero
}

// ScoreBaseline tags which code path produced the score.
type ScoreBaseline struct {
	Method string `json:"method"`
}

// ScoreBreakdown is a 0-100 desirability score and its parts.
type ScoreBreakdown struct {
	TotalScore int `json:"total_score"`

	MonthlyRateScore int     `json:"monthly_rate_score"`
	EML12Percent     float64 `json:"eml_12_percent"`
	EMLTermPercent   float64 `json:"eml_term_percent"`
	EMLBlendPercent  float64 `json:"eml_blend_percent"`

	MileageScore int `json:"mileage_score"`

	UpfrontScore        int     `json:"upfront_score"`
	FirstPaymentPercent float64 `json:"first_payment_percent"`

	Baseline           ScoreBaseline `json:"baseline"`
	CalculationVersion string        `json:"calculation_version"`
}

// ScoreCalculator computes lease scores under one profile.
type ScoreCalculator struct {
	profile ScoreProfile
}

// NewScoreCalculator creates a calculator with the given profile.
func NewScoreCalculator(profile ScoreProfile) *ScoreCalculator {
	return &ScoreCalculator{profile: profile}
}

// mileageSteps maps annual mileage allowance to a sub-score.
var mileageSteps = []struct {
	atLeast int
	score   int
}{
	{25000, 100},
	{20000, 90},
	{15000, 75},
	{12000, 55},
	{10000, 35},
	{0, 20},
}

// upfrontSteps maps first payment as a percent of retail price to a
// sub-score.
var upfrontSteps = []struct {
	atMost float64
	score  int
}{
	{0, 100},
	{3, 95},
	{5, 90},
	{7, 80},
	{10, 70},
	{15, 55},
	{20, 40},
}

// Calculate computes the desirability score for one offer.
//
// The effective monthly load (EML) amortizes the deposit over an exit
// horizon; a 12-month exit and a full-term exit are blended. Note the
// deposit influences both the EML and the upfront sub-score; this
// double-counting is the current intended weighting, pending a rebalance.
func (c *ScoreCalculator) Calculate(input ScoreInput) ScoreBreakdown {
	if input.RetailPrice <= 0 || input.MonthlyPrice <= 0 {
		return c.zeroScore(BaselineInvalidPrice)
	}
	if input.RetailPrice < c.profile.RetailPriceMin || input.RetailPrice > c.profile.RetailPriceMax {
		return c.zeroScore(BaselineImplausibleRetail)
	}

	contractMonths := input.ContractMonths
	if contractMonths <= 0 {
		contractMonths = 36
	}

	eml12 := input.MonthlyPrice + input.FirstPayment/12
	emlTerm := input.MonthlyPrice + input.FirstPayment/float64(contractMonths)
	eml12Pct := eml12 / input.RetailPrice * 100
	emlTermPct := emlTerm / input.RetailPrice * 100
	blendPct := c.profile.EML12Weight*eml12Pct + c.profile.EMLTermWeight*emlTermPct

	monthlyRateScore := c.monthlyRateScore(blendPct)

	mileage := input.MileagePerYear
	if mileage < 0 {
		mileage = 0
	}
	mileageScore := 20
	for _, step := range mileageSteps {
		if mileage >= step.atLeast {
			mileageScore = step.score
			break
		}
	}

	firstPaymentPct := input.FirstPayment / input.RetailPrice * 100
	upfrontScore := 25
	for _, step := range upfrontSteps {
		if firstPaymentPct <= step.atMost {
			upfrontScore = step.score
			break
		}
	}

	total := c.profile.MonthlyRateWeight*float64(monthlyRateScore) +
		c.profile.MileageWeight*float64(mileageScore) +
		c.profile.UpfrontWeight*float64(upfrontScore)

	return ScoreBreakdown{
		TotalScore:          clampScore(int(math.Round(total))),
		MonthlyRateScore:    monthlyRateScore,
		EML12Percent:        eml12Pct,
		EMLTermPercent:      emlTermPct,
		EMLBlendPercent:     blendPct,
		MileageScore:        mileageScore,
		UpfrontScore:        upfrontScore,
		FirstPaymentPercent: firstPaymentPct,
		Baseline:            ScoreBaseline{Method: BaselineAnchors},
		CalculationVersion:  calculationVersion,
	}
}

// monthlyRateScore maps the blended EML percentage linearly onto 0-100
// between the profile anchors.
func (c *ScoreCalculator) monthlyRateScore(blendPct float64) int {
	best, worst := c.profile.EMLBestPercent, c.profile.EMLWorstPercent
	if blendPct <= best {
		return 100
	}
	if blendPct >= worst {
		return 0
	}
	return clampScore(int(math.Round(100 * (worst - blendPct) / (worst - best))))
}

func (c *ScoreCalculator) zeroScore(method string) ScoreBreakdown {
	return ScoreBreakdown{
		Baseline:           ScoreBaseline{Method: method},
		CalculationVersion: calculationVersion,
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
