package model

// Listing is one vehicle listing as served by the listing store.
// The engine reads it; it never mutates it.
type Listing struct {
	ID           string  `json:"id"`
	LegacyID     string  `json:"listing_id,omitempty"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Variant      string  `json:"variant,omitempty"`
	BodyType     string  `json:"body_type,omitempty"`
	RetailPrice  float64 `json:"retail_price"`
	MonthlyPrice float64 `json:"monthly_price"`

	LeasePricing []LeaseOption `json:"lease_pricing,omitempty"`
}

// ListingFilters narrows a listing store search.
type ListingFilters struct {
	Make            string  `json:"make,omitempty"`
	MonthlyPriceMin float64 `json:"monthly_price_min,omitempty"`
	MonthlyPriceMax float64 `json:"monthly_price_max,omitempty"`
	ExcludeID       string  `json:"exclude_id,omitempty"`
}
