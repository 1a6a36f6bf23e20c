package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lease-pricing-api/internal/cache"
	"lease-pricing-api/internal/matching"
	"lease-pricing-api/internal/model"
)

// broadQueryTTL bounds how long a cached broad query may serve; listings
// churn slowly, so a short TTL is enough to absorb concurrent page views.
const broadQueryTTL = 2 * time.Minute

// cachedListingSource wraps the listing store with a request-keyed cache
// so concurrent similar-listings lookups for the same vehicle share one
// broad query.
type cachedListingSource struct {
	store ListingStore
	cache cache.Cache
}

func (c *cachedListingSource) Search(ctx context.Context, filters model.ListingFilters, limit int) ([]model.Listing, error) {
	key := searchKey(filters, limit)

	if raw, ok := c.cache.Get(ctx, key); ok {
		var listings []model.Listing
		if err := json.Unmarshal([]byte(raw), &listings); err == nil {
			return listings, nil
		}
		// Fall through on a corrupt entry and refetch.
	}

	listings, err := c.store.Search(ctx, filters, limit)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(listings); err == nil {
		if err := c.cache.Set(ctx, key, string(raw), broadQueryTTL); err != nil {
			slog.Warn("failed to cache broad query", "error", err)
		}
	}
	return listings, nil
}

func searchKey(filters model.ListingFilters, limit int) string {
	raw, _ := json.Marshal(filters)
	return fmt.Sprintf("similar:%s:%d", raw, limit)
}

// SimilarResponse is the similar-listings payload.
type SimilarResponse struct {
	ListingID string `json:"listing_id"`
	matching.SimilarResult
}

// SimilarService finds comparable listings for a reference vehicle.
type SimilarService struct {
	store   ListingStore
	matcher *matching.SimilarMatcher
}

func NewSimilarService(store ListingStore, c cache.Cache) *SimilarService {
	return &SimilarService{
		store:   store,
		matcher: matching.NewSimilarMatcher(&cachedListingSource{store: store, cache: c}),
	}
}

// FindSimilar loads the reference listing and runs the tier ladder.
func (s *SimilarService) FindSimilar(ctx context.Context, listingID string, targetCount int) (*SimilarResponse, error) {
	ref, err := s.store.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", listingID, err)
	}

	result, err := s.matcher.FindSimilar(ctx, *ref, targetCount)
	if err != nil {
		return nil, fmt.Errorf("find similar for %s: %w", listingID, err)
	}

	return &SimilarResponse{
		ListingID:     ref.ID,
		SimilarResult: result,
	}, nil
}
