package models

// Sort orders applied as a pure re-sort of the search result set. The store
// query itself always returns newest-first.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDistance  = "distance"
)

// ListingFilters describes an optional constraint per field; a nil pointer
// means "no constraint". Zero values count as unset, so Normalize folds them
// back into nil rather than letting them filter. This makes "exactly zero
// bedrooms" inexpressible through the filter.
type ListingFilters struct {
	PriceMin    *float64 `json:"priceMin,omitempty"`
	PriceMax    *float64 `json:"priceMax,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *float64 `json:"bathrooms,omitempty"`
	DistanceMax *float64 `json:"distanceMax,omitempty"`
	Furnished   *bool    `json:"furnished,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Sort        string   `json:"sort,omitempty"`
}

// Normalize drops zero-valued numeric constraints and empty amenity lists.
func (f *ListingFilters) Normalize() {
	if f.PriceMin != nil && *f.PriceMin == 0 {
		f.PriceMin = nil
	}
	if f.PriceMax != nil && *f.PriceMax == 0 {
		f.PriceMax = nil
	}
	if f.Bedrooms != nil && *f.Bedrooms == 0 {
		f.Bedrooms = nil
	}
	if f.Bathrooms != nil && *f.Bathrooms == 0 {
		f.Bathrooms = nil
	}
	if f.DistanceMax != nil && *f.DistanceMax == 0 {
		f.DistanceMax = nil
	}
	if len(f.Amenities) == 0 {
		f.Amenities = nil
	}
}
