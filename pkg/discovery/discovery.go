package discovery

import (
	"strings"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"

	"github.com/shopspring/decimal"
)

// GenderAll disables filtering on gender preference.
const GenderAll = "All"

// Criteria is the ephemeral filter state applied to a fetched listing set.
// Zero values mean "axis inactive": nil MaxPrice, empty Search, empty or
// "All" Gender, OnlyAvailable false.
type Criteria struct {
	MaxPrice      *decimal.Decimal
	Search        string
	OnlyAvailable bool
	Gender        string
}

// Apply filters listings down to those passing every active criterion.
// The output preserves the input order; no re-ranking happens here. The
// input slice is never mutated.
func Apply(listings []property.Property, criteria Criteria) []property.Property {
	term := strings.ToLower(strings.TrimSpace(criteria.Search))
	filtered := make([]property.Property, 0, len(listings))
	for _, listing := range listings {
		if !matchesSearch(listing, term) {
			continue
		}
		if criteria.MaxPrice != nil && listing.PricePerMonth.GreaterThan(*criteria.MaxPrice) {
			continue
		}
		if criteria.OnlyAvailable && !listing.IsAvailable {
			continue
		}
		if !matchesGender(listing, criteria.Gender) {
			continue
		}
		filtered = append(filtered, listing)
	}
	return filtered
}

// matchesSearch reports whether title OR address contains the term.
func matchesSearch(listing property.Property, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(listing.Title), term) ||
		strings.Contains(strings.ToLower(listing.Address), term)
}

func matchesGender(listing property.Property, gender string) bool {
	if gender == "" || gender == GenderAll {
		return true
	}
	return listing.GenderPreference == gender
}
