package discovery

import (
	"testing"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/geo"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/rating"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"

	"github.com/shopspring/decimal"
)

func price(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func fixtureListings() []property.Property {
	return []property.Property{
		{
			Id:               1,
			Title:            "Sunrise Hostel",
			Address:          "12 Cecil Avenue, Hillside",
			PricePerMonth:    price("80"),
			IsAvailable:      true,
			GenderPreference: property.GenderMixed,
		},
		{
			Id:               2,
			Title:            "Matopos View Boarding House",
			Address:          "3 Matopos Road",
			PricePerMonth:    price("120"),
			IsAvailable:      false,
			GenderPreference: property.GenderLadies,
		},
		{
			Id:               3,
			Title:            "Campus Corner",
			Address:          "1 Gwanda Road",
			PricePerMonth:    price("150.50"),
			IsAvailable:      true,
			GenderPreference: property.GenderGents,
		},
	}
}

func ids(listings []property.Property) []int64 {
	result := make([]int64, 0, len(listings))
	for _, listing := range listings {
		result = append(result, listing.Id)
	}
	return result
}

func equalIds(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyNoCriteriaReturnsEverything(t *testing.T) {
	filtered := Apply(fixtureListings(), Criteria{})
	if !equalIds(ids(filtered), []int64{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", ids(filtered))
	}
}

func TestApplySearchMatchesTitleOrAddress(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"title match", "sunrise", []int64{1}},
		{"address match", "gwanda", []int64{3}},
		{"case insensitive", "MATOPOS", []int64{2}},
		{"matches either field", "road", []int64{2, 3}},
		{"no match", "harare", []int64{}},
		{"whitespace trimmed", "  campus  ", []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Apply(fixtureListings(), Criteria{Search: tt.search})
			if !equalIds(ids(filtered), tt.want) {
				t.Errorf("ids = %v, want %v", ids(filtered), tt.want)
			}
		})
	}
}

func TestApplyMaxPriceInclusive(t *testing.T) {
	ceiling := price("120")
	filtered := Apply(fixtureListings(), Criteria{MaxPrice: &ceiling})
	// A listing priced exactly at the ceiling stays in.
	if !equalIds(ids(filtered), []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", ids(filtered))
	}
}

func TestApplyOnlyAvailable(t *testing.T) {
	filtered := Apply(fixtureListings(), Criteria{OnlyAvailable: true})
	if !equalIds(ids(filtered), []int64{1, 3}) {
		t.Errorf("ids = %v, want [1 3]", ids(filtered))
	}
}

func TestApplyGender(t *testing.T) {
	tests := []struct {
		gender string
		want   []int64
	}{
		{"", []int64{1, 2, 3}},
		{GenderAll, []int64{1, 2, 3}},
		{property.GenderLadies, []int64{2}},
		{property.GenderGents, []int64{3}},
		{property.GenderMixed, []int64{1}},
	}
	for _, tt := range tests {
		filtered := Apply(fixtureListings(), Criteria{Gender: tt.gender})
		if !equalIds(ids(filtered), tt.want) {
			t.Errorf("gender %q: ids = %v, want %v", tt.gender, ids(filtered), tt.want)
		}
	}
}

func TestApplyCombinesCriteria(t *testing.T) {
	ceiling := price("150.50")
	criteria := Criteria{
		Search:        "road",
		MaxPrice:      &ceiling,
		OnlyAvailable: true,
	}
	// "road" matches 2 and 3, the price ceiling keeps both, availability
	// drops 2. Every active axis must pass.
	filtered := Apply(fixtureListings(), criteria)
	if !equalIds(ids(filtered), []int64{3}) {
		t.Errorf("ids = %v, want [3]", ids(filtered))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	listings := fixtureListings()
	Apply(listings, Criteria{Search: "sunrise"})
	if !equalIds(ids(listings), []int64{1, 2, 3}) {
		t.Errorf("input reordered: %v", ids(listings))
	}
}

func TestApplyIdempotent(t *testing.T) {
	criteria := Criteria{OnlyAvailable: true}
	once := Apply(fixtureListings(), criteria)
	twice := Apply(once, criteria)
	if !equalIds(ids(once), ids(twice)) {
		t.Errorf("second application changed the result: %v vs %v", ids(once), ids(twice))
	}
}

// TestDiscoveryPipeline runs the full annotate-aggregate-filter sequence the
// listing endpoints perform, over a small neighbourhood around the campus
// anchor.
func TestDiscoveryPipeline(t *testing.T) {
	campus := geo.Point{Lat: -20.165, Lng: 28.642}
	northLat := -20.12003
	campusLng := 28.642

	listings := fixtureListings()
	// Listing 1 has no coordinates. Listing 2 sits ~5 km north. Listing 3
	// is at the anchor itself.
	listings[1].Latitude = &northLat
	listings[1].Longitude = &campusLng
	listings[2].Latitude = &campus.Lat
	listings[2].Longitude = &campus.Lng
	listings[2].Reviews = []review.Review{{Rating: 5}, {Rating: 4}}

	for i := range listings {
		listings[i].Distance, listings[i].WalkingMinutes = geo.Annotate(listings[i].Latitude, listings[i].Longitude, campus)
		listings[i].AverageRating, listings[i].ReviewCount = rating.Aggregate(listings[i].Reviews)
	}

	if listings[0].Distance != nil || listings[0].WalkingMinutes != nil {
		t.Errorf("listing without coordinates annotated: %v, %v", listings[0].Distance, listings[0].WalkingMinutes)
	}
	if listings[1].Distance == nil || *listings[1].Distance != 5.0 {
		t.Errorf("listing 2 distance = %v, want 5.0", listings[1].Distance)
	}
	if listings[1].WalkingMinutes == nil || *listings[1].WalkingMinutes != 60 {
		t.Errorf("listing 2 walking minutes = %v, want 60", listings[1].WalkingMinutes)
	}
	if listings[2].Distance == nil || *listings[2].Distance != 0 {
		t.Errorf("listing 3 distance = %v, want 0", listings[2].Distance)
	}
	if listings[2].AverageRating == nil || *listings[2].AverageRating != 4.5 {
		t.Errorf("listing 3 average rating = %v, want 4.5", listings[2].AverageRating)
	}
	if listings[2].ReviewCount != 2 {
		t.Errorf("listing 3 review count = %d, want 2", listings[2].ReviewCount)
	}

	filtered := Apply(listings, Criteria{OnlyAvailable: true})
	if !equalIds(ids(filtered), []int64{1, 3}) {
		t.Errorf("filtered ids = %v, want [1 3]", ids(filtered))
	}
	// Annotations ride along unchanged through filtering.
	if filtered[1].Distance == nil || *filtered[1].Distance != 0 {
		t.Errorf("annotation lost in filter: %v", filtered[1].Distance)
	}
}
