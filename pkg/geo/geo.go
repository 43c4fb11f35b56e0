package geo

import "math"

const (
	earthRadiusKm = 6371

	// ~5 km/h walking pace.
	walkingMinutesPerKm = 12
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance between two points,
// rounded to one decimal place.
func DistanceKm(a Point, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return round1(earthRadiusKm * c)
}

// WalkingMinutes estimates walking time for a distance in kilometres.
func WalkingMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm * walkingMinutesPerKm))
}

// Annotate computes the distance from a listing's coordinates to the campus
// reference point and the derived walking time. Listings without coordinates
// get nil results; a missing coordinate must never be treated as zero, that
// would place the listing in the Atlantic and report a multi-thousand
// kilometre distance.
func Annotate(lat *float64, lng *float64, reference Point) (*float64, *int) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	distance := DistanceKm(Point{Lat: *lat, Lng: *lng}, reference)
	minutes := WalkingMinutes(distance)
	return &distance, &minutes
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
