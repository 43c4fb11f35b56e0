package geo

import "testing"

var campus = Point{Lat: -20.165, Lng: 28.642}

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	if got := DistanceKm(campus, campus); got != 0 {
		t.Errorf("DistanceKm(campus, campus) = %v, want 0", got)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := Point{Lat: -20.12003, Lng: 28.642}
	if DistanceKm(a, campus) != DistanceKm(campus, a) {
		t.Errorf("DistanceKm not symmetric: %v vs %v", DistanceKm(a, campus), DistanceKm(campus, a))
	}
}

func TestDistanceKmOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is about 111 km anywhere on the globe.
	got := DistanceKm(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
	if got < 110.1 || got > 112.3 {
		t.Errorf("DistanceKm over 1 degree latitude = %v, want ~111.2", got)
	}
}

func TestDistanceKmNearCampus(t *testing.T) {
	// Roughly 5 km due north of the campus anchor.
	got := DistanceKm(Point{Lat: -20.12003, Lng: 28.642}, campus)
	if got != 5.0 {
		t.Errorf("DistanceKm = %v, want 5.0", got)
	}
}

func TestWalkingMinutes(t *testing.T) {
	tests := []struct {
		distanceKm float64
		want       int
	}{
		{0, 0},
		{0.5, 6},
		{2.0, 24},
		{5.0, 60},
		{1.04, 12},
	}
	for _, tt := range tests {
		if got := WalkingMinutes(tt.distanceKm); got != tt.want {
			t.Errorf("WalkingMinutes(%v) = %d, want %d", tt.distanceKm, got, tt.want)
		}
	}
}

func TestAnnotateMissingCoordinates(t *testing.T) {
	lat := -20.12003
	lng := 28.642
	tests := []struct {
		name string
		lat  *float64
		lng  *float64
	}{
		{"both nil", nil, nil},
		{"lat nil", nil, &lng},
		{"lng nil", &lat, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, minutes := Annotate(tt.lat, tt.lng, campus)
			if distance != nil || minutes != nil {
				t.Errorf("Annotate = (%v, %v), want (nil, nil)", distance, minutes)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	lat := -20.12003
	lng := 28.642
	distance, minutes := Annotate(&lat, &lng, campus)
	if distance == nil || minutes == nil {
		t.Fatal("Annotate returned nil for a listing with coordinates")
	}
	if *distance != 5.0 {
		t.Errorf("distance = %v, want 5.0", *distance)
	}
	if *minutes != 60 {
		t.Errorf("walking minutes = %d, want 60", *minutes)
	}
}
