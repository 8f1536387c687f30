package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance_SamePoint(t *testing.T) {
	got := CalculateHaversineDistance(-6.2088, 106.8456, -6.2088, 106.8456)
	if got != 0 {
		t.Errorf("distance between identical points = %v, want 0", got)
	}
}

func TestCalculateHaversineDistance_OneDegreeOnEquator(t *testing.T) {
	// One degree of arc on a 6,371,000 m sphere is ~111,194.9 m.
	want := 6371000 * math.Pi / 180

	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"longitude", 0, 0, 0, 1},
		{"latitude", 0, 0, 1, 0},
	}
	for _, c := range cases {
		got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-want) > 1 {
			t.Errorf("%s: distance = %v, want ~%v", c.name, got, want)
		}
	}
}

func TestCalculateHaversineDistance_Symmetric(t *testing.T) {
	d1 := CalculateHaversineDistance(-6.2088, 106.8456, -6.9175, 107.6191)
	d2 := CalculateHaversineDistance(-6.9175, 107.6191, -6.2088, 106.8456)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
	// Jakarta to Bandung is roughly 118 km as the crow flies.
	if d1 < 100000 || d1 > 140000 {
		t.Errorf("Jakarta-Bandung distance = %v, want ~118km", d1)
	}
}

func TestWithinRadius(t *testing.T) {
	branchLat, branchLon := -6.2088, 106.8456

	if !WithinRadius(branchLat, branchLon, branchLat, branchLon, 1500) {
		t.Error("point at the branch itself should be within radius")
	}

	// A point ~1.1km north is inside the 1500m fence.
	if !WithinRadius(branchLat+0.01, branchLon, branchLat, branchLon, 1500) {
		t.Error("point ~1.1km away should be within 1500m radius")
	}

	// A point ~2.2km north is outside.
	if WithinRadius(branchLat+0.02, branchLon, branchLat, branchLon, 1500) {
		t.Error("point ~2.2km away should be outside 1500m radius")
	}
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	branchLat, branchLon := -6.2088, 106.8456
	lat, lon := branchLat+0.005, branchLon

	d := CalculateHaversineDistance(lat, lon, branchLat, branchLon)
	if !WithinRadius(lat, lon, branchLat, branchLon, d) {
		t.Error("point exactly at the radius boundary should be accepted")
	}
}
