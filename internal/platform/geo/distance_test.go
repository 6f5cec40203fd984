package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		a    Point
		b    Point
		want float64
		tol  float64
	}{
		{name: "same point", a: Point{Lat: -34.6037, Lng: -58.3816}, b: Point{Lat: -34.6037, Lng: -58.3816}, want: 0, tol: 0.001},
		{name: "one degree of latitude", a: Point{Lat: 0, Lng: 0}, b: Point{Lat: 1, Lng: 0}, want: 111195, tol: 5},
		{name: "madrid to barcelona", a: Point{Lat: 40.4168, Lng: -3.7038}, b: Point{Lat: 41.3874, Lng: 2.1686}, want: 505000, tol: 2000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceMeters(tc.a, tc.b)
			if math.Abs(got-tc.want) > tc.tol {
				t.Fatalf("DistanceMeters()=%.1f want %.1f±%.1f", got, tc.want, tc.tol)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	center := Point{Lat: 40.4168, Lng: -3.7038}
	near := Point{Lat: 40.4170, Lng: -3.7040}
	far := Point{Lat: 40.4268, Lng: -3.7038}

	if !Within(center, near, 100) {
		t.Fatalf("expected near point within 100m")
	}
	if Within(center, far, 100) {
		t.Fatalf("expected far point outside 100m")
	}
}

func TestPoint_Valid(t *testing.T) {
	if (Point{Lat: 91, Lng: 0}).Valid() {
		t.Fatalf("latitude 91 must be invalid")
	}
	if !(Point{Lat: -90, Lng: 180}).Valid() {
		t.Fatalf("boundaries must be valid")
	}
}
