package geo

import (
	"math"
	"testing"
)

var cities = map[string]struct{ lat, lon float64 }{
	"paris":  {48.8566, 2.3522},
	"lyon":   {45.7640, 4.8357},
	"rennes": {48.1173, -1.6778},
	"nice":   {43.7102, 7.2620},
}

func TestVincentyIdentity(t *testing.T) {
	for name, c := range cities {
		if d := VincentyDistanceKm(c.lat, c.lon, c.lat, c.lon); d != 0 {
			t.Errorf("%s: distance to itself = %f, want exactly 0", name, d)
		}
	}
}

func TestVincentySymmetry(t *testing.T) {
	p, l := cities["paris"], cities["lyon"]
	ab := VincentyDistanceKm(p.lat, p.lon, l.lat, l.lon)
	ba := VincentyDistanceKm(l.lat, l.lon, p.lat, p.lon)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("asymmetric: %f vs %f", ab, ba)
	}
}

func TestVincentyKnownDistance(t *testing.T) {
	p, l := cities["paris"], cities["lyon"]
	d := VincentyDistanceKm(p.lat, p.lon, l.lat, l.lon)
	// Paris-Lyon is about 392 km as the crow flies.
	if d < 385 || d > 400 {
		t.Errorf("Paris-Lyon = %f km, want about 392", d)
	}
}

func TestSphericalAgreesWithVincenty(t *testing.T) {
	pairs := [][2]string{
		{"paris", "lyon"},
		{"paris", "rennes"},
		{"lyon", "nice"},
	}
	for _, pair := range pairs {
		a, b := cities[pair[0]], cities[pair[1]]
		v := VincentyDistanceKm(a.lat, a.lon, b.lat, b.lon)
		s := SphericalDistanceKm(a.lat, a.lon, b.lat, b.lon)
		if rel := math.Abs(v-s) / v; rel > 0.005 {
			t.Errorf("%s-%s: vincenty %f vs spherical %f, relative error %f", pair[0], pair[1], v, s, rel)
		}
	}
}

func TestSphericalIdentity(t *testing.T) {
	c := cities["rennes"]
	if d := SphericalDistanceKm(c.lat, c.lon, c.lat, c.lon); d != 0 {
		t.Errorf("distance to itself = %f, want 0", d)
	}
}
