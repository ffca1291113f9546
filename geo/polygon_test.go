package geo

import "testing"

func TestPolygonContains(t *testing.T) {
	quad := []Point{{1, 1}, {5, 1}, {6, 5}, {0, 4}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centre", 3, 3, true},
		{"near left edge", 0.9, 3.5, true},
		{"right of polygon", 9, 3, false},
		{"left of polygon", -1, 3, false},
		{"above polygon", 3, 7, false},
		{"below polygon", 3, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonContains(tt.x, tt.y, quad); got != tt.want {
				t.Errorf("PolygonContains(%f, %f) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// U shape: the notch between the arms is outside
	u := []Point{{0, 0}, {6, 0}, {6, 6}, {4, 6}, {4, 2}, {2, 2}, {2, 6}, {0, 6}}
	if !PolygonContains(1, 3, u) {
		t.Error("point in left arm should be inside")
	}
	if !PolygonContains(5, 3, u) {
		t.Error("point in right arm should be inside")
	}
	if PolygonContains(3, 4, u) {
		t.Error("point in the notch should be outside")
	}
}

func TestPolygonContainsDegenerate(t *testing.T) {
	if PolygonContains(1, 1, nil) {
		t.Error("empty polygon should contain nothing")
	}
	if PolygonContains(1, 1, []Point{{0, 0}, {2, 2}}) {
		t.Error("two-point polygon should contain nothing")
	}
}

func TestPolygonBoundaryDeterministic(t *testing.T) {
	quad := []Point{{1, 1}, {5, 1}, {6, 5}, {0, 4}}
	// a point on the non-horizontal right edge: whatever the tie-break
	// decides, it must decide it the same way every time
	first := PolygonContains(5.5, 3, quad)
	for i := 0; i < 10; i++ {
		if PolygonContains(5.5, 3, quad) != first {
			t.Fatal("boundary verdict changed between calls")
		}
	}
}
