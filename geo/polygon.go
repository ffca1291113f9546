package geo

import "math"

// Point is a 2D point for polygon tests. For geographic polygons the
// convention is X = longitude, Y = latitude.
type Point struct {
	X, Y float64
}

// PolygonContains reports whether (x, y) is inside the polygon using
// ray casting. The vertex list is treated as closed: the edge from the
// last vertex back to the first is implied. Horizontal edges never
// enter the intersection computation, so the division below cannot be
// by zero. Points exactly on an edge follow the ray-casting tie-break
// and are deterministic, but no particular convention is promised.
func PolygonContains(x, y float64, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		if y > math.Min(p1.Y, p2.Y) && y <= math.Max(p1.Y, p2.Y) && x <= math.Max(p1.X, p2.X) {
			if p1.Y != p2.Y {
				xIntersect := (y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
				if p1.X == p2.X || x <= xIntersect {
					inside = !inside
				}
			}
		}
		p1 = p2
	}
	return inside
}
