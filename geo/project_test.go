package geo

import "testing"

// metropolitan France box, as the animation uses it
var franceBox = BBox{MinLat: 41.33333, MaxLat: 51.08917, MinLon: -5.15083, MaxLon: 9.56}

func TestProjectCornersInsideCanvas(t *testing.T) {
	p := NewProjector(franceBox, 75, 107, 0, 0)
	w, h := p.Width(), p.Height()
	if w <= 0 || h <= 0 {
		t.Fatalf("degenerate canvas %dx%d", w, h)
	}

	corners := [][2]float64{
		{franceBox.MinLat, franceBox.MinLon},
		{franceBox.MinLat, franceBox.MaxLon},
		{franceBox.MaxLat, franceBox.MinLon},
		{franceBox.MaxLat, franceBox.MaxLon},
	}
	for _, c := range corners {
		x, y := p.Project(c[0], c[1])
		if x < 0 || x >= w || y < 0 || y >= h {
			t.Errorf("corner (%f, %f) projects to (%d, %d), outside %dx%d", c[0], c[1], x, y, w, h)
		}
	}
}

func TestProjectIsAffine(t *testing.T) {
	p := NewProjector(franceBox, 75, 107, 0, 0)

	// steps chosen so scale*step is integral, keeping rounding exact
	const lonStep = 0.2 // 15 px at scale 75
	const latStep = 1.0 // 107 px at scale 107

	x0, y0 := p.Project(45, 2)
	x1, y1 := p.Project(45, 2+lonStep)
	x2, y2 := p.Project(45, 2+2*lonStep)
	if x1-x0 != x2-x1 {
		t.Errorf("longitude steps not linear: %d, %d", x1-x0, x2-x1)
	}
	if y0 != y1 || y1 != y2 {
		t.Errorf("longitude change moved y: %d %d %d", y0, y1, y2)
	}

	_, ya := p.Project(45, 2)
	_, yb := p.Project(45+latStep, 2)
	_, yc := p.Project(45+2*latStep, 2)
	if ya-yb != yb-yc {
		t.Errorf("latitude steps not linear: %d, %d", ya-yb, yb-yc)
	}
	if yb >= ya {
		t.Errorf("higher latitude should project to a smaller y: %d >= %d", yb, ya)
	}
}

func TestProjectOffset(t *testing.T) {
	base := NewProjector(franceBox, 75, 107, 0, 0)
	shifted := NewProjector(franceBox, 75, 107, 10, 20)
	x0, y0 := base.Project(45, 2)
	x1, y1 := shifted.Project(45, 2)
	if x1-x0 != 10 || y1-y0 != 20 {
		t.Errorf("offset not applied: got (%d, %d), want (+10, +20)", x1-x0, y1-y0)
	}
}
