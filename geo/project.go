package geo

import "math"

// Margins added around the configured bounding box so points sitting
// right on the box edge still land inside the canvas.
const (
	PadWest = 0.05
	PadEast = 0.15
	PadLat  = 0.1
)

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether (lat, lon) is inside the box.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Projector maps (lat, lon) to pixel coordinates with a linear
// equirectangular-like scale. It never fails: callers are expected to
// bounds-check the result against their canvas before drawing.
type Projector struct {
	WestLon  float64 // MinLon - PadWest
	EastLon  float64 // MaxLon + PadEast
	SouthLat float64 // MinLat - PadLat
	NorthLat float64 // MaxLat + PadLat
	ScaleX   float64
	ScaleY   float64
	OffsetX  int
	OffsetY  int
}

func NewProjector(b BBox, scaleX, scaleY float64, offsetX, offsetY int) Projector {
	return Projector{
		WestLon:  b.MinLon - PadWest,
		EastLon:  b.MaxLon + PadEast,
		SouthLat: b.MinLat - PadLat,
		NorthLat: b.MaxLat + PadLat,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
		OffsetX:  offsetX,
		OffsetY:  offsetY,
	}
}

// Project converts a geographic position to pixel coordinates.
func (p Projector) Project(lat, lon float64) (int, int) {
	x := p.OffsetX + int(math.Round(p.ScaleX*(lon-p.WestLon)))
	y := p.OffsetY + int(math.Round(p.ScaleY*(p.NorthLat-lat)))
	return x, y
}

// Width returns the pixel width spanned by the padded bounding box.
func (p Projector) Width() int {
	return int((p.EastLon - p.WestLon) * p.ScaleX)
}

// Height returns the pixel height spanned by the padded bounding box.
func (p Projector) Height() int {
	return int((p.NorthLat - p.SouthLat) * p.ScaleY)
}
