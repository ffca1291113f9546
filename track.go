package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/fogleman/gg"

	"geocache_timelapse/geo"
)

// --- Structs ---

// trackVisit is one visited point of a track: either a cache id to be
// resolved through the timeline's coordinate index, or a literal
// position (barycentre steps).
type trackVisit struct {
	CacheID   string
	Lat, Lon  float64
	HasCoords bool
}

// Track is one geocacher's trail (or the barycentre path): visits
// grouped by day, a cursor holding the last drawn pixel position, and
// the distance accumulated along the drawn segments.
type Track struct {
	Name  string
	Color color.Color

	visits map[int64][]trackVisit

	hasCursor        bool
	cursorX, cursorY int
	lastLat, lastLon float64

	DistanceKm float64
	Visits     int
}

// distanceFunc measures the kilometers between two geographic points.
// One function is chosen per run; tracks never mix measures.
type distanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// distanceByName resolves the -distance flag value. Vincenty is the
// precise ellipsoidal measure, spherical the cheaper great-circle one.
func distanceByName(name string) (distanceFunc, error) {
	switch name {
	case "vincenty":
		return geo.VincentyDistanceKm, nil
	case "spherical":
		return geo.SphericalDistanceKm, nil
	}
	return nil, fmt.Errorf("unknown distance mode %q", name)
}

// TrackSet aggregates all tracks of a run and draws their daily
// progress onto the persistent canvas.
type TrackSet struct {
	Tracks   []*Track
	timeline *Timeline
	proj     geo.Projector
	dist     distanceFunc
}

func NewTrackSet(timeline *Timeline, proj geo.Projector, dist distanceFunc) *TrackSet {
	return &TrackSet{timeline: timeline, proj: proj, dist: dist}
}

// AddTrack registers a named track and returns its index.
func (ts *TrackSet) AddTrack(name string, c color.Color) int {
	ts.Tracks = append(ts.Tracks, &Track{
		Name:   name,
		Color:  c,
		visits: make(map[int64][]trackVisit),
	})
	return len(ts.Tracks) - 1
}

// AddVisit appends a cache visit to a track's list for the given day.
func (ts *TrackSet) AddVisit(track int, cacheID string, day int64) {
	t := ts.Tracks[track]
	t.visits[day] = append(t.visits[day], trackVisit{CacheID: cacheID})
}

// AddPoint appends a literal position to a track's list for the given
// day.
func (ts *TrackSet) AddPoint(track int, lat, lon float64, day int64) {
	t := ts.Tracks[track]
	t.visits[day] = append(t.visits[day], trackVisit{Lat: lat, Lon: lon, HasCoords: true})
}

// RenderStep draws the given day's visits for every track: a line
// segment from the previous cursor position to each visited point,
// accumulating the geodesic distance travelled. A visit whose cache id
// has no known coordinates is logged and skipped without breaking the
// rest of the track.
func (ts *TrackSet) RenderStep(dc *gg.Context, day int64) {
	for _, t := range ts.Tracks {
		for _, v := range t.visits[day] {
			lat, lon := v.Lat, v.Lon
			if !v.HasCoords {
				c, ok := ts.timeline.CoordsOf(v.CacheID)
				if !ok {
					log.Printf("!!! Pb no coordinates for visited cache %s", v.CacheID)
					continue
				}
				lat, lon = c.Lat, c.Lon
			}
			x, y := ts.proj.Project(lat, lon)
			if t.hasCursor {
				dc.SetColor(t.Color)
				dc.SetLineWidth(1)
				dc.DrawLine(float64(t.cursorX), float64(t.cursorY), float64(x), float64(y))
				dc.Stroke()
				t.DistanceKm += ts.dist(t.lastLat, t.lastLon, lat, lon)
			}
			t.cursorX, t.cursorY = x, y
			t.lastLat, t.lastLon = lat, lon
			t.hasCursor = true
			t.Visits++
		}
	}
}
