package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"

	"geocache_timelapse/geo"
)

// --- Structs ---

// TrackPoint is one geographic point of a frontier or polygon track.
type TrackPoint struct {
	Lat, Lon float64
}

// GPXIngestor folds GPX waypoint files into the timeline. A pocket
// query of current caches is loaded with StatusActive as the default;
// a supplementary archive file with StatusArchived.
type GPXIngestor struct {
	Timeline *Timeline
	Zone     Zone
	Polygon  []geo.Point
	Excluded map[string]struct{}

	// cache ids already recorded as active, to avoid reactivating a
	// cache listed in several files
	activated map[string]struct{}
}

// Ingest parses one GPX file and records an event per cache waypoint.
func (in *GPXIngestor) Ingest(path string, defaultStatus Status) error {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse GPX file: %w", err)
	}
	if in.activated == nil {
		in.activated = make(map[string]struct{})
	}

	log.Printf("Processing %s: %d waypoints", path, len(g.Waypoints))
	before := in.Timeline.Added()

	for _, w := range g.Waypoints {
		id := w.Name
		if !isCacheID(id) {
			continue
		}
		if _, excluded := in.Excluded[id]; excluded {
			continue
		}
		lat, lon := w.Latitude, w.Longitude
		if !in.inZone(lat, lon) {
			log.Printf("!!! Pb point outside the drawing area: %s %f %f", id, lat, lon)
			continue
		}

		status := defaultStatus
		if isEventType(w.Type) {
			status = StatusEvent
		}
		if status == StatusActive {
			if _, seen := in.activated[id]; seen {
				// already active from an earlier file
				continue
			}
			in.activated[id] = struct{}{}
		}

		if w.Timestamp.IsZero() {
			log.Printf("!!! Pb cache %s has no time attribute, dropped", id)
			continue
		}
		if err := in.Timeline.RecordEvent(lat, lon, id, status, w.Timestamp.Unix()); err != nil {
			log.Fatalf("invariant violation recording %s: %v", id, err)
		}
	}
	log.Printf("Added caches: %d", in.Timeline.Added()-before)
	return nil
}

func (in *GPXIngestor) inZone(lat, lon float64) bool {
	if len(in.Polygon) > 0 {
		return geo.PolygonContains(lon, lat, in.Polygon)
	}
	return in.Zone.BBox().Contains(lat, lon)
}

// isCacheID reports whether a waypoint name follows the cache id
// convention of a two-letter prefix (GC for geocaching.com).
func isCacheID(id string) bool {
	return len(id) > 2 && strings.HasPrefix(id, "GC")
}

func isEventType(typ string) bool {
	return typ == "Geocache|Event Cache" || typ == "Geocache|Cache In Trash Out Event" ||
		strings.Contains(typ, "Event Cache")
}

// --- Track-mode GPX files ---

// loadGPXSegments returns the track segments of a GPX file as ordered
// point lists. Used for frontiers and coastlines drawn on the static
// background.
func loadGPXSegments(path string) ([][]TrackPoint, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX file: %w", err)
	}
	var segments [][]TrackPoint
	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			if len(segment.Points) == 0 {
				continue
			}
			points := make([]TrackPoint, 0, len(segment.Points))
			for _, p := range segment.Points {
				points = append(points, TrackPoint{Lat: p.Latitude, Lon: p.Longitude})
			}
			segments = append(segments, points)
		}
	}
	return segments, nil
}

// loadPolygon reads the selection polygon from a GPX track file. All
// segments are concatenated; the polygon is implicitly closed.
func loadPolygon(path string) ([]geo.Point, error) {
	segments, err := loadGPXSegments(path)
	if err != nil {
		return nil, err
	}
	var polygon []geo.Point
	for _, segment := range segments {
		for _, p := range segment {
			polygon = append(polygon, geo.Point{X: p.Lon, Y: p.Lat})
		}
	}
	if len(polygon) < 3 {
		return nil, fmt.Errorf("polygon file %s has %d points, need at least 3", path, len(polygon))
	}
	return polygon, nil
}
