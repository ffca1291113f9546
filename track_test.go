package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/fogleman/gg"

	"geocache_timelapse/geo"
)

func newTestTrackSet() (*TrackSet, *Timeline, *gg.Context) {
	tl := NewTimeline()
	proj := defaultZones[0].Projector()
	dc := gg.NewContext(proj.Width(), proj.Height())
	return NewTrackSet(tl, proj, geo.VincentyDistanceKm), tl, dc
}

func TestTrackDistanceAccumulation(t *testing.T) {
	ts, tl, dc := newTestTrackSet()
	id := ts.AddTrack("alice", color.RGBA{255, 0, 255, 255})

	// Paris then Lyon, one day apart
	if err := tl.RecordEvent(48.8566, 2.3522, "GC1", StatusActive, 1000); err != nil {
		t.Fatal(err)
	}
	if err := tl.RecordEvent(45.7640, 4.8357, "GC2", StatusActive, 1000); err != nil {
		t.Fatal(err)
	}
	ts.AddVisit(id, "GC1", 1000)
	ts.RenderStep(dc, 1000)
	if d := ts.Tracks[id].DistanceKm; d != 0 {
		t.Errorf("distance after first visit = %f, want 0", d)
	}

	ts.AddVisit(id, "GC2", 2000)
	ts.RenderStep(dc, 2000)
	want := geo.VincentyDistanceKm(48.8566, 2.3522, 45.7640, 4.8357)
	if d := ts.Tracks[id].DistanceKm; math.Abs(d-want) > 1e-9 {
		t.Errorf("distance = %f, want %f", d, want)
	}
	if ts.Tracks[id].Visits != 2 {
		t.Errorf("visits = %d, want 2", ts.Tracks[id].Visits)
	}
}

func TestTrackUnknownCacheSkipped(t *testing.T) {
	ts, tl, dc := newTestTrackSet()
	id := ts.AddTrack("alice", color.RGBA{255, 0, 255, 255})
	if err := tl.RecordEvent(48.0, 2.0, "GC1", StatusActive, 1000); err != nil {
		t.Fatal(err)
	}
	ts.AddVisit(id, "GC1", 1000)
	ts.AddVisit(id, "GC-missing", 1000)
	ts.AddVisit(id, "GC1", 1000)
	ts.RenderStep(dc, 1000)

	if ts.Tracks[id].Visits != 2 {
		t.Errorf("visits = %d, want the 2 resolvable ones", ts.Tracks[id].Visits)
	}
	if ts.Tracks[id].DistanceKm != 0 {
		t.Errorf("revisiting the same cache should add no distance, got %f", ts.Tracks[id].DistanceKm)
	}
}

func TestTrackLiteralPoints(t *testing.T) {
	ts, _, dc := newTestTrackSet()
	id := ts.AddTrack("barycentre", color.RGBA{255, 255, 255, 255})
	ts.AddPoint(id, 47.0, 1.0, 1000)
	ts.AddPoint(id, 47.5, 1.5, 2000)
	ts.RenderStep(dc, 1000)
	ts.RenderStep(dc, 2000)

	want := geo.VincentyDistanceKm(47.0, 1.0, 47.5, 1.5)
	if d := ts.Tracks[id].DistanceKm; math.Abs(d-want) > 1e-9 {
		t.Errorf("distance = %f, want %f", d, want)
	}
}

func TestDistanceByName(t *testing.T) {
	if _, err := distanceByName("vincenty"); err != nil {
		t.Errorf("vincenty: %v", err)
	}
	if _, err := distanceByName("spherical"); err != nil {
		t.Errorf("spherical: %v", err)
	}
	if _, err := distanceByName("taxicab"); err == nil {
		t.Error("expected an error for an unknown measure")
	}
}

func TestTrackSphericalDistance(t *testing.T) {
	tl := NewTimeline()
	proj := defaultZones[0].Projector()
	dc := gg.NewContext(proj.Width(), proj.Height())
	ts := NewTrackSet(tl, proj, geo.SphericalDistanceKm)
	id := ts.AddTrack("alice", color.RGBA{255, 0, 255, 255})

	ts.AddPoint(id, 48.8566, 2.3522, 1000)
	ts.AddPoint(id, 45.7640, 4.8357, 2000)
	ts.RenderStep(dc, 1000)
	ts.RenderStep(dc, 2000)

	want := geo.SphericalDistanceKm(48.8566, 2.3522, 45.7640, 4.8357)
	if d := ts.Tracks[id].DistanceKm; math.Abs(d-want) > 1e-9 {
		t.Errorf("distance = %f, want the spherical measure %f", d, want)
	}
}

func TestTracksAreIndependent(t *testing.T) {
	ts, _, dc := newTestTrackSet()
	a := ts.AddTrack("a", color.RGBA{255, 0, 0, 255})
	b := ts.AddTrack("b", color.RGBA{0, 255, 0, 255})
	ts.AddPoint(a, 47.0, 1.0, 1000)
	ts.AddPoint(a, 48.0, 2.0, 1000)
	ts.RenderStep(dc, 1000)

	if ts.Tracks[a].DistanceKm == 0 {
		t.Error("track a accumulated no distance")
	}
	if ts.Tracks[b].DistanceKm != 0 || ts.Tracks[b].Visits != 0 {
		t.Error("track b moved without any visits")
	}
}
