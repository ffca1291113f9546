package main

import (
	"errors"
	"sort"
)

// --- Statuses ---

type Status int

const (
	StatusArchived Status = iota
	StatusActive
	StatusUnavailable
	StatusEvent
	StatusTrack
	StatusFrontier
	StatusPlaced
	StatusPolygon
	StatusBarycentre
)

var statusNames = map[Status]string{
	StatusArchived:    "archived",
	StatusActive:      "active",
	StatusUnavailable: "unavailable",
	StatusEvent:       "event",
	StatusTrack:       "track",
	StatusFrontier:    "frontier",
	StatusPlaced:      "placed",
	StatusPolygon:     "polygon",
	StatusBarycentre:  "barycentre",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// --- Events ---

// CacheEvent is one state change of one cache at one point in time.
// Track and Placed events describe a geocacher's trail rather than the
// cache's own lifecycle but share the same timeline.
type CacheEvent struct {
	Lat     float64
	Lon     float64
	CacheID string
	Status  Status
}

// Coords is a cache's last known position.
type Coords struct {
	Lat, Lon float64
}

// GuidRef links a log guid back to a cache and its position.
type GuidRef struct {
	CacheID  string
	Lat, Lon float64
}

var errNoTimestamp = errors.New("event has no timestamp")

// Timeline maps event timestamps (seconds since epoch, day-aligned for
// CSV input) to the ordered list of events at that instant. It is the
// sole authority for event ordering; buckets keep newest insertion
// first so recently added items win during flash rendering.
type Timeline struct {
	buckets map[int64][]CacheEvent
	coords  map[string]Coords
	guids   map[string]GuidRef
	added   int
}

func NewTimeline() *Timeline {
	return &Timeline{
		buckets: make(map[int64][]CacheEvent),
		coords:  make(map[string]Coords),
		guids:   make(map[string]GuidRef),
	}
}

// RecordEvent inserts an event into the bucket at ts, deduplicating on
// the full (lat, lon, id, status) tuple. A zero timestamp is an
// invariant violation: ingestors must drop dateless records before
// they reach the timeline.
func (t *Timeline) RecordEvent(lat, lon float64, cacheID string, status Status, ts int64) error {
	if ts == 0 {
		return errNoTimestamp
	}
	t.coords[cacheID] = Coords{Lat: lat, Lon: lon}

	ev := CacheEvent{Lat: lat, Lon: lon, CacheID: cacheID, Status: status}
	bucket := t.buckets[ts]
	for _, existing := range bucket {
		if existing == ev {
			return nil
		}
	}
	t.buckets[ts] = append([]CacheEvent{ev}, bucket...)
	t.added++
	return nil
}

// OrderedTimestamps returns all bucket keys in ascending order. The
// slice is rebuilt on every call so it reflects later insertions.
func (t *Timeline) OrderedTimestamps() []int64 {
	keys := make([]int64, 0, len(t.buckets))
	for ts := range t.buckets {
		keys = append(keys, ts)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EventsAt returns the bucket for ts, newest insertion first.
func (t *Timeline) EventsAt(ts int64) []CacheEvent {
	return t.buckets[ts]
}

// CoordsOf resolves a cache id to its last recorded position.
func (t *Timeline) CoordsOf(cacheID string) (Coords, bool) {
	c, ok := t.coords[cacheID]
	return c, ok
}

// RegisterGuid remembers the cache behind a log guid.
func (t *Timeline) RegisterGuid(guid string, ref GuidRef) {
	t.guids[guid] = ref
}

// GuidLookup resolves a log guid to its cache.
func (t *Timeline) GuidLookup(guid string) (GuidRef, bool) {
	ref, ok := t.guids[guid]
	return ref, ok
}

// Added returns the number of events inserted so far, duplicates
// excluded. Exposed for the per-file ingestion diagnostics.
func (t *Timeline) Added() int {
	return t.added
}
