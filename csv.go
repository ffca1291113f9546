package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"geocache_timelapse/geo"
)

// Number of fields in the GSAK CSV view used for exports:
// Code, Cache Type, Note, Last4Logs, Last Log, Waypoint Name, Placed By,
// Placed, Last Found, Found, Country, Lat, Lon, Status, Url,
// Found by me, Owner Id
const csvFieldCount = 17

// CSVIngestor folds GSAK CSV rows into the timeline. Filtering happens
// against the zone's bounding box, or against the selection polygon
// when one is configured.
type CSVIngestor struct {
	Timeline     *Timeline
	Zone         Zone
	Polygon      []geo.Point
	Excluded     map[string]struct{}
	Geocacher    string // uppercased, empty when no geocacher is tracked
	FallbackDays int

	rejected int
}

// Ingest reads one CSV file and records its cache events. Malformed
// rows are logged and skipped, they do not abort the rest of the file.
func (in *CSVIngestor) Ingest(path string) error {
	log.Printf("Processing %s", path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	before := in.Timeline.Added()
	in.rejected = 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, ok := splitGSAKRow(line)
		if !ok {
			log.Printf("!!! malformed row %d in %s: %d fields", lineNo, path, len(fields))
			continue
		}
		in.ingestRow(fields)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading %s: %w", path, err)
	}
	log.Printf("Added caches: %d (rejected %d)", in.Timeline.Added()-before, in.rejected)
	return nil
}

// splitGSAKRow normalizes one quoted GSAK row into its 17 fields.
// Literal pipe characters inside free-text fields are escaped first,
// then the `","` separators are collapsed to pipes and the outer
// quotes stripped.
func splitGSAKRow(line string) ([]string, bool) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.ReplaceAll(line, "|", "&#124;")
	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		line = line[1 : len(line)-1]
	}
	line = strings.ReplaceAll(line, `","`, "|")
	fields := strings.Split(line, "|")
	if len(fields) < csvFieldCount {
		return fields, false
	}
	return fields[:csvFieldCount], true
}

func (in *CSVIngestor) ingestRow(fields []string) {
	name := fields[0]
	cacheType := fields[1]
	dateLastLog := fields[4]
	placedBy := fields[6]
	datePlaced := fields[7]
	country := fields[10]
	latitude := fields[11]
	longitude := fields[12]
	rawStatus := fields[13]
	url := fields[14]
	dateFoundByMe := fields[15]

	// first line of headers in the GSAK export
	if name == "Code" || name == "Code GC" {
		return
	}
	if _, excluded := in.Excluded[name]; excluded {
		return
	}

	if in.Zone.Country != "" && country != "" && country != in.Zone.Country {
		log.Printf("!!! Pb cache outside %s: %s", in.Zone.Country, name)
		in.rejected++
		return
	}

	lat, errLat := strconv.ParseFloat(latitude, 64)
	lon, errLon := strconv.ParseFloat(longitude, 64)
	if errLat != nil || errLon != nil {
		log.Printf("!!! Pb unreadable coordinates for %s: %q %q", name, latitude, longitude)
		in.rejected++
		return
	}
	if !in.inZone(lat, lon) {
		log.Printf("!!! Pb point outside the drawing zone: %s", name)
		in.rejected++
		return
	}

	status := deriveStatus(cacheType, rawStatus)

	placed := parseDate(datePlaced)
	lastLog := parseDate(dateLastLog)
	foundByMe := parseDate(dateFoundByMe)

	if !placed.OK {
		log.Printf("!!! Pb cache %s has no usable placed date, dropped", name)
		in.rejected++
		return
	}

	if guid := extractGuid(url); guid != "" {
		in.Timeline.RegisterGuid(guid, GuidRef{CacheID: name, Lat: lat, Lon: lon})
	}

	if status == StatusEvent {
		in.record(lat, lon, name, StatusEvent, placed.Unix)
	} else {
		// a non-event cache is active for a while after being placed
		creation := StatusActive
		if in.Geocacher != "" && strings.Contains(strings.ToUpper(placedBy), in.Geocacher) {
			creation = StatusPlaced
		}
		in.record(lat, lon, name, creation, placed.Unix)

		if status != StatusActive {
			changed := lastLog
			if !changed.OK {
				changed = ParsedTime{Unix: placed.Unix + int64(in.FallbackDays)*24*3600, OK: true}
			}
			in.record(lat, lon, name, status, changed.Unix)
		}
	}

	if in.Geocacher != "" && foundByMe.OK {
		in.record(lat, lon, name, StatusTrack, foundByMe.Unix)
	}
}

func (in *CSVIngestor) inZone(lat, lon float64) bool {
	if len(in.Polygon) > 0 {
		return geo.PolygonContains(lon, lat, in.Polygon)
	}
	return in.Zone.BBox().Contains(lat, lon)
}

func (in *CSVIngestor) record(lat, lon float64, name string, status Status, ts int64) {
	if err := in.Timeline.RecordEvent(lat, lon, name, status, ts); err != nil {
		log.Fatalf("invariant violation recording %s: %v", name, err)
	}
}

// deriveStatus applies the status precedence: event type first, then
// the raw GSAK status code, Active otherwise.
func deriveStatus(cacheType, rawStatus string) Status {
	switch {
	case cacheType == "Event Cache" || cacheType == "Cache In Trash Out Event":
		return StatusEvent
	case rawStatus == "X":
		return StatusArchived
	case rawStatus == "T":
		return StatusUnavailable
	default:
		return StatusActive
	}
}

// extractGuid pulls the guid query parameter out of a cache URL.
func extractGuid(url string) string {
	i := strings.Index(url, "guid=")
	if i < 0 {
		return ""
	}
	guid := url[i+len("guid="):]
	if j := strings.IndexAny(guid, "&\"' "); j >= 0 {
		guid = guid[:j]
	}
	return guid
}
