package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// Log types that count as a visit for the geocacher's trail.
var logVisitTypes = []string{
	"Found it",
	"Didn't find it",
	"Attended",
	"Owner Maintenance",
}

var logDatePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// LogIngestor scans an "all logs" HTML export. The file is not parsed
// as a DOM: each table row is scanned in sequence for a known log
// type, a date and a guid reference, which is resolved to a cache
// through the guid index built during CSV ingestion.
type LogIngestor struct {
	Timeline *Timeline
}

func (in *LogIngestor) Ingest(path string) error {
	log.Printf("Processing %s", path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read logs file: %w", err)
	}

	before := in.Timeline.Added()
	rows := strings.Split(string(content), "<tr")
	for _, row := range rows {
		logType := ""
		for _, t := range logVisitTypes {
			if strings.Contains(row, ">"+t+"<") {
				logType = t
				break
			}
		}
		if logType == "" {
			continue
		}

		guid := extractGuid(row)
		if guid == "" {
			continue
		}
		ref, ok := in.Timeline.GuidLookup(guid)
		if !ok {
			log.Printf("!!! Pb log guid %s has no matching cache, skipped", guid)
			continue
		}

		when := parseDate(logDatePattern.FindString(row))
		if !when.OK {
			log.Printf("!!! Pb log for %s has no usable date, skipped", ref.CacheID)
			continue
		}

		if err := in.Timeline.RecordEvent(ref.Lat, ref.Lon, ref.CacheID, StatusTrack, when.Unix); err != nil {
			log.Fatalf("invariant violation recording log for %s: %v", ref.CacheID, err)
		}
	}
	log.Printf("Added visits: %d", in.Timeline.Added()-before)
	return nil
}
