package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"geocache_timelapse/geo"
)

// --- Main Logic ---

// checkInputs rejects input combinations whose events would silently
// vanish: visit logs are drawn as the geocacher's trail, so a logs
// file without a geocacher produces nothing.
func checkInputs(args *Arguments) error {
	for _, path := range args.Inputs {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			if args.Geocacher == "" {
				return fmt.Errorf("%s requires -geocacher: visit logs are drawn as the geocacher's trail", path)
			}
		}
	}
	return nil
}

func main() {
	args := parseArguments()
	if len(args.Inputs) == 0 {
		fmt.Println("Usage: geocache_timelapse [flags] <active_caches.gpx> [ ... <archived_caches.gpx> ]")
		fmt.Println("Usage: geocache_timelapse [flags] <gsak_extract.csv> [ <all_logs.html> ]")
		return
	}

	if err := checkInputs(args); err != nil {
		log.Fatalf("Error: %v", err)
	}
	distance, err := distanceByName(args.DistanceMode)
	if err != nil {
		log.Fatalf("Error selecting distance measure: %v", err)
	}

	zones, err := loadZones(args.ZonesFile)
	if err != nil {
		log.Fatalf("Error loading zones: %v", err)
	}
	zone, err := findZone(zones, args.ZoneName)
	if err != nil {
		log.Fatalf("Error selecting zone: %v", err)
	}

	fonts, err := loadFonts(args)
	if err != nil {
		log.Fatalf("Error loading fonts: %v", err)
	}
	overlays, err := loadOverlays(args.LogoSpecs, args.LogoBrightness, args.LogoContrast)
	if err != nil {
		log.Fatalf("Error loading overlays: %v", err)
	}

	var polygon []geo.Point
	if args.PolygonFile != "" {
		polygon, err = loadPolygon(args.PolygonFile)
		if err != nil {
			log.Fatalf("Error loading polygon: %v", err)
		}
	}
	var frontiers [][]TrackPoint
	for _, path := range args.FrontierFiles {
		segments, err := loadGPXSegments(path)
		if err != nil {
			log.Fatalf("Error loading frontier %s: %v", path, err)
		}
		frontiers = append(frontiers, segments...)
	}

	timeline := NewTimeline()
	csvIngestor := &CSVIngestor{
		Timeline:     timeline,
		Zone:         zone,
		Polygon:      polygon,
		Excluded:     args.ExcludedIDs,
		Geocacher:    strings.ToUpper(args.Geocacher),
		FallbackDays: args.FallbackDays,
	}
	gpxIngestor := &GPXIngestor{
		Timeline: timeline,
		Zone:     zone,
		Polygon:  polygon,
		Excluded: args.ExcludedIDs,
	}
	logIngestor := &LogIngestor{Timeline: timeline}

	// With several GPX files the last one is the supplementary archive
	// export; earlier ones hold current caches.
	gpxCount := 0
	for _, path := range args.Inputs {
		if strings.EqualFold(filepath.Ext(path), ".gpx") {
			gpxCount++
		}
	}
	gpxSeen := 0
	for _, path := range args.Inputs {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".gpx":
			gpxSeen++
			status := StatusActive
			if gpxCount > 1 && gpxSeen == gpxCount {
				status = StatusArchived
			}
			err = gpxIngestor.Ingest(path, status)
		case ".csv":
			err = csvIngestor.Ingest(path)
		case ".html", ".htm":
			err = logIngestor.Ingest(path)
		default:
			log.Fatalf("Unsupported input file: %s", path)
		}
		if err != nil {
			log.Fatalf("Error processing %s: %v", path, err)
		}
	}

	pal := newPalette(args.LightBackground)
	renderer := NewRenderer(args, zone, pal, timeline, fonts, frontiers, polygon, overlays, distance)
	if err := renderer.Run(timeline); err != nil {
		log.Fatalf("Error rendering: %v", err)
	}

	fmt.Println("That's all folks!")
	fmt.Printf("Next step: mencoder \"mf://@%s\" -mf fps=24 -o Film.avi -ovc lavc -lavcopts vcodec=mpeg4\n",
		filepath.Join(args.OutputDir, args.ListFile))
}
