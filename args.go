package main

import (
	"flag"
	"fmt"
	"image/color"
	"runtime"
	"strings"
)

// --- Structs ---

type Arguments struct {
	ZoneName        string
	ZonesFile       string
	Geocacher       string
	LightBackground bool
	BigPixels       bool
	Barycentre      bool
	ExcludedIDs     map[string]struct{}
	LastDay         string
	OutputDir       string
	ListFile        string
	HoldFrames      int
	IntroFrames     int
	FallbackDays    int
	DistanceMode    string
	FontPath        string
	FontPathFixed   string
	Workers         int
	Verbose         bool
	FrontierFiles   []string
	PolygonFile     string
	LogoSpecs       []string
	LogoBrightness  float64
	LogoContrast    float64
	TitleColor      color.Color
	Inputs          []string
}

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(s string) error { *m = append(*m, s); return nil }

// --- Argument Parsing ---

func parseArguments() *Arguments {
	args := &Arguments{}
	var excludeList, titleColorStr string
	var frontiers, logos multiFlag

	flag.StringVar(&args.ZoneName, "zone", "france", "Name of the geographic zone to render.")
	flag.StringVar(&args.ZonesFile, "zones", "", "Optional YAML file with additional zone definitions.")
	flag.StringVar(&args.Geocacher, "geocacher", "", "Geocacher whose visits and placed caches are highlighted.")
	flag.BoolVar(&args.LightBackground, "light", false, "Render on a white background instead of black.")
	flag.BoolVar(&args.BigPixels, "big-pixels", true, "Draw 2x2 cache markers instead of single pixels.")
	flag.BoolVar(&args.Barycentre, "barycentre", false, "Draw the moving barycentre of all placed caches.")
	flag.StringVar(&excludeList, "exclude", "", "Comma-separated cache ids to ignore.")
	flag.StringVar(&args.LastDay, "last-day", "", "Do not render events past this date (DD/MM/YYYY). Default today.")
	flag.StringVar(&args.OutputDir, "o", ".", "Directory receiving the generated frames.")
	flag.StringVar(&args.ListFile, "frame-list", "listPNG.txt", "Frame list file consumed by the video encoder.")
	flag.IntVar(&args.HoldFrames, "hold-frames", 100, "Number of times the final frame is repeated.")
	flag.IntVar(&args.IntroFrames, "intro-frames", 24, "Number of times the first frame is repeated in the frame list.")
	flag.IntVar(&args.FallbackDays, "status-fallback-days", 20, "Days after placement assumed for a status change with no log date.")
	flag.StringVar(&args.DistanceMode, "distance", "vincenty", "Geodesic measure for track lengths: vincenty or spherical.")
	flag.StringVar(&args.FontPath, "font", "", "TTF font for titles (default embedded Go Regular).")
	flag.StringVar(&args.FontPathFixed, "font-fixed", "", "Fixed-width TTF font for the counter line (default embedded Go Mono).")
	flag.IntVar(&args.Workers, "workers", runtime.NumCPU(), "Number of parallel workers for frame encoding.")
	flag.BoolVar(&args.Verbose, "v", false, "Log per-day status transition counts.")
	flag.Var(&frontiers, "frontier", "GPX file with frontier/coastline tracks (repeatable).")
	flag.StringVar(&args.PolygonFile, "polygon", "", "GPX file whose first track is the selection polygon.")
	flag.Var(&logos, "logo", "Overlay image as path@x,y (repeatable).")
	flag.Float64Var(&args.LogoBrightness, "logo-brightness", 0, "Brightness adjustment for overlay images (-1..1).")
	flag.Float64Var(&args.LogoContrast, "logo-contrast", 1, "Contrast adjustment for overlay images.")
	flag.StringVar(&titleColorStr, "title-color", "", "Override title color (hex). Default follows the palette.")
	flag.Parse()

	args.FrontierFiles = frontiers
	args.LogoSpecs = logos
	args.Inputs = flag.Args()

	args.ExcludedIDs = make(map[string]struct{})
	for _, id := range strings.Split(excludeList, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			args.ExcludedIDs[id] = struct{}{}
		}
	}

	if titleColorStr != "" {
		args.TitleColor, _ = parseHexColor(titleColorStr)
	}

	return args
}

func parseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return color.Black, err
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
