package main

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"geocache_timelapse/geo"
)

// --- Zones ---

// Zone is the immutable geographic configuration for one run: the
// bounding box of the drawn region, the pixel scale that fits it into
// the output video, and the texts drawn on the background. Country is
// empty for synthetic sub-regions, which disables the country check on
// CSV rows.
type Zone struct {
	Name      string  `yaml:"name"`
	Title     string  `yaml:"title"`
	Country   string  `yaml:"country"`
	MinLat    float64 `yaml:"minLat"`
	MaxLat    float64 `yaml:"maxLat"`
	MinLon    float64 `yaml:"minLon"`
	MaxLon    float64 `yaml:"maxLon"`
	ScaleX    float64 `yaml:"scaleX"`
	ScaleY    float64 `yaml:"scaleY"`
	OffsetX   int     `yaml:"offsetX"`
	OffsetY   int     `yaml:"offsetY"`
	MinWidth  int     `yaml:"minWidth"`
	MinHeight int     `yaml:"minHeight"`
	Credits   []string `yaml:"credits"`
}

func (z Zone) BBox() geo.BBox {
	return geo.BBox{MinLat: z.MinLat, MaxLat: z.MaxLat, MinLon: z.MinLon, MaxLon: z.MaxLon}
}

func (z Zone) Projector() geo.Projector {
	return geo.NewProjector(z.BBox(), z.ScaleX, z.ScaleY, z.OffsetX, z.OffsetY)
}

// Built-in zones. Scale factors are tuned so the metropolitan France
// box fills a 1120x1080 canvas without distorting the map.
var defaultZones = []Zone{
	{
		Name:    "france",
		Title:   "Géocaches en France",
		Country: "France",
		MinLat:  41.33333, // cap di u Beccu, Lavezzi islands
		MaxLat:  51.08917, // Perroquet dunes, Bray-Dunes
		MinLon:  -5.15083, // Nividic lighthouse, Ouessant
		MaxLon:  9.56,     // Fiorentine beach, Alistro
		ScaleX:  75, ScaleY: 107,
		MinWidth: 1120, MinHeight: 1080,
	},
	{
		Name:   "bretagne",
		Title:  "Géocaches en Bretagne",
		MinLat: 47.27, MaxLat: 48.9,
		MinLon: -5.15, MaxLon: -0.98,
		ScaleX: 250, ScaleY: 360,
		MinWidth: 1120, MinHeight: 720,
	},
}

// loadZones merges zones from a YAML file over the built-in set.
// Entries with a name already present replace the built-in one.
func loadZones(path string) ([]Zone, error) {
	zones := append([]Zone(nil), defaultZones...)
	if path == "" {
		return zones, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zones file: %w", err)
	}
	var fromFile struct {
		Zones []Zone `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse zones file: %w", err)
	}
	for _, z := range fromFile.Zones {
		replaced := false
		for i := range zones {
			if zones[i].Name == z.Name {
				zones[i] = z
				replaced = true
				break
			}
		}
		if !replaced {
			zones = append(zones, z)
		}
	}
	return zones, nil
}

func findZone(zones []Zone, name string) (Zone, error) {
	for _, z := range zones {
		if z.Name == name {
			return z, nil
		}
	}
	return Zone{}, fmt.Errorf("unknown zone %q", name)
}

// --- Palette ---

type flashClass int

const (
	flashArchiving flashClass = iota
	flashActivating
)

// Palette bundles every color the renderer uses. The choice of canvas
// background flips the whole set so markers stay readable.
type Palette struct {
	Background color.Color
	Title      color.Color
	Counter    color.Color
	Cache      map[Status]color.Color
	Flash      map[flashClass]color.Color
}

func newPalette(lightBackground bool) Palette {
	if lightBackground {
		return Palette{
			Background: color.RGBA{255, 255, 255, 255},
			Title:      color.RGBA{200, 0, 0, 255},
			Counter:    color.RGBA{0, 0, 180, 255},
			Cache: map[Status]color.Color{
				StatusArchived:    color.RGBA{200, 0, 0, 255},
				StatusActive:      color.RGBA{0, 90, 200, 255},
				StatusUnavailable: color.RGBA{230, 120, 0, 255},
				StatusEvent:       color.RGBA{0, 150, 0, 255},
				StatusTrack:       color.RGBA{150, 0, 150, 255},
				StatusPlaced:      color.RGBA{0, 90, 200, 255},
				StatusFrontier:    color.RGBA{120, 120, 120, 255},
				StatusPolygon:     color.RGBA{180, 180, 180, 255},
				StatusBarycentre:  color.RGBA{0, 0, 0, 255},
			},
			Flash: map[flashClass]color.Color{
				flashArchiving:  color.RGBA{150, 0, 150, 255},
				flashActivating: color.RGBA{200, 160, 0, 255},
			},
		}
	}
	return Palette{
		Background: color.RGBA{0, 0, 0, 255},
		Title:      color.RGBA{255, 0, 0, 255},
		Counter:    color.RGBA{0, 0, 255, 255},
		Cache: map[Status]color.Color{
			StatusArchived:    color.RGBA{255, 0, 0, 255},
			StatusActive:      color.RGBA{0, 255, 255, 255},
			StatusUnavailable: color.RGBA{255, 102, 0, 255},
			StatusEvent:       color.RGBA{0, 255, 0, 255},
			StatusTrack:       color.RGBA{255, 0, 255, 255},
			StatusPlaced:      color.RGBA{0, 255, 255, 255},
			StatusFrontier:    color.RGBA{128, 128, 128, 255},
			StatusPolygon:     color.RGBA{80, 80, 80, 255},
			StatusBarycentre:  color.RGBA{255, 255, 255, 255},
		},
		Flash: map[flashClass]color.Color{
			flashArchiving:  color.RGBA{255, 0, 255, 255}, // purple for archiving
			flashActivating: color.RGBA{255, 255, 0, 255}, // yellow for activation
		},
	}
}
