package main

import (
	"os"
	"path/filepath"
	"testing"
)

const zonesYAML = `zones:
  - name: france
    title: Caches de France
    country: France
    minLat: 41.0
    maxLat: 51.5
    minLon: -5.5
    maxLon: 10.0
    scaleX: 75
    scaleY: 107
    minWidth: 1120
    minHeight: 1080
  - name: alsace
    title: Géocaches en Alsace
    minLat: 47.4
    maxLat: 49.1
    minLon: 6.8
    maxLon: 8.3
    scaleX: 400
    scaleY: 560
    credits:
      - carte IGN
`

func TestLoadZonesBuiltins(t *testing.T) {
	zones, err := loadZones("")
	if err != nil {
		t.Fatal(err)
	}
	z, err := findZone(zones, "france")
	if err != nil {
		t.Fatal(err)
	}
	if z.Country != "France" || z.MinWidth != 1120 {
		t.Errorf("unexpected built-in france zone: %+v", z)
	}
}

func TestLoadZonesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	if err := os.WriteFile(path, []byte(zonesYAML), 0644); err != nil {
		t.Fatal(err)
	}
	zones, err := loadZones(path)
	if err != nil {
		t.Fatal(err)
	}

	france, err := findZone(zones, "france")
	if err != nil {
		t.Fatal(err)
	}
	if france.Title != "Caches de France" || france.MaxLat != 51.5 {
		t.Errorf("file entry did not replace the built-in: %+v", france)
	}

	alsace, err := findZone(zones, "alsace")
	if err != nil {
		t.Fatal(err)
	}
	if alsace.Country != "" {
		t.Errorf("alsace should be a synthetic zone, got country %q", alsace.Country)
	}
	if len(alsace.Credits) != 1 || alsace.Credits[0] != "carte IGN" {
		t.Errorf("credits = %v", alsace.Credits)
	}
	if _, err := findZone(zones, "bretagne"); err != nil {
		t.Error("built-in bretagne zone lost during merge")
	}
}

func TestFindZoneUnknown(t *testing.T) {
	if _, err := findZone(defaultZones, "atlantis"); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}

func TestLoadZonesBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	if err := os.WriteFile(path, []byte("zones: [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadZones(path); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := loadZones(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected a read error")
	}
}

func TestPaletteCoversStatuses(t *testing.T) {
	for _, light := range []bool{false, true} {
		pal := newPalette(light)
		for s := StatusArchived; s <= StatusBarycentre; s++ {
			if _, ok := pal.Cache[s]; !ok {
				t.Errorf("light=%v: no color for status %v", light, s)
			}
		}
		if pal.Flash[flashArchiving] == nil || pal.Flash[flashActivating] == nil {
			t.Errorf("light=%v: flash colors incomplete", light)
		}
	}
}
