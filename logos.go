package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"
)

// --- Structs ---

// Overlay is a static image pasted onto the background: a logo, a
// scanned map, a legend.
type Overlay struct {
	Image image.Image
	X, Y  int
}

// loadOverlays decodes the overlay specs ("path@x,y") into images.
// The list is returned to the caller instead of mutating any shared
// state. Missing files are fatal for the caller: the background cannot
// be composed without its resources.
func loadOverlays(specs []string, brightness, contrast float64) ([]Overlay, error) {
	var overlays []Overlay
	for _, spec := range specs {
		path := spec
		x, y := 0, 0
		if i := strings.LastIndex(spec, "@"); i >= 0 {
			path = spec[:i]
			if _, err := fmt.Sscanf(spec[i+1:], "%d,%d", &x, &y); err != nil {
				return nil, fmt.Errorf("invalid overlay position in %q", spec)
			}
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open overlay %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode overlay %s: %w", path, err)
		}
		if brightness != 0 || contrast != 1 {
			img = adjustBrightnessContrast(img, brightness, contrast)
		}
		overlays = append(overlays, Overlay{Image: img, X: x, Y: y})
	}
	return overlays, nil
}

func adjustBrightnessContrast(img image.Image, brightness, contrast float64) image.Image {
	bounds := img.Bounds()
	newImg := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()

			rNew := float64(r>>8) + brightness*255
			gNew := float64(g>>8) + brightness*255
			bNew := float64(b>>8) + brightness*255

			rNew = (rNew-128)*contrast + 128
			gNew = (gNew-128)*contrast + 128
			bNew = (bNew-128)*contrast + 128

			rNew = math.Max(0, math.Min(255, rNew))
			gNew = math.Max(0, math.Min(255, gNew))
			bNew = math.Max(0, math.Min(255, bNew))

			newImg.Set(x, y, color.RGBA{R: uint8(rNew), G: uint8(gNew), B: uint8(bNew), A: uint8(a >> 8)})
		}
	}
	return newImg
}
