package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"geocache_timelapse/geo"
)

const secondsPerDay = 24 * 3600

// --- Fonts ---

type renderFonts struct {
	Title   font.Face
	Credits font.Face
	Counter font.Face
}

// loadFonts builds the three faces used on the canvas. The embedded Go
// fonts are the default; an unreadable override file is a fatal
// configuration error for the caller.
func loadFonts(args *Arguments) (renderFonts, error) {
	titleTTF := goregular.TTF
	if args.FontPath != "" {
		data, err := os.ReadFile(args.FontPath)
		if err != nil {
			return renderFonts{}, fmt.Errorf("failed to read font: %w", err)
		}
		titleTTF = data
	}
	counterTTF := gomono.TTF
	if args.FontPathFixed != "" {
		data, err := os.ReadFile(args.FontPathFixed)
		if err != nil {
			return renderFonts{}, fmt.Errorf("failed to read fixed font: %w", err)
		}
		counterTTF = data
	}

	titleFont, err := truetype.Parse(titleTTF)
	if err != nil {
		return renderFonts{}, fmt.Errorf("failed to parse font: %w", err)
	}
	counterFont, err := truetype.Parse(counterTTF)
	if err != nil {
		return renderFonts{}, fmt.Errorf("failed to parse fixed font: %w", err)
	}
	return renderFonts{
		Title:   truetype.NewFace(titleFont, &truetype.Options{Size: 40}),
		Credits: truetype.NewFace(titleFont, &truetype.Options{Size: 24}),
		Counter: truetype.NewFace(counterFont, &truetype.Options{Size: 32}),
	}, nil
}

// --- Renderer ---

// Renderer walks the timeline day by day and emits one frame per day.
// The canvas is persistent: each frame is the accumulated composite of
// everything drawn so far, snapshotted with the transient flash and
// text overlays on top.
type Renderer struct {
	args *Arguments
	zone Zone
	pal  Palette
	proj geo.Projector

	width, height int
	dc            *gg.Context
	fonts         renderFonts

	flash  *FlashAnimator
	tracks *TrackSet
	sink   *FrameSink

	geocacherTrack int
	baryTrack      int

	// last displayed status per cache id, for per-day deltas
	statuses map[string]Status

	nFrames   int
	nCaches   int
	nActive   int
	nInactive int

	barySumLat, barySumLon float64
	baryCount              int

	dayActivated, dayArchived, dayUnavailable int
}

func NewRenderer(args *Arguments, zone Zone, pal Palette, timeline *Timeline,
	fonts renderFonts, frontiers [][]TrackPoint, polygon []geo.Point, overlays []Overlay,
	dist distanceFunc) *Renderer {

	proj := zone.Projector()
	width, height := proj.Width(), proj.Height()
	if width < zone.MinWidth && height < zone.MinHeight {
		width, height = zone.MinWidth, zone.MinHeight
	}

	r := &Renderer{
		args:           args,
		zone:           zone,
		pal:            pal,
		proj:           proj,
		width:          width,
		height:         height,
		dc:             gg.NewContext(width, height),
		fonts:          fonts,
		flash:          NewFlashAnimator(),
		tracks:         NewTrackSet(timeline, proj, dist),
		geocacherTrack: -1,
		baryTrack:      -1,
		statuses:       make(map[string]Status),
	}
	if args.Geocacher != "" {
		r.geocacherTrack = r.tracks.AddTrack(args.Geocacher, pal.Cache[StatusTrack])
	}
	if args.Barycentre {
		r.baryTrack = r.tracks.AddTrack("barycentre", pal.Cache[StatusBarycentre])
	}

	r.drawBackground(frontiers, polygon, overlays)
	return r
}

func (r *Renderer) drawBackground(frontiers [][]TrackPoint, polygon []geo.Point, overlays []Overlay) {
	dc := r.dc
	dc.SetColor(r.pal.Background)
	dc.Clear()

	for _, o := range overlays {
		dc.DrawImage(o.Image, o.X, o.Y)
	}

	dc.SetLineWidth(1)
	dc.SetColor(r.pal.Cache[StatusFrontier])
	for _, segment := range frontiers {
		for i := 1; i < len(segment); i++ {
			x1, y1 := r.proj.Project(segment[i-1].Lat, segment[i-1].Lon)
			x2, y2 := r.proj.Project(segment[i].Lat, segment[i].Lon)
			dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
			dc.Stroke()
		}
	}

	if len(polygon) > 2 {
		dc.SetColor(r.pal.Cache[StatusPolygon])
		for i := 0; i < len(polygon); i++ {
			p1 := polygon[i]
			p2 := polygon[(i+1)%len(polygon)]
			x1, y1 := r.proj.Project(p1.Y, p1.X)
			x2, y2 := r.proj.Project(p2.Y, p2.X)
			dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
			dc.Stroke()
		}
	}

	title := r.pal.Title
	if r.args.TitleColor != nil {
		title = r.args.TitleColor
	}
	dc.SetColor(title)
	dc.SetFontFace(r.fonts.Title)
	dc.DrawString(r.zone.Title, 30, 45)
	dc.SetFontFace(r.fonts.Credits)
	for i, line := range r.zone.Credits {
		dc.DrawString(line, 35, 74+float64(i)*30)
	}
}

// Run renders the whole timeline: one frame per day from the first
// event to the last (or the configured cutoff), synthesizing no-change
// frames across silent gaps, then a trailing hold sequence, the frame
// list and the final overview images.
func (r *Renderer) Run(timeline *Timeline) error {
	times := timeline.OrderedTimestamps()
	if len(times) == 0 {
		return fmt.Errorf("timeline is empty, nothing to render")
	}

	cutoff := time.Now().Unix()
	if r.args.LastDay != "" {
		parsed := parseDate(r.args.LastDay)
		if !parsed.OK {
			return fmt.Errorf("unreadable last-day value %q", r.args.LastDay)
		}
		cutoff = parsed.Unix
	}
	if times[0] > cutoff {
		return fmt.Errorf("all events are past the cutoff date")
	}

	r.sink = NewFrameSink(r.args.OutputDir, r.args.Workers, countFrames(times, cutoff, r.args.HoldFrames))

	prev := times[0]
	for _, ts := range times {
		if ts > cutoff {
			break
		}
		// uniform frame rate across silent periods
		for t := prev + secondsPerDay; t < ts; t += secondsPerDay {
			r.emitFrame(t)
		}
		r.processBucket(timeline, ts)
		r.emitFrame(ts)
		prev = ts
	}

	// hold the final situation for a few seconds of video
	for i := 0; i < r.args.HoldFrames; i++ {
		r.emitFrame(prev)
	}
	r.sink.Close()

	if err := r.sink.WriteList(filepath.Join(r.args.OutputDir, r.args.ListFile), r.args.IntroFrames); err != nil {
		return err
	}
	if err := r.saveOverview(); err != nil {
		return err
	}

	log.Printf("Rendered %d frames", r.sink.Count())
	log.Printf("Processed %d caches", r.nCaches)
	log.Printf("Processed %d active caches", r.nActive)
	log.Printf("Processed %d inactive caches", r.nInactive)
	return nil
}

// countFrames pre-computes the exact frame count so the progress bar
// has a total before rendering starts.
func countFrames(times []int64, cutoff int64, holdFrames int) int {
	total := holdFrames
	prev := times[0]
	for _, ts := range times {
		if ts > cutoff {
			break
		}
		for t := prev + secondsPerDay; t < ts; t += secondsPerDay {
			total++
		}
		total++
		prev = ts
	}
	return total
}

func (r *Renderer) processBucket(timeline *Timeline, ts int64) {
	r.dayActivated, r.dayArchived, r.dayUnavailable = 0, 0, 0

	for _, ev := range timeline.EventsAt(ts) {
		x, y := r.proj.Project(ev.Lat, ev.Lon)

		switch ev.Status {
		case StatusActive, StatusPlaced, StatusUnavailable:
			r.nActive++
			r.flash.Register(flashActivating, x, y)
		case StatusArchived:
			r.nInactive++
			r.flash.Register(flashArchiving, x, y)
		}

		if ev.Status == StatusActive || ev.Status == StatusPlaced || ev.Status == StatusEvent {
			r.nCaches++
			r.barySumLat += ev.Lat
			r.barySumLon += ev.Lon
			r.baryCount++
		}

		if ev.Status != StatusTrack {
			if previous, known := r.statuses[ev.CacheID]; !known || previous != ev.Status {
				switch ev.Status {
				case StatusActive, StatusPlaced:
					r.dayActivated++
				case StatusArchived:
					r.dayArchived++
				case StatusUnavailable:
					r.dayUnavailable++
				}
				r.statuses[ev.CacheID] = ev.Status
			}
		}

		switch ev.Status {
		case StatusTrack:
			if r.geocacherTrack >= 0 {
				r.tracks.AddVisit(r.geocacherTrack, ev.CacheID, ts)
			}
		case StatusPlaced:
			if r.geocacherTrack >= 0 {
				r.tracks.AddVisit(r.geocacherTrack, ev.CacheID, ts)
			}
			r.drawMarker(ev, x, y)
		default:
			r.drawMarker(ev, x, y)
		}
	}

	if r.baryTrack >= 0 && r.baryCount > 0 {
		r.tracks.AddPoint(r.baryTrack,
			r.barySumLat/float64(r.baryCount),
			r.barySumLon/float64(r.baryCount), ts)
	}
	r.tracks.RenderStep(r.dc, ts)

	if r.args.Verbose {
		log.Printf("%s: +%d activated, +%d archived, +%d unavailable",
			time.Unix(ts, 0).Format("02/01/2006"),
			r.dayActivated, r.dayArchived, r.dayUnavailable)
	}
}

// drawMarker draws the persistent dot for a cache. A position outside
// the canvas is logged and skipped, never fatal.
func (r *Renderer) drawMarker(ev CacheEvent, x, y int) {
	size := 1
	if r.args.BigPixels {
		size = 2
	}
	if x < 0 || y < 0 || x+size > r.width || y+size > r.height {
		log.Printf("!!! Pb point outside the drawing area: %f %f %s %d %d", ev.Lat, ev.Lon, ev.CacheID, x, y)
		return
	}
	r.dc.SetColor(r.pal.Cache[ev.Status])
	r.dc.SetPixel(x, y)
	if r.args.BigPixels {
		r.dc.SetPixel(x+1, y)
		r.dc.SetPixel(x, y+1)
		r.dc.SetPixel(x+1, y+1)
	}
}

// emitFrame snapshots the canvas, overlays the flash animation and the
// counter line, and hands the result to the frame sink.
func (r *Renderer) emitFrame(displayTs int64) {
	src := r.dc.Image().(*image.RGBA)
	snap := image.NewRGBA(src.Bounds())
	copy(snap.Pix, src.Pix)

	r.flash.Overlay(func(class flashClass, x, y int) {
		if x < 0 || x >= r.width || y < 0 || y >= r.height {
			log.Printf("!!! Pb writing pixel %d %d %d", r.nFrames, x, y)
			return
		}
		snap.Set(x, y, r.pal.Flash[class])
	})

	text := time.Unix(displayTs, 0).Format("02/01/2006") + fmt.Sprintf(" : %5d caches", r.nCaches)
	if dist := r.trackDistance(); dist > 0 {
		text += fmt.Sprintf(" - %.0f kms", dist)
	}
	overlay := gg.NewContextForRGBA(snap)
	overlay.SetFontFace(r.fonts.Counter)
	overlay.SetColor(r.pal.Counter)
	overlay.DrawString(text, 200, float64(r.height-15))

	r.sink.Emit(snap)
	r.flash.Step()
	r.nFrames++
}

// trackDistance returns the distance travelled along the geocacher's
// trail so far, 0 when no geocacher is tracked.
func (r *Renderer) trackDistance() float64 {
	if r.geocacherTrack < 0 {
		return 0
	}
	return r.tracks.Tracks[r.geocacherTrack].DistanceKm
}

// saveOverview writes the final accumulated view of all caches.
func (r *Renderer) saveOverview() error {
	base := filepath.Join(r.args.OutputDir, "Geocaching_"+r.zone.Name)
	if err := gg.SavePNG(base+".png", r.dc.Image()); err != nil {
		return fmt.Errorf("failed to save overview PNG: %w", err)
	}
	f, err := os.Create(base + ".jpg")
	if err != nil {
		return fmt.Errorf("failed to save overview JPG: %w", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, r.dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to encode overview JPG: %w", err)
	}
	return nil
}
