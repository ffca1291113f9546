package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// --- Structs ---

type frameJob struct {
	Index int
	Image *image.RGBA
}

// FrameSink receives the renderer's per-day snapshots in order and
// fans the PNG encoding out to a worker pool. Frame files are named by
// their sequential index, so write order does not matter.
type FrameSink struct {
	dir   string
	jobs  chan frameJob
	wg    sync.WaitGroup
	bar   *progressbar.ProgressBar
	next  int
	names []string
}

func NewFrameSink(dir string, workers, totalFrames int) *FrameSink {
	if workers < 1 {
		workers = 1
	}
	s := &FrameSink{
		dir:  dir,
		jobs: make(chan frameJob, workers*2),
		bar:  progressbar.Default(int64(totalFrames), "Rendering"),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for job := range s.jobs {
				name := filepath.Join(s.dir, fmt.Sprintf("map%04d.png", job.Index))
				if err := savePNG(name, job.Image); err != nil {
					log.Printf("!!! Pb writing frame %d: %v", job.Index, err)
				}
				s.bar.Add(1)
			}
		}()
	}
	return s
}

// Emit queues one frame for encoding and returns its file name. Must
// be called from the single rendering goroutine.
func (s *FrameSink) Emit(img *image.RGBA) string {
	name := fmt.Sprintf("map%04d.png", s.next)
	s.jobs <- frameJob{Index: s.next, Image: img}
	s.names = append(s.names, name)
	s.next++
	return name
}

// Close waits for all queued frames to reach disk.
func (s *FrameSink) Close() {
	close(s.jobs)
	s.wg.Wait()
	s.bar.Finish()
}

// Count returns the number of frames emitted so far.
func (s *FrameSink) Count() int {
	return s.next
}

// WriteList writes the frame list consumed by the external video
// encoder. The first frame is repeated introRepeat times for an
// opening hold; the trailing pause is already part of the frame
// sequence itself.
func (s *FrameSink) WriteList(path string, introRepeat int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame list: %w", err)
	}
	defer f.Close()

	if len(s.names) > 0 {
		for i := 0; i < introRepeat; i++ {
			fmt.Fprintln(f, s.names[0])
		}
	}
	for _, name := range s.names {
		fmt.Fprintln(f, name)
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
