package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestFrameSinkClampsWorkers(t *testing.T) {
	dir := t.TempDir()
	s := NewFrameSink(dir, -1, 1)
	name := s.Emit(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	s.Close()

	if name != "map0000.png" {
		t.Errorf("first frame named %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("frame not written: %v", err)
	}
}
