package main

import "image"

// Number of frames a status change keeps pulsing before the cache
// settles into its steady-state dot marker.
const flashLength = 16

type pixelOffset struct {
	DX, DY int
}

// Per-phase pixel offsets of the flash animations, relative to the
// cache's projected position. Phase 0 is the first frame after the
// status change.
var flashPatterns = [2][flashLength][]pixelOffset{
	flashArchiving: {
		// circles getting smaller
		{{-8, 8}, {8, 8}, {-8, -8}, {8, -8}, {-9, 9}, {9, 9}, {-9, -9}, {9, -9}, {-11, 0}, {11, 0}, {0, -11}, {0, 11}},
		{{-8, 8}, {8, 8}, {-8, -8}, {8, -8}, {-10, 0}, {10, 0}, {0, -10}, {0, 10}},
		{{-7, 7}, {7, 7}, {-7, -7}, {7, -7}, {-8, 8}, {8, 8}, {-8, -8}, {8, -8}, {-10, 0}, {10, 0}, {0, -10}, {0, 10}},
		{{-7, 7}, {7, 7}, {-7, -7}, {7, -7}, {-9, 0}, {9, 0}, {0, -9}, {0, 9}},
		{{-6, 6}, {6, 6}, {-6, -6}, {6, -6}, {-7, 7}, {7, 7}, {-7, -7}, {7, -7}, {-9, 0}, {9, 0}, {0, -9}, {0, 9}},
		{{-6, 6}, {6, 6}, {-6, -6}, {6, -6}, {-8, 0}, {8, 0}, {0, -8}, {0, 8}},
		{{-5, 5}, {5, 5}, {-5, -5}, {5, -5}, {-6, 6}, {6, 6}, {-6, -6}, {6, -6}, {-8, 0}, {8, 0}, {0, -8}, {0, 8}},
		{{-5, 5}, {5, 5}, {-5, -5}, {5, -5}, {-7, 0}, {7, 0}, {0, -7}, {0, 7}},
		{{-4, 4}, {4, 4}, {-4, -4}, {4, -4}, {-5, 5}, {5, 5}, {-5, -5}, {5, -5}, {-7, 0}, {7, 0}, {0, -7}, {0, 7}},
		{{-4, 4}, {4, 4}, {-4, -4}, {4, -4}, {-5, 0}, {5, 0}, {0, -5}, {0, 5}},
		{{-3, 3}, {3, 3}, {-3, -3}, {3, -3}, {-4, 4}, {4, 4}, {-4, -4}, {4, -4}, {-5, 0}, {5, 0}, {0, -5}, {0, 5}},
		{{-3, 3}, {3, 3}, {-3, -3}, {3, -3}, {-4, 0}, {4, 0}, {0, -4}, {0, 4}},
		{{-2, 2}, {2, 2}, {-2, -2}, {2, -2}, {-3, 3}, {3, 3}, {-3, -3}, {3, -3}, {-4, 0}, {4, 0}, {0, -4}, {0, 4}},
		{{-2, 2}, {2, 2}, {-2, -2}, {2, -2}, {-3, 0}, {3, 0}, {0, -3}, {0, 3}},
		{{-1, 1}, {1, 1}, {-1, -1}, {1, -1}, {-2, 2}, {2, 2}, {-2, -2}, {2, -2}, {-3, 0}, {3, 0}, {0, -3}, {0, 3}},
		{{-1, 1}, {1, 1}, {-1, -1}, {1, -1}},
	},
	flashActivating: {
		// blinking star
		{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
		{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}, {0, -2}, {0, -1}, {0, 1}, {0, 2}},
		{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}, {0, -2}, {0, -1}, {0, 1}, {0, 2}, {-3, 0}, {3, 0}, {0, -3}, {0, 3}},
		{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}, {0, -2}, {0, -1}, {0, 1}, {0, 2}, {-3, 0}, {3, 0}, {0, -3}, {0, 3}, {-5, 0}, {5, 0}, {0, -5}, {0, 5}},
		{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}, {0, -2}, {0, -1}, {0, 1}, {0, 2}, {-3, 0}, {3, 0}, {0, -3}, {0, 3}},
		{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}, {0, -2}, {0, -1}, {0, 1}, {0, 2}},
		{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
		{}, {}, {}, {}, {}, {}, {}, {}, {},
	},
}

// FlashAnimator is a fixed-length ring of per-frame point lists. Every
// rendered day the cursor moves back one slot; a cache registered at
// the current cursor position replays the full pattern sequence over
// the next flashLength frames.
type FlashAnimator struct {
	cursor int
	lists  [2][flashLength][]image.Point
}

func NewFlashAnimator() *FlashAnimator {
	return &FlashAnimator{}
}

// Register adds a just-changed cache position into the current slot.
func (f *FlashAnimator) Register(class flashClass, x, y int) {
	f.lists[class][f.cursor] = append(f.lists[class][f.cursor], image.Point{X: x, Y: y})
}

// Overlay calls set for every flash pixel of the current frame. The
// pattern phase of slot i is its age relative to the cursor.
func (f *FlashAnimator) Overlay(set func(class flashClass, x, y int)) {
	for class := flashArchiving; class <= flashActivating; class++ {
		for i := 0; i < flashLength; i++ {
			phase := ((i - f.cursor) % flashLength + flashLength) % flashLength
			for _, off := range flashPatterns[class][phase] {
				for _, p := range f.lists[class][i] {
					set(class, p.X+off.DX, p.Y+off.DY)
				}
			}
		}
	}
}

// Step moves the ring one frame forward: the cursor decrements modulo
// flashLength and the slot it lands on is cleared, ready for the next
// day's registrations.
func (f *FlashAnimator) Step() {
	f.cursor = (f.cursor - 1 + flashLength) % flashLength
	f.lists[flashArchiving][f.cursor] = nil
	f.lists[flashActivating][f.cursor] = nil
}
