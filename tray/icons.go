package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// iconSet holds the tray icon for one combination of enabled sets.
type iconSet struct {
	lo, hi []byte
}

// icons is indexed by setA | setB<<1.
var icons [4]iconSet

func init() {
	for i := range icons {
		a, b := i&1 != 0, i&2 != 0
		icons[i] = iconSet{lo: renderIcon(22, a, b), hi: renderIcon(44, a, b)}
	}
}

func iconFor(a, b bool) iconSet {
	i := 0
	if a {
		i |= 1
	}
	if b {
		i |= 2
	}
	return icons[i]
}

// Icon returns the high resolution icon for the given set flags.
func Icon(a, b bool) []byte {
	return iconFor(a, b).hi
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

// renderIcon draws a ring with one dot per key set. A set's dot is solid
// when enabled and hollow when disabled.
func renderIcon(size int, a, b bool) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	cx, cy := s/2, s/2
	r := s/2 - 1
	ring := s / 11
	dotR := s / 6.5
	dots := []struct {
		x  float64
		on bool
	}{
		{cx - s/5, a},
		{cx + s/5, b},
	}

	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			d := math.Hypot(fx-cx, fy-cy)
			if d <= r && d >= r-ring {
				img.Set(x, y, color.Black)
				continue
			}
			for _, dot := range dots {
				dd := math.Hypot(fx-dot.x, fy-cy)
				if dd > dotR {
					continue
				}
				if dot.on || dd >= dotR-ring {
					img.Set(x, y, color.Black)
				}
			}
		}
	}
	return encodePNG(img)
}
