package lighting

import (
	"math"
	"time"

	"sliderbridge/output/gamepad"
	"sliderbridge/state"
)

func airPairActive(f state.Flat, idx int) bool {
	return f[32+idx*2] || f[33+idx*2]
}

// Even splits flat[0..32] into splits equal buckets, painting each pad
// pixel active/inactive by whether any pad in its bucket is pressed. The
// pixel just before each bucket boundary is always active; every odd
// (divider) pixel is inactive unless it is itself a boundary.
func Even(f state.Flat, splits int, p Palette) state.Lighting {
	var l state.Lighting
	buttonsPerSplit := 32 / splits

	banks := make([]bool, splits)
	for i := 0; i < splits; i++ {
		banks[i] = anyPressed(f, i*buttonsPerSplit, (i+1)*buttonsPerSplit)
	}

	for idx := 0; idx < 31; idx++ {
		switch {
		case (idx+1)%buttonsPerSplit == 0:
			l.Paint(idx, p.Active)
		case (idx+1)%2 == 0:
			l.Paint(idx, p.Inactive)
		default:
			if banks[idx/buttonsPerSplit] {
				l.Paint(idx, p.Active)
			} else {
				l.Paint(idx, p.Inactive)
			}
		}
	}
	paintAir(&l, f, p)
	l.Dirty = true
	return l
}

var sixBoundaries = [6]int{6, 10, 16, 22, 26, 32}
var sixActiveIdx = map[int]bool{5: true, 9: true, 15: true, 21: true, 25: true}

// Six is the fixed {6,4,6,6,4,6}-bucket reactive layout.
func Six(f state.Flat, p Palette) state.Lighting {
	var l state.Lighting

	for idx := 1; idx < 31; idx += 2 {
		if sixActiveIdx[idx] {
			l.Paint(idx, p.Active)
		} else {
			l.Paint(idx, p.Inactive)
		}
	}

	start := 0
	for _, end := range sixBoundaries {
		bank := anyPressed(f, start, end)
		for idx := start; idx < end && idx < 31; idx += 2 {
			if bank {
				l.Paint(idx, p.Active)
			} else {
				l.Paint(idx, p.Inactive)
			}
		}
		start = end
	}

	paintAir(&l, f, p)
	l.Dirty = true
	return l
}

func anyPressed(f state.Flat, lo, hi int) bool {
	for i := lo; i < hi && i < 32; i++ {
		if f[i] {
			return true
		}
	}
	return false
}

func paintAir(l *state.Lighting, f state.Flat, p Palette) {
	for idx := 0; idx < 3; idx++ {
		if airPairActive(f, idx) {
			l.PaintAir(idx, p.AirActive)
		} else {
			l.PaintAir(idx, p.AirInactive)
		}
	}
}

var voltexDecorationIdx = []int{3, 7, 11, 15, 19, 23, 27}

// Voltex paints the fixed decorations, laser, bt, and fx indicators used
// by the Voltex/Neardayo controller skin.
func Voltex(f state.Flat) state.Lighting {
	var l state.Lighting
	for _, idx := range voltexDecorationIdx {
		l.Paint(idx, [3]byte{64, 64, 64})
	}

	v := gamepad.VoltexFromFlat(f)

	if v.Laser[0] {
		paintRange(&l, 0, 3, [3]byte{70, 230, 250})
	}
	if v.Laser[1] {
		paintRange(&l, 4, 7, [3]byte{70, 230, 250})
	}
	if v.Laser[2] {
		paintRange(&l, 24, 27, [3]byte{250, 60, 200})
	}
	if v.Laser[3] {
		paintRange(&l, 28, 31, [3]byte{255, 60, 200})
	}

	for i, on := range v.BT {
		if on {
			l.Paint(8+4*i, [3]byte{255, 255, 255})
			l.Paint(10+4*i, [3]byte{255, 255, 255})
		}
	}
	for i, on := range v.FX {
		if on {
			l.Paint(9+8*i, [3]byte{250, 100, 30})
			l.Paint(11+8*i, [3]byte{250, 100, 30})
			l.Paint(13+8*i, [3]byte{250, 100, 30})
		}
	}

	l.Dirty = true
	return l
}

func paintRange(l *state.Lighting, lo, hi int, rgb [3]byte) {
	for i := lo; i <= hi; i++ {
		l.Paint(i, rgb)
	}
}

var horiBandColors = [4][3]byte{{64, 226, 160}, {255, 105, 248}, {124, 178, 232}, {255, 102, 102}}

// Hori paints the dimmed/full-brightness four-button bands and the
// touched-slider-pair indicators used by the Hori controller skin.
func Hori(f state.Flat) state.Lighting {
	var l state.Lighting
	for _, idx := range []int{7, 15, 23} {
		l.Paint(idx, [3]byte{64, 64, 64})
	}

	h := gamepad.HoriFromFlat(f)
	for i, on := range h.BT {
		div := byte(4)
		if on {
			div = 1
		}
		color := horiBandColors[i]
		adj := [3]byte{color[0] / div, color[1] / div, color[2] / div}
		for k := 0; k < 4; k++ {
			idx := i*8 + k*2
			if idx <= 30 {
				l.Paint(idx, adj)
			}
		}
	}

	for i := 0; i < 15; i++ {
		if h.Slider[i] || h.Slider[i+1] {
			idx := 1 + i*2
			if idx <= 30 {
				l.Paint(idx, [3]byte{200, 200, 200})
			}
		}
	}

	l.Dirty = true
	return l
}

// Rainbow cycles a global hue phase across all 31 pad pixels and both
// air strips, dimming pressed even pixels to saturation 0.2.
func Rainbow(f state.Flat, elapsed time.Duration) state.Lighting {
	var l state.Lighting
	theta := math.Mod(elapsed.Seconds()/4, 1)

	for idx := 0; idx < 31; idx++ {
		sliceTheta := theta + float64(idx)/32
		bankPressed := f[2*(idx/2)] || f[2*(idx/2)+1]
		l.Paint(idx, rainbow(sliceTheta, idx%2 == 0 && bankPressed))
	}

	for idx := 0; idx < 3; idx++ {
		sliceTheta := theta - float64(idx+1)/32
		l.PaintAirLeft(idx, rainbow(sliceTheta, airPairActive(f, idx)))
	}
	for idx := 0; idx < 3; idx++ {
		sliceTheta := theta + float64(idx)/32
		l.PaintAirRight(idx, rainbow(sliceTheta, airPairActive(f, idx)))
	}

	l.Dirty = true
	return l
}

// Attract is Rainbow with saturation pinned at 1 (no input dependency).
func Attract(elapsed time.Duration) state.Lighting {
	var l state.Lighting
	theta := math.Mod(elapsed.Seconds()/4, 1)

	for idx := 0; idx < 31; idx++ {
		sliceTheta := theta + float64(idx)/32
		l.Paint(idx, rainbow(sliceTheta, false))
	}
	for idx := 0; idx < 3; idx++ {
		l.PaintAirLeft(idx, rainbow(theta-float64(idx+1)/32, false))
	}
	for idx := 0; idx < 3; idx++ {
		l.PaintAirRight(idx, rainbow(theta+float64(idx)/32, false))
	}

	l.Dirty = true
	return l
}
