package lighting

import "math"

// rainbow converts a phase in [0,1) to an RGB triple via HSV, with
// saturation 1.0 normally and 0.2 when desaturate is set (used to pale
// pixels under a touched pad in the Rainbow layout).
func rainbow(phase float64, desaturate bool) [3]byte {
	phase = math.Mod(math.Mod(phase, 1)+1, 1)
	sat := 1.0
	if desaturate {
		sat = 0.2
	}
	r, g, b := hsvToRGB(phase*360, sat, 1.0)
	return [3]byte{r, g, b}
}

func hsvToRGB(h, s, v float64) (byte, byte, byte) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	m := v - c
	return toByte(r1 + m), toByte(g1 + m), toByte(b1 + m)
}

func toByte(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255 + 0.5)
}
