package gamepad

import "sliderbridge/state"

// HoriState is the flat input projected onto the Hori/DualShock4 layout.
type HoriState struct {
	BT     [4]bool
	Slider [16]bool
}

// HoriFromFlat projects the 32 ground pads onto the standard Hori
// layout: even pad indices feed the four face buttons (the 4 even pads
// of each run of 8 feed one button), odd pad indices feed the 16-wide
// slider one cell each.
func HoriFromFlat(f state.Flat) HoriState {
	var h HoriState
	for i := 0; i < 32; i++ {
		if !f[i] {
			continue
		}
		if i%2 == 0 {
			h.BT[i/8] = true
		} else {
			h.Slider[i/2] = true
		}
	}
	return h
}

// HoriFromFlatWide projects every one of the 32 ground pads onto the
// 16-wide slider (two pads per slider cell) and reports no face
// buttons, for controllers wired without discrete button pads.
func HoriFromFlatWide(f state.Flat) HoriState {
	var h HoriState
	for i := 0; i < 32; i++ {
		if f[i] {
			h.Slider[i/2] = true
		}
	}
	return h
}

// HoriAxisWord packs the 16-pair slider state into the 32-bit axis word
// axis = sum(0b11 << 2*(15-i)) for each pressed pair, then XOR-masked
// with 0x80808080 and unpacked into four stick axes (LX, LY, RX, RY).
func HoriAxisWord(h HoriState) (lx, ly, rx, ry byte) {
	var axis uint32
	for i, pressed := range h.Slider {
		if pressed {
			axis |= 0b11 << uint(2*(15-i))
		}
	}
	axis ^= 0x80808080
	lx = byte(axis >> 24)
	ly = byte(axis >> 16)
	rx = byte(axis >> 8)
	ry = byte(axis)
	return
}
