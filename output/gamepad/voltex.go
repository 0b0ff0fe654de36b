// Package gamepad implements the Voltex and Hori virtual-gamepad output
// mappings.
package gamepad

import "sliderbridge/state"

// VoltexState is the flat input projected onto Voltex/Neardayo controls.
type VoltexState struct {
	Laser [4]bool
	BT    [4]bool
	FX    [2]bool
	Extra [3]bool
}

// VoltexFromFlat applies the Voltex projection described for C6.2.
func VoltexFromFlat(f state.Flat) VoltexState {
	var v VoltexState

	v.Laser[0] = anyTrue(f[0:4])
	v.Laser[1] = anyTrue(f[4:8])
	v.Laser[2] = anyTrue(f[24:28])
	v.Laser[3] = anyTrue(f[28:32])

	for i := 0; i < 4; i++ {
		v.BT[i] = f[9+4*i] || f[11+4*i]
	}
	for i := 0; i < 2; i++ {
		v.FX[i] = f[8+8*i] || f[10+8*i] || f[12+8*i] || f[14+8*i]
	}
	for i := 0; i < 3; i++ {
		v.Extra[i] = f[38+i]
	}

	return v
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}
