// Package keyboard synthesizes keyboard events from flat input, via
// either direct OS key-event injection or a kernel-level scancode
// interception facility.
package keyboard

// Layout names the literal 41-entry keycode mapping to use. Each array
// is indexed by flat-index; 0 means "disabled". Values are Windows
// virtual-key codes.
type Layout int

const (
	LayoutTasoller Layout = iota
	LayoutYuancon
	LayoutUmiguri
	LayoutTasollerHalf
	LayoutEightK
	LayoutSixK
	LayoutFourK
	LayoutVoltex
	LayoutNeardayo
	LayoutPDFTA
	LayoutDeemo
)

// VK codes for the letter/digit/arrow keys these layouts use.
const (
	vkW = 0x57
	vkE = 0x45
	vkD = 0x44
	vkC = 0x43
	vkX = 0x58
	vkZ = 0x5a
	vkA = 0x41
	vkQ = 0x51
	vk1 = 0x31
	vk2 = 0x32
	vk3 = 0x33
	vk4 = 0x34
	vk5 = 0x35
	vk6 = 0x36
	vk7 = 0x37
	vk8 = 0x38
	vkUp    = 0x26
	vkLeft  = 0x25
	vkRight = 0x27
	vkDown  = 0x28
	vkSpace = 0x20
	vkLCtrl = 0xa2
	vkLShift = 0xa0
	vkF     = 0x46
	vkJ     = 0x4a
	vkK     = 0x4b
	vkM     = 0x4d
	vkO     = 0x4f
	vkP     = 0x50
)

// keyMaps holds the literal per-layout 41-entry keycode tables, grounded
// on the original firmware's TASOLLER_KB_MAP/YUANCON_KB_MAP/etc tables:
// 32 ground entries, 6 air entries, 3 extra entries.
var keyMaps = map[Layout][41]uint16{
	LayoutTasoller: buildGroundOnly([16]uint16{
		vkA, vkA, vkZ, vkZ, vkQ, vkQ, vkW, vkW,
		vkE, vkE, vkD, vkD, vkC, vkC, vkX, vkX,
	}),
	LayoutYuancon: buildGroundOnly([16]uint16{
		vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4,
		vk5, vk5, vk6, vk6, vk7, vk7, vk8, vk8,
	}),
	LayoutUmiguri:      buildGroundOnly([16]uint16{vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4, vk5, vk5, vk6, vk6, vk7, vk7, vk8, vk8}),
	LayoutPDFTA:        buildGroundOnly([16]uint16{vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4, vk5, vk5, vk6, vk6, vk7, vk7, vk8, vk8}),
	LayoutTasollerHalf: buildGroundOnly([16]uint16{vkA, 0, vkZ, 0, vkQ, 0, vkW, 0, vkE, 0, vkD, 0, vkC, 0, vkX, 0}),
	LayoutEightK:       buildGroundOnly([16]uint16{vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4, vk5, vk5, vk6, vk6, vk7, vk7, vk8, vk8}),
	LayoutSixK:         buildGroundOnly([16]uint16{0, vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4, vk5, vk5, vk6, 0, 0, 0, 0}),
	LayoutFourK:        buildGroundOnly([16]uint16{0, 0, vk1, vk1, vk2, vk2, vk3, vk3, vk4, vk4, 0, 0, 0, 0, 0, 0}),
	LayoutVoltex:       buildVoltex(false),
	LayoutNeardayo:     buildVoltex(true),
	LayoutDeemo:        buildGroundOnly([16]uint16{vkLeft, vkLeft, vkLeft, vkLeft, vkDown, vkDown, vkDown, vkDown, vkUp, vkUp, vkUp, vkUp, vkRight, vkRight, vkRight, vkRight}),
}

func buildGroundOnly(pairs [16]uint16) [41]uint16 {
	var m [41]uint16
	for k, code := range pairs {
		m[2*k] = code
		m[2*k+1] = code
	}
	return m
}

// buildVoltex derives the Voltex-style map: bt/fx from the ground pairs
// per the same index formulas as the Voltex gamepad projection, laser
// keys from ground pads 0..3 and 28..31, all six air beams mapped to
// space for neardayo only (unmapped otherwise), extras unmapped.
func buildVoltex(neardayo bool) [41]uint16 {
	var m [41]uint16
	btCodes := [4]uint16{vkD, vkF, vkJ, vkK}
	fxCodes := [2]uint16{vkC, vkM}
	for i := 0; i < 4; i++ {
		m[9+4*i] = btCodes[i]
		m[11+4*i] = btCodes[i]
	}
	for i := 0; i < 2; i++ {
		m[8+8*i] = fxCodes[i]
		m[10+8*i] = fxCodes[i]
		m[12+8*i] = fxCodes[i]
		m[14+8*i] = fxCodes[i]
	}
	m[0], m[1], m[2], m[3] = vkW, vkW, vkE, vkE
	m[28], m[29], m[30], m[31] = vkO, vkO, vkP, vkP
	if neardayo {
		for i := 32; i < 38; i++ {
			m[i] = vkSpace
		}
	}
	return m
}
