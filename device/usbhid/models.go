// Package usbhid drives slider controllers that present as a USB-HID
// device, one per supported hardware model.
package usbhid

import (
	"github.com/google/gousb"

	"sliderbridge/state"
)

// TransferType selects the USB transfer kind used for an LED output
// channel.
type TransferType int

const (
	Bulk TransferType = iota
	Interrupt
)

// LEDSpec describes one LED output channel: its transfer kind, endpoint
// address, and staging buffer size.
type LEDSpec struct {
	WriteType TransferType
	Endpoint  int
	Size      int
}

// Model is the closed, tagged-record description of one supported
// controller: identity, read framing, decode/encode functions, and LED
// channel layout. The set of models is closed and small, so this is a
// plain struct rather than an interface hierarchy.
type Model struct {
	Name string
	VID  gousb.ID
	PID  gousb.ID

	ReadEndpoint int
	ReadLen      int // primary accepted frame length
	AltReadLen   int // secondary accepted length, 0 if none

	VerticalFlip bool

	// Decode maps a raw, already-length-validated frame into the three
	// input fields.
	Decode func(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte)

	LEDSpecs []LEDSpec
	// Encode fills each staging buffer (len(bufs) == len(LEDSpecs)) from
	// the current lighting snapshot. It returns which buffers have data
	// to send.
	Encode func(l state.Lighting, bufs [][]byte) (active []bool)
}

func getBitLE(frame []byte, bit int) bool {
	byteIdx := bit / 8
	bitPos := bit % 8
	if byteIdx >= len(frame) {
		return false
	}
	return frame[byteIdx]&(1<<uint(bitPos)) != 0
}

func amplify(b bool) byte {
	if b {
		return 255
	}
	return 0
}

func decodeTasollerOne(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte) {
	for i := 0; i < 32; i++ {
		ground[i] = amplify(getBitLE(frame, 34+i))
	}
	ground = state.VerticalFlip(ground)
	for i := 0; i < 6; i++ {
		if getBitLE(frame, 28+i) {
			air[i] = 1
		}
	}
	for i := 0; i < 2; i++ {
		if getBitLE(frame, 26+i) {
			extra[i] = 1
		}
	}
	return
}

func decodeTasollerTwo(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte) {
	copy(ground[:], frame[4:36])
	ground = state.VerticalFlip(ground)
	b3 := frame[3]
	for i := 0; i < 6; i++ {
		if b3&(1<<uint(i)) != 0 {
			air[i] = 1
		}
	}
	for i := 0; i < 2; i++ {
		if b3&(1<<uint(6+i)) != 0 {
			extra[i] = 1
		}
	}
	return
}

func decodeYuancon(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte) {
	copy(ground[:], frame[2:34])
	b0, b1 := frame[0], frame[1]
	for i := 0; i < 6; i++ {
		if b0&(1<<uint(i)) != 0 {
			air[i^1] = 1
		}
	}
	for i := 0; i < 3; i++ {
		if b1&(1<<uint(i)) != 0 {
			extra[2-i] = 1
		}
	}
	return
}

func decodeYubideck(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte) {
	return decodeYuancon(frame)
}

func decodeHoriPad(frame []byte) (ground [32]byte, air [6]byte, extra [3]byte) {
	var masked [8]byte
	for i := 0; i < 8; i++ {
		masked[i] = frame[1+i] ^ 0x80
	}
	for i := 0; i < 32; i++ {
		bit := 55 - i
		ground[i] = amplify(getBitLE(masked[:], bit))
	}
	for i := 0; i < 6; i++ {
		if getBitLE(masked[:], i) {
			air[i] = 1
		}
	}
	return
}

func swapRG(rgb [3]byte) [3]byte { return [3]byte{rgb[1], rgb[0], rgb[2]} }

func encodeTasollerOne(l state.Lighting, bufs [][]byte) []bool {
	buf := bufs[0]
	buf[0], buf[1], buf[2] = 'B', 'L', 0x00
	for i, px := range l.Ground {
		grb := swapRG(px)
		copy(buf[3+i*3:], grb[:])
	}
	for i := 3 + 31*3; i < len(buf); i++ {
		buf[i] = 0
	}
	return []bool{true}
}

func encodeTasollerTwo(l state.Lighting, bufs [][]byte) []bool {
	encodeTasollerOne(l, bufs)
	buf := bufs[0]
	base := 3 + 31*3

	writeAirBlock := func(offset int, px [3]byte) {
		grb := swapRG(px)
		for rep := 0; rep < 8; rep++ {
			copy(buf[offset+rep*3:], grb[:])
		}
	}

	left := [3][3]byte{l.AirLeft[2], l.AirLeft[1], l.AirLeft[0]}
	for i, px := range left {
		writeAirBlock(base+i*24, px)
	}
	for i, px := range l.AirRight {
		writeAirBlock(base+(3+i)*24, px)
	}
	return []bool{true}
}

func encodeYuanconRGB565(l state.Lighting, bufs [][]byte) []bool {
	buf := bufs[0]
	for i := 0; i < 31; i++ {
		px := l.Ground[30-i]
		r := uint16(px[0]) >> 3
		g := uint16(px[1]) >> 2
		b := uint16(px[2]) >> 3
		v := (r << 11) | (g << 5) | b
		buf[i*2] = byte(v)
		buf[i*2+1] = byte(v >> 8)
	}
	return []bool{true}
}

// encodeYubideck packs the 16 pad pixels (even ground indices) plus the 3
// air-left pixels, 4 bits per channel, two bytes per pixel (high nibble
// unused, matching the 62-byte channel budget with headroom for the
// simpler Yubideck LED bus).
func encodeYubideck(l state.Lighting, bufs [][]byte) []bool {
	buf := bufs[0]
	for i := 0; i < len(buf); i++ {
		buf[i] = 0
	}
	put := func(idx int, px [3]byte) {
		r := px[0] >> 4
		g := px[1] >> 4
		b := px[2] >> 4
		buf[idx*2] = r<<4 | g
		buf[idx*2+1] = b
	}
	for i := 0; i < 16; i++ {
		put(i, l.Ground[i*2])
	}
	for i := 0; i < 3; i++ {
		put(16+i, l.AirLeft[i])
	}
	return []bool{true}
}

// encodeYubideckThree splits the lighting across two 61-byte frames
// selected by a leading selector byte (0x00, then 0x01), 3 bytes per
// pixel. Frame 0x00 carries ground pixels 11..30; the top air-left and
// air-right pixels listed after them do not fit in 61 bytes and are
// dropped. Frame 0x01 carries ground pixels 0..10 followed by the top
// air-left and air-right pixels.
func encodeYubideckThree(l state.Lighting, bufs [][]byte) []bool {
	var first, second [][3]byte
	for i := 11; i <= 30; i++ {
		first = append(first, l.Ground[i])
	}
	first = append(first, l.AirLeft[2], l.AirRight[2])
	for i := 0; i <= 10; i++ {
		second = append(second, l.Ground[i])
	}
	second = append(second, l.AirLeft[2], l.AirRight[2])

	buf0, buf1 := bufs[0], bufs[1]
	buf0[0] = 0x00
	for i, px := range first {
		if 1+i*3+2 >= len(buf0) {
			break
		}
		copy(buf0[1+i*3:], px[:])
	}
	buf1[0] = 0x01
	for i, px := range second {
		if 1+i*3+2 >= len(buf1) {
			break
		}
		copy(buf1[1+i*3:], px[:])
	}
	return []bool{true, true}
}

func encodeHoriPad(l state.Lighting, bufs [][]byte) []bool {
	var pixels [31][3]byte
	for i, px := range l.Ground {
		pixels[i] = [3]byte{px[1], px[2], px[0]}
	}
	raw := make([]byte, 0, 31*3)
	for _, px := range pixels {
		raw = append(raw, px[:]...)
	}

	if compressed, ok := lzfCompress(raw); ok && len(compressed) <= 63 {
		buf := bufs[3]
		for i := range buf {
			buf[i] = 0
		}
		copy(buf, compressed)
		return []bool{false, false, false, true}
	}

	splits := []int{48, 45, 18}
	off := 0
	active := make([]bool, len(bufs))
	for i, n := range splits {
		end := off + n
		if end > len(raw) {
			end = len(raw)
		}
		copy(bufs[i], raw[off:end])
		active[i] = true
		off = end
	}
	return active
}

// Models enumerates the supported hardware. Names match the
// deviceMode configuration enum.
var Models = map[string]Model{
	"tasoller-one": {
		Name: "tasoller-one", VID: 0x0ca3, PID: 0x0024,
		ReadEndpoint: 0x81, ReadLen: 11,
		Decode: decodeTasollerOne,
		LEDSpecs: []LEDSpec{
			{WriteType: Bulk, Endpoint: 0x02, Size: 240},
		},
		Encode: encodeTasollerOne,
	},
	"tasoller-two": {
		Name: "tasoller-two", VID: 0x0ca3, PID: 0x0021,
		ReadEndpoint: 0x81, ReadLen: 36,
		Decode: decodeTasollerTwo,
		LEDSpecs: []LEDSpec{
			{WriteType: Bulk, Endpoint: 0x02, Size: 240},
		},
		Encode: encodeTasollerTwo,
	},
	"yuancon": {
		Name: "yuancon", VID: 0x1973, PID: 0x2001,
		ReadEndpoint: 0x81, ReadLen: 34, AltReadLen: 35,
		Decode: decodeYuancon,
		LEDSpecs: []LEDSpec{
			{WriteType: Interrupt, Endpoint: 0x02, Size: 62},
		},
		Encode: encodeYuanconRGB565,
	},
	"yubideck": {
		Name: "yubideck", VID: 0x1973, PID: 0x2002,
		ReadEndpoint: 0x81, ReadLen: 45, AltReadLen: 46,
		VerticalFlip: true,
		Decode:       decodeYubideck,
		LEDSpecs: []LEDSpec{
			{WriteType: Interrupt, Endpoint: 0x02, Size: 62},
		},
		Encode: encodeYubideck,
	},
	"yubideck-three": {
		Name: "yubideck-three", VID: 0x1973, PID: 0x2003,
		ReadEndpoint: 0x81, ReadLen: 45, AltReadLen: 46,
		VerticalFlip: true,
		Decode:       decodeYubideck,
		LEDSpecs: []LEDSpec{
			{WriteType: Interrupt, Endpoint: 0x02, Size: 61},
			{WriteType: Interrupt, Endpoint: 0x03, Size: 61},
		},
		Encode: encodeYubideckThree,
	},
	"hori": {
		Name: "hori", VID: 0x0f0d, PID: 0x00ee,
		ReadEndpoint: 0x81, ReadLen: 9,
		Decode: decodeHoriPad,
		LEDSpecs: []LEDSpec{
			{WriteType: Interrupt, Endpoint: 0x04, Size: 48},
			{WriteType: Interrupt, Endpoint: 0x05, Size: 45},
			{WriteType: Interrupt, Endpoint: 0x06, Size: 18},
			{WriteType: Interrupt, Endpoint: 0x0b, Size: 63},
		},
		Encode: encodeHoriPad,
	},
}
