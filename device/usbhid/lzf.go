package usbhid

// lzfCompress implements a minimal LZF-style compressor: literal runs and
// back-references of the form (offset, length), matching the shape the
// HoriPad firmware expects on its compact LED endpoint. It favors
// simplicity over compression ratio; ground pixel data is mostly
// repeated black, which this still compresses well.
//
// Grounded on the LZF variant referenced by this hardware's firmware
// (src-lzfx in the original implementation), re-expressed here rather
// than transliterated.
func lzfCompress(in []byte) ([]byte, bool) {
	const (
		maxLiteral = 32
		minMatch   = 3
		maxMatch   = minMatch + 255
		maxOffset  = 1 << 13
	)

	var out []byte
	i := 0
	litStart := 0

	flushLiteral := func(end int) {
		for litStart < end {
			n := end - litStart
			if n > maxLiteral {
				n = maxLiteral
			}
			out = append(out, byte(n-1))
			out = append(out, in[litStart:litStart+n]...)
			litStart += n
		}
	}

	for i < len(in) {
		bestLen := 0
		bestOff := 0

		start := i - maxOffset
		if start < 0 {
			start = 0
		}
		for cand := i - minMatch; cand >= start; cand-- {
			l := 0
			for i+l < len(in) && l < maxMatch && in[cand+l] == in[i+l] {
				l++
			}
			if l >= minMatch && l > bestLen {
				bestLen = l
				bestOff = i - cand
			}
		}

		if bestLen >= minMatch {
			flushLiteral(i)
			length := bestLen - minMatch
			off := bestOff - 1
			// Back-reference marker: top three bits of byte0 set (0xe0)
			// distinguish it from a literal-run length byte (top three
			// bits clear), followed by the offset's high bits, the match
			// length, and the offset's low byte.
			out = append(out, byte(0xe0|(off>>8)), byte(length), byte(off&0xff))
			i += bestLen
			litStart = i
		} else {
			i++
		}
	}
	flushLiteral(i)

	return out, true
}
