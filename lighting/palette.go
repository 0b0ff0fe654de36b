// Package lighting computes lighting snapshots from reactive input, time
// (attract), or an external light source.
package lighting

// Palette is the reactive-layout color configuration.
type Palette struct {
	Active      [3]byte
	Inactive    [3]byte
	AirActive   [3]byte
	AirInactive [3]byte
}
