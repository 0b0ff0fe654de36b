package usbhid

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/google/gousb"

	"sliderbridge/state"
	"sliderbridge/worker"
)

const transferTimeout = 20 * time.Millisecond

// Driver wraps one Model instance into the USB read/encode/write tick
// loop described for C3.
type Driver struct {
	Model      Model
	Hub        *state.Hub
	DisableAir bool

	ctx    *gousb.Context
	dev    *gousb.Device
	intf   *gousb.Interface
	inEP   *gousb.InEndpoint
	outEPs []*gousb.OutEndpoint

	lastRead []byte
	bufs     [][]byte
	log      *log.Logger
}

// Job returns the worker.ThreadJob for this Driver.
func (d *Driver) Job() worker.ThreadJob {
	return worker.ThreadJob{Setup: d.setup, Tick: d.tick, Teardown: d.Close}
}

func (d *Driver) setup() bool {
	d.log = log.New(log.Writer(), "usbhid("+d.Model.Name+"): ", log.LstdFlags)

	d.ctx = gousb.NewContext()
	dev, err := d.ctx.OpenDeviceWithVIDPID(d.Model.VID, d.Model.PID)
	if err != nil || dev == nil {
		d.log.Printf("open device failed: %v", err)
		return false
	}
	d.dev = dev

	if err := dev.SetAutoDetach(true); err != nil {
		d.log.Printf("set auto detach failed: %v", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		d.log.Printf("claim config 1 failed: %v", err)
		return false
	}
	intf, err := cfg.Interface(0, 0)
	if err != nil {
		d.log.Printf("claim interface 0 failed: %v", err)
		return false
	}
	d.intf = intf

	inEP, err := intf.InEndpoint(d.Model.ReadEndpoint)
	if err != nil {
		d.log.Printf("open in endpoint failed: %v", err)
		return false
	}
	d.inEP = inEP

	d.outEPs = make([]*gousb.OutEndpoint, len(d.Model.LEDSpecs))
	d.bufs = make([][]byte, len(d.Model.LEDSpecs))
	for i, spec := range d.Model.LEDSpecs {
		ep, err := intf.OutEndpoint(spec.Endpoint)
		if err != nil {
			d.log.Printf("open out endpoint %#x failed: %v", spec.Endpoint, err)
			return false
		}
		d.outEPs[i] = ep
		d.bufs[i] = make([]byte, spec.Size)
	}

	return true
}

func (d *Driver) tick() bool {
	progressed := false

	readLen := d.Model.ReadLen
	if d.Model.AltReadLen > readLen {
		readLen = d.Model.AltReadLen
	}
	readBuf := make([]byte, readLen)
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
		defer cancel()
		n, err := d.inEP.ReadContext(ctx, readBuf)
		if err != nil || n <= 0 {
			return
		}
		frame := readBuf[:n]
		if n != d.Model.ReadLen && n != d.Model.AltReadLen {
			return
		}
		if bytes.Equal(frame, d.lastRead) {
			return
		}

		ground, air, extra := d.Model.Decode(frame)
		if d.Model.VerticalFlip {
			ground = state.VerticalFlip(ground)
		}
		if d.DisableAir {
			air = [6]byte{}
		}
		d.Hub.Input().With(func(in *state.Input) {
			in.Ground = ground
			in.Air = air
			in.Extra = extra
		})

		d.lastRead = append(d.lastRead[:0], frame...)
		progressed = true
	}()

	var active []bool
	d.Hub.Lighting().With(func(l *state.Lighting) {
		if !l.Dirty {
			return
		}
		active = d.Model.Encode(*l, d.bufs)
		l.Dirty = false
	})

	for i, spec := range d.Model.LEDSpecs {
		if i >= len(active) || !active[i] {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
		sent, err := d.writeLED(ctx, spec, i)
		cancel()
		if err != nil {
			d.log.Printf("led write endpoint %#x failed: %v", spec.Endpoint, err)
			continue
		}
		if sent == spec.Size+1 || sent == spec.Size {
			progressed = true
		}
	}

	return progressed
}

func (d *Driver) writeLED(ctx context.Context, spec LEDSpec, idx int) (int, error) {
	return d.outEPs[idx].WriteContext(ctx, d.bufs[idx])
}

// Close releases the claimed interface and USB context.
func (d *Driver) Close() {
	if d.intf != nil {
		d.intf.Close()
	}
	if d.dev != nil {
		d.dev.Close()
	}
	if d.ctx != nil {
		d.ctx.Close()
	}
}
