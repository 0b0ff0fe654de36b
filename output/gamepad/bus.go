package gamepad

// Report is a single virtual-gamepad frame, enough fields to cover both
// the XInput-style Voltex/Neardayo report and the DS4-style Hori report.
type Report struct {
	Buttons uint16 // bitmap: A,B,X,Y,LB,RB,START,BACK,GUIDE,... in that order
	LX, LY  int16
	RX, RY  int16
}

// Bus is a virtual gamepad device the emulator attaches to at setup and
// pushes reports to on every change. No platform has a working bus here:
// the Windows implementation (ViGEm-style) and the stub used elsewhere
// both fail in Connect, so the worker's setup reports false, matching the
// "failure to attach causes the worker to stop" policy.
type Bus interface {
	Connect() error
	Push(Report) error
	Unplug()
}

// NewBus returns the platform's Bus implementation.
func NewBus() Bus { return newPlatformBus() }
