// Package session owns the set of workers built from a configuration
// and tears them all down atomically on shutdown or reconfiguration.
package session

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"sliderbridge/config"
	"sliderbridge/device/serial"
	"sliderbridge/device/usbhid"
	"sliderbridge/lighting"
	"sliderbridge/lighting/umgr"
	"sliderbridge/output/gamepad"
	"sliderbridge/output/keyboard"
	outws "sliderbridge/output/websocket"
	"sliderbridge/server"
	"sliderbridge/state"
	"sliderbridge/worker"
)

// Session owns every long-lived worker for one configuration.
type Session struct {
	hub     *state.Hub
	workers []*worker.Handle
	log     *log.Logger
}

// New validates cfg and builds every worker it names. At most one input
// producer (C3/C4/C5) and at most one primary lighting producer (C7,
// or C5 in UMGR mode) may be configured; violating that is a
// configuration error surfaced here rather than at run time.
func New(ctx context.Context, cfg *config.Config) (*Session, error) {
	s := &Session{
		hub: state.NewHub(),
		log: log.New(log.Writer(), "session: ", log.LstdFlags),
	}

	inputProducers := 0
	if cfg.DeviceMode != "none" {
		inputProducers++
	}
	lightingProducers := 0
	if cfg.LEDMode != "none" && cfg.LEDMode != "umgr-websocket" {
		lightingProducers++
	}
	if cfg.LEDMode == "umgr-websocket" {
		lightingProducers++
	}
	if inputProducers > 1 {
		return nil, fmt.Errorf("session: more than one input producer configured")
	}
	if lightingProducers > 1 {
		return nil, fmt.Errorf("session: more than one lighting producer configured")
	}

	if err := s.buildDevice(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.buildOutput(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.buildLighting(ctx, cfg); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) buildDevice(ctx context.Context, cfg *config.Config) error {
	switch cfg.DeviceMode {
	case "none":
		return nil

	case "diva":
		sess := serial.NewSession(s.hub)
		sess.Brightness(byte(cfg.DivaBrightness))
		driver := &serial.Driver{PortName: cfg.DivaSerialPort, Session: sess}
		s.add(worker.RunThread(driver.Job()))
		return nil

	case "brokenithm", "brokenithm-led", "brokenithm-nostalgia":
		srv := &server.Server{
			Hub:            s.hub,
			Port:           cfg.BrokenithmPort,
			DisableAir:     cfg.DisableAirStrings,
			StreamLighting: cfg.DeviceMode == "brokenithm-led",
		}
		s.add(worker.RunHaltable(ctx, srv.Run))
		return nil

	default:
		model, ok := usbhid.Models[cfg.DeviceMode]
		if !ok {
			return fmt.Errorf("session: unknown deviceMode %q", cfg.DeviceMode)
		}
		driver := &usbhid.Driver{Model: model, Hub: s.hub, DisableAir: cfg.DisableAirStrings}
		s.add(worker.RunThread(driver.Job()))
		return nil
	}
}

func (s *Session) buildOutput(ctx context.Context, cfg *config.Config) error {
	sensitivity := byte(cfg.KeyboardSensitivity)

	switch {
	case cfg.OutputMode == "" || cfg.OutputMode == "none":
		return nil

	case strings.HasPrefix(cfg.OutputMode, "kb-"):
		layout, ok := keyboardLayouts[cfg.OutputMode]
		if !ok {
			return fmt.Errorf("session: unknown outputMode %q", cfg.OutputMode)
		}
		backend := keyboard.NewSystemEventBackend()
		if cfg.KeyboardDirectInput {
			if ib, err := keyboard.NewInterceptionBackend(); err == nil {
				backend = ib
			} else {
				s.log.Printf("keyboard direct input unavailable, falling back to system events: %v", err)
			}
		}
		out := keyboard.NewOutput(s.hub, layout, sensitivity, backend)
		s.add(worker.RunAsync(ctx, out.Job()))
		return nil

	case cfg.OutputMode == "gamepad-voltex", cfg.OutputMode == "gamepad-neardayo":
		layout := gamepad.LayoutVoltex
		if cfg.OutputMode == "gamepad-neardayo" {
			layout = gamepad.LayoutNeardayo
		}
		emu := &gamepad.Emulator{Hub: s.hub, Layout: layout, Sensitivity: sensitivity}
		s.add(worker.RunAsync(ctx, emu.Job()))
		return nil

	case cfg.OutputMode == "gamepad-hori", cfg.OutputMode == "gamepad-hori-wide":
		layout := gamepad.LayoutHori
		if cfg.OutputMode == "gamepad-hori-wide" {
			layout = gamepad.LayoutHoriWide
		}
		emu := &gamepad.Emulator{Hub: s.hub, Layout: layout, Sensitivity: sensitivity}
		s.add(worker.RunAsync(ctx, emu.Job()))
		return nil

	case cfg.OutputMode == "websocket":
		out := &outws.Output{Hub: s.hub, URL: cfg.OutputWebsocketURL, Sensitivity: sensitivity}
		s.add(worker.RunAsync(ctx, out.Job()))
		return nil

	default:
		return fmt.Errorf("session: unknown outputMode %q", cfg.OutputMode)
	}
}

var keyboardLayouts = map[string]keyboard.Layout{
	"kb-tasoller":      keyboard.LayoutTasoller,
	"kb-yuancon":       keyboard.LayoutYuancon,
	"kb-umiguri":       keyboard.LayoutUmiguri,
	"kb-tasoller-half": keyboard.LayoutTasollerHalf,
	"kb-8k":            keyboard.LayoutEightK,
	"kb-6k":            keyboard.LayoutSixK,
	"kb-4k":            keyboard.LayoutFourK,
	"kb-voltex":        keyboard.LayoutVoltex,
	"kb-neardayo":      keyboard.LayoutNeardayo,
	"kb-pdfta":         keyboard.LayoutPDFTA,
	"kb-deemo":         keyboard.LayoutDeemo,
}

func (s *Session) buildLighting(ctx context.Context, cfg *config.Config) error {
	switch {
	case cfg.LEDMode == "" || cfg.LEDMode == "none":
		return nil

	case cfg.LEDMode == "attract":
		eng := &lighting.Engine{Hub: s.hub, Mode: lighting.ModeAttract, Faster: cfg.LEDFaster}
		s.add(worker.RunAsync(ctx, eng.Job()))
		return nil

	case strings.HasPrefix(cfg.LEDMode, "reactive-"):
		layout, err := reactiveLayout(cfg.LEDMode)
		if err != nil {
			return err
		}
		eng := &lighting.Engine{
			Hub:         s.hub,
			Mode:        lighting.ModeReactive,
			Layout:      layout,
			Faster:      cfg.LEDFaster,
			Sensitivity: byte(cfg.LEDSensitivity),
			Palette:     palette(cfg),
		}
		s.add(worker.RunAsync(ctx, eng.Job()))
		return nil

	case cfg.LEDMode == "serial":
		src := &lighting.SerialSource{Hub: s.hub, PortName: cfg.LEDSerialPort}
		s.add(worker.RunAsync(ctx, src.Job()))
		return nil

	case cfg.LEDMode == "umgr-websocket":
		srv := &umgr.Server{Hub: s.hub, Port: cfg.LEDUmgrWebsocketPort, Faster: cfg.LEDFaster}
		s.add(worker.RunHaltable(ctx, srv.Run))
		return nil

	default:
		return fmt.Errorf("session: unknown ledMode %q", cfg.LEDMode)
	}
}

func reactiveLayout(mode string) (lighting.ReactiveLayout, error) {
	switch strings.TrimPrefix(mode, "reactive-") {
	case "4":
		return lighting.ReactiveFour, nil
	case "6":
		return lighting.ReactiveSix, nil
	case "8":
		return lighting.ReactiveEight, nil
	case "16":
		return lighting.ReactiveSixteen, nil
	case "rainbow":
		return lighting.ReactiveRainbowLayout, nil
	case "voltex":
		return lighting.ReactiveVoltexLayout, nil
	case "hori":
		return lighting.ReactiveHoriLayout, nil
	default:
		return 0, fmt.Errorf("session: unknown reactive layout %q", mode)
	}
}

func palette(cfg *config.Config) lighting.Palette {
	return lighting.Palette{
		Active:      parseHexColor(cfg.LEDColorActive),
		Inactive:    parseHexColor(cfg.LEDColorInactive),
		AirActive:   parseHexColor(cfg.LEDColorAirActive),
		AirInactive: parseHexColor(cfg.LEDColorAirInactive),
	}
}

func parseHexColor(s string) [3]byte {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return [3]byte{}
	}
	r, _ := strconv.ParseUint(s[0:2], 16, 8)
	g, _ := strconv.ParseUint(s[2:4], 16, 8)
	b, _ := strconv.ParseUint(s[4:6], 16, 8)
	return [3]byte{byte(r), byte(g), byte(b)}
}

func (s *Session) add(h *worker.Handle) { s.workers = append(s.workers, h) }

// Hub returns the session's shared state hub, primarily for diagnostics.
func (s *Session) Hub() *state.Hub { return s.hub }

// Stop releases every worker's resources. Workers are stopped in the
// reverse of their creation order so device drivers (which lighting
// consumers read from) outlive their producers during shutdown.
func (s *Session) Stop() {
	for i := len(s.workers) - 1; i >= 0; i-- {
		s.workers[i].Stop()
	}
}
