// Package config defines the session's configuration surface and a
// convenience YAML loader/merger, mirroring the defaults-plus-overrides
// pattern this corpus uses for its own settings files.
package config

import (
	"os"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Config is the plain configuration value the session consumes. File
// I/O is an external-collaborator concern; the core only ever consumes
// a *Config value.
type Config struct {
	DeviceMode        string `yaml:"deviceMode"`
	DisableAirStrings bool   `yaml:"disableAirStrings"`

	DivaSerialPort string `yaml:"divaSerialPort"`
	DivaBrightness int    `yaml:"divaBrightness"`

	BrokenithmPort int `yaml:"brokenithmPort"`

	OutputMode          string `yaml:"outputMode"`
	OutputPolling       int    `yaml:"outputPolling"`
	KeyboardSensitivity int    `yaml:"keyboardSensitivity"`
	KeyboardDirectInput bool   `yaml:"keyboardDirectInput"`
	OutputWebsocketURL  string `yaml:"outputWebsocketUrl"`

	LEDMode             string `yaml:"ledMode"`
	LEDFaster           bool   `yaml:"ledFaster"`
	LEDColorActive      string `yaml:"ledColorActive"`
	LEDColorInactive    string `yaml:"ledColorInactive"`
	LEDColorAirActive   string `yaml:"ledColorAirActive"`
	LEDColorAirInactive string `yaml:"ledColorAirInactive"`
	LEDSensitivity      int    `yaml:"ledSensitivity"`
	LEDSerialPort       string `yaml:"ledSerialPort"`
	LEDWebsocketURL     string `yaml:"ledWebsocketUrl"`
	LEDUmgrWebsocketPort int   `yaml:"ledUmgrWebsocketPort"`
}

// Default returns the baseline configuration every session starts from.
func Default() *Config {
	return &Config{
		DeviceMode:          "none",
		DivaBrightness:      63,
		BrokenithmPort:      1606,
		OutputMode:          "none",
		OutputPolling:       250,
		KeyboardSensitivity: 20,
		LEDMode:             "none",
		LEDColorActive:      "#ff00ff",
		LEDColorInactive:    "#000000",
		LEDColorAirActive:   "#00ffff",
		LEDColorAirInactive: "#000000",
		LEDSensitivity:      20,
	}
}

// Load reads a YAML override file and merges it onto Default(). A
// missing file is not an error: Load returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveOverrides writes only the fields of cfg that differ from
// Default() to path, so a fresh default later picks up new fields
// automatically.
func SaveOverrides(path string, cfg *Config) error {
	def := Default()
	overrides := diff(def, cfg)

	data, err := yaml.Marshal(overrides)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// diff builds a map of only the fields where cfg differs from def,
// keyed by yaml tag.
func diff(def, cfg *Config) map[string]any {
	out := map[string]any{}

	dv := reflect.ValueOf(*def)
	cv := reflect.ValueOf(*cfg)
	t := dv.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("yaml")
		if tag == "" {
			tag = field.Name
		}
		dfield := dv.Field(i).Interface()
		cfield := cv.Field(i).Interface()
		if !reflect.DeepEqual(dfield, cfield) {
			out[tag] = cfield
		}
	}

	return out
}
