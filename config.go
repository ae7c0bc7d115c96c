package choreo

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPreviewTPS is the preview cadence used when none is configured.
const DefaultPreviewTPS = 60

// MQTTConfig describes the broker settle events are published to.
type MQTTConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientID"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

// Enabled reports whether a broker URL is configured.
func (c MQTTConfig) Enabled() bool { return c.URL != "" }

// Config holds host-level settings: the time scale applied to scaled frames,
// the preview cadence, debug logging, and optional event telemetry.
type Config struct {
	TimeScale  float64    `yaml:"timeScale"`
	PreviewTPS int        `yaml:"previewTPS"`
	Debug      bool       `yaml:"debug"`
	MQTT       MQTTConfig `yaml:"mqtt"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TimeScale:  1,
		PreviewTPS: DefaultPreviewTPS,
		MQTT: MQTTConfig{
			ClientID: "choreo",
			Topic:    "choreo/events",
		},
	}
}

// LoadConfig decodes YAML from r over DefaultConfig. Keys missing from the
// document keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile opens path and calls LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate rejects settings the drivers cannot honour.
func (c Config) Validate() error {
	if c.TimeScale < 0 {
		return fmt.Errorf("config: timeScale must not be negative, got %v", c.TimeScale)
	}
	if c.PreviewTPS <= 0 {
		return fmt.Errorf("config: previewTPS must be positive, got %d", c.PreviewTPS)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("config: mqtt.qos must be 0, 1, or 2, got %d", c.MQTT.QoS)
	}
	return nil
}

// Clock returns a Clock using the configured time scale.
func (c Config) Clock() *Clock {
	return &Clock{TimeScale: c.TimeScale}
}
