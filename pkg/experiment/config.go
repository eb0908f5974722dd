package experiment

import (
	"flag"
	"io/ioutil"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config defines the harness configuration. Defaults come from flags;
// a YAML file, when given, overrides flags for the fields it sets.
type Config struct {
	// TickMs is the scheduler cycle length in milliseconds.
	TickMs int `yaml:"tick_ms"`
	// Flash selects the device: "mem" for the built-in simulation, or
	// a tcp:// / ws:// endpoint served by flashsimd or real hardware.
	Flash string `yaml:"flash"`
	// MQTTURL enables telemetry when non-empty.
	MQTTURL string `yaml:"mqtt_url"`
	// Interactive runs the operator shell on stdin.
	Interactive bool `yaml:"interactive"`
}

var defaultConfig = Config{
	TickMs:      10,
	Flash:       "mem",
	Interactive: true,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.TickMs, "tick-ms", defaultConfig.TickMs, "Scheduler cycle length (ms).")
	flag.StringVar(&defaultConfig.Flash, "flash", defaultConfig.Flash, "Flash device: mem, tcp://host:port or ws://host:port/path.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL for telemetry, empty to disable.")
	flag.BoolVar(&defaultConfig.Interactive, "interactive", defaultConfig.Interactive, "Run the operator shell.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// LoadFile merges a YAML config file over the current defaults.
func LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &defaultConfig)
}

// TickInterval returns the cycle length as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}
