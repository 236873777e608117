package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Controller ControllerConfig `yaml:"controller"`
	Source     SourceConfig     `yaml:"source"`
	Topology   TopologyConfig   `yaml:"topology"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr        string   `yaml:"addr" validate:"required"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// ControllerConfig describes the OpenDaylight controller
type ControllerConfig struct {
	BaseURL       string   `yaml:"base_url" validate:"omitempty,url"`
	TopologyID    string   `yaml:"topology_id" validate:"required"`
	FetchTimeout  Duration `yaml:"fetch_timeout" validate:"gt=0"`
	MonitorPeriod Duration `yaml:"monitor_period" validate:"gt=0"`
	// Bootstrapped assumes the bootstrapping application is already active
	Bootstrapped bool `yaml:"bootstrapped"`
}

// Source types
const (
	SourceRestconf = "restconf"
	SourceFile     = "file"
)

// SourceConfig selects where controller documents come from
type SourceConfig struct {
	Type string `yaml:"type" validate:"oneof=restconf file"`
	// Dir is the fixture directory for the file source
	Dir string `yaml:"dir,omitempty"`
}

// TopologyConfig tunes graph construction
type TopologyConfig struct {
	ManagementNode  string `yaml:"management_node"`
	PruneDownLinks  bool   `yaml:"prune_down_links"`
	AnnotateTraffic *bool  `yaml:"annotate_traffic,omitempty"` // nil = true
}

// RefreshConfig controls background re-aggregation
type RefreshConfig struct {
	// Interval between refreshes; zero refreshes only on fixture changes
	Interval Duration `yaml:"interval" validate:"gte=0"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File    string `yaml:"file,omitempty"`
	MaxSize int    `yaml:"max_size" validate:"gte=0"` // megabytes
	MaxAge  int    `yaml:"max_age" validate:"gte=0"`  // days
}

// TrafficAnnotations reports whether edge tooltips carry traffic counters
func (t TopologyConfig) TrafficAnnotations() bool {
	return t.AnnotateTraffic == nil || *t.AnnotateTraffic
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
