package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment overrides
const (
	EnvControllerURL = "ICNVIEW_CONTROLLER_URL"
	EnvBootstrapped  = "ICNVIEW_BOOTSTRAPPED"
	EnvLogLevel      = "ICNVIEW_LOG_LEVEL"
	EnvAddr          = "ICNVIEW_ADDR"
	EnvSourceDir     = "ICNVIEW_SOURCE_DIR"
)

// ApplyEnv overrides file values with environment variables. Setting
// ICNVIEW_SOURCE_DIR switches to the file source.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvControllerURL); ok && v != "" {
		c.Controller.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvBootstrapped); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBootstrapped, err)
		}
		c.Controller.Bootstrapped = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvSourceDir); ok && v != "" {
		c.Source.Type = SourceFile
		c.Source.Dir = v
	}
	return nil
}
