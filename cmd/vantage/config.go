package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/pelletier/go-toml/v2"

	"github.com/vantage3d/vantage/core"
)

const defaultConfigFile = "vantage.toml"

var staticResources = packr.NewBox("./assets")

func configPath() string {
	return envy.Get("VANTAGE_CONFIG", defaultConfigFile)
}

// loadConfiguration builds the bootstrap configuration: embedded
// defaults first, then the config file if one is present, then
// environment overrides.
func loadConfiguration(path string) (core.Configuration, error) {
	var cfg core.Configuration
	if err := toml.Unmarshal(staticResources.Bytes(defaultConfigFile), &cfg); err != nil {
		return core.Configuration{}, fmt.Errorf("embedded config: %w", err)
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return core.Configuration{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return core.Configuration{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	applyEnvironment(&cfg)
	return cfg, nil
}

// applyEnvironment lets the environment flip the settings that matter in
// the field without editing the config file.
func applyEnvironment(cfg *core.Configuration) {
	if v := envy.Get("VANTAGE_DIAGNOSTICS", ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Instance.Diagnostics = b
		}
	}
	if v := envy.Get("VANTAGE_TITLE", ""); v != "" {
		cfg.Window.Title = v
	}
}
