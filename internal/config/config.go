package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string        `json:"log_level" yaml:"log_level"`
	Inputs   InputsConfig  `json:"inputs" yaml:"inputs"`
	Periods  PeriodsConfig `json:"periods" yaml:"periods"`
	Report   ReportConfig  `json:"report" yaml:"report"`
}

type InputsConfig struct {
	Mapping  string   `json:"mapping" yaml:"mapping"`
	FDD      []string `json:"fdd" yaml:"fdd"`
	TDD      []string `json:"tdd" yaml:"tdd"`
	GSM      []string `json:"gsm" yaml:"gsm"`
	Coverage string   `json:"coverage" yaml:"coverage"`
}

type PeriodsConfig struct {
	Mode        string `json:"mode" yaml:"mode"` // "rolling" or "calendar"
	WindowDays  int    `json:"window_days" yaml:"window_days"`
	WindowCount int    `json:"window_count" yaml:"window_count"`
}

type ReportConfig struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
	Workers    int    `json:"workers" yaml:"workers"`
}

const (
	PeriodModeRolling  = "rolling"
	PeriodModeCalendar = "calendar"
)

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Periods: PeriodsConfig{
			Mode:        PeriodModeRolling,
			WindowDays:  30,
			WindowCount: 3,
		},
		Report: ReportConfig{
			OutputPath: "kpi_report.xlsx",
			Workers:    1,
		},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Periods.Mode == "" {
		cfg.Periods.Mode = PeriodModeRolling
	}
	if cfg.Periods.WindowDays <= 0 {
		cfg.Periods.WindowDays = 30
	}
	if cfg.Periods.WindowCount <= 0 {
		cfg.Periods.WindowCount = 3
	}
	if cfg.Report.OutputPath == "" {
		cfg.Report.OutputPath = "kpi_report.xlsx"
	}
	if cfg.Report.Workers <= 0 {
		cfg.Report.Workers = 1
	}
}

func Validate(cfg *Config) error {
	if cfg.Inputs.Mapping == "" {
		return errors.New("inputs.mapping is required for cluster resolution")
	}
	if len(cfg.Inputs.FDD)+len(cfg.Inputs.TDD)+len(cfg.Inputs.GSM) == 0 {
		return errors.New("inputs require at least one fdd, tdd, or gsm file")
	}
	if cfg.Periods.Mode != PeriodModeRolling && cfg.Periods.Mode != PeriodModeCalendar {
		return fmt.Errorf("periods.mode must be %q or %q", PeriodModeRolling, PeriodModeCalendar)
	}
	return nil
}
