package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/clinic-sim/sim/clinic"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

// Scenario describes one named clinic configuration in a scenario file.
// Times are in minutes.
type Scenario struct {
	Name               string  `yaml:"name"`
	AvgInterArrival    float64 `yaml:"avg_inter_arrival"`
	AvgServiceTime     float64 `yaml:"avg_service_time"`
	Capacity           int     `yaml:"capacity"`
	Horizon            float64 `yaml:"horizon"`
	Seed               *int64  `yaml:"seed"`
	FirstArrivalAtOpen bool    `yaml:"first_arrival_at_open"`
	MonitorInterval    float64 `yaml:"monitor_interval"`
	TraceLevel         string  `yaml:"trace_level"`
}

// ScenarioFile represents the full scenarios.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string     `yaml:"version"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// ClinicConfig converts the scenario into a run configuration.
func (s Scenario) ClinicConfig() clinic.Config {
	return clinic.Config{
		AvgInterArrival:    s.AvgInterArrival,
		AvgServiceTime:     s.AvgServiceTime,
		Capacity:           s.Capacity,
		Horizon:            s.Horizon,
		Seed:               s.Seed,
		FirstArrivalAtOpen: s.FirstArrivalAtOpen,
		MonitorInterval:    s.MonitorInterval,
		TraceLevel:         trace.TraceLevel(s.TraceLevel),
	}
}

// Find returns the scenario with the given name. An empty name selects the first one.
func (f *ScenarioFile) Find(name string) (Scenario, error) {
	if name == "" {
		return f.Scenarios[0], nil
	}
	for _, s := range f.Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario %q not found", name)
}

// loadScenarioFile reads and parses a scenario file.
func loadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	f, err := parseScenarioFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// parseScenarioFile parses scenario YAML with strict field checking: typos must cause errors.
// Every scenario is validated so a bad entry fails before any run starts.
func parseScenarioFile(data []byte) (*ScenarioFile, error) {
	var f ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenario file is empty")
		}
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
		if err := s.ClinicConfig().Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return &f, nil
}
