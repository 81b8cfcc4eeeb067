package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/lst.report/internal/units"
)

// Defaults applied by the Get* accessors when a field is omitted.
const (
	DefaultSampleCount = 3
	DefaultCheckNight  = true
	DefaultCSVName     = "modis_inspect_summary.csv"
	DefaultOutputDir   = "."
	DefaultUnits       = units.Celsius
	DefaultQCMask      = 0b11
)

// ErrNoSourceDir is returned by RequireSource when source_dir is unset.
var ErrNoSourceDir = errors.New("source_dir is required")

// InspectConfig is the startup configuration for an inspection run.
// Every field is optional in the JSON file; flags may override them.
type InspectConfig struct {
	// Input
	SourceDir   *string `json:"source_dir,omitempty"`
	SampleCount *int    `json:"sample_count,omitempty"`
	CheckNight  *bool   `json:"check_night,omitempty"`
	QCMask      *int    `json:"qc_mask,omitempty"` // mandatory-QA bits that must be zero

	// Output
	OutputDir *string `json:"output_dir,omitempty"`
	CSVName   *string `json:"csv_name,omitempty"`
	Units     *string `json:"units,omitempty"`
	DBPath    *string `json:"db_path,omitempty"`
	PlotDir   *string `json:"plot_dir,omitempty"`
	ChartPath *string `json:"chart_path,omitempty"`
}

func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// DefaultInspectConfig returns a config with every defaulted field populated.
func DefaultInspectConfig() *InspectConfig {
	return &InspectConfig{
		SampleCount: ptrInt(DefaultSampleCount),
		CheckNight:  ptrBool(DefaultCheckNight),
		QCMask:      ptrInt(DefaultQCMask),
		OutputDir:   ptrString(DefaultOutputDir),
		CSVName:     ptrString(DefaultCSVName),
		Units:       ptrString(DefaultUnits),
	}
}

// LoadInspectConfig loads an InspectConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadInspectConfig(path string) (*InspectConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &InspectConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that are set. Unset fields are always valid.
func (c *InspectConfig) Validate() error {
	if c.SampleCount != nil && *c.SampleCount < 1 {
		return fmt.Errorf("sample_count must be at least 1, got %d", *c.SampleCount)
	}
	if c.Units != nil && !units.IsValid(*c.Units) {
		return fmt.Errorf("units must be one of %s, got %q", units.GetValidUnitsString(), *c.Units)
	}
	if c.QCMask != nil && (*c.QCMask < 0 || *c.QCMask > 0xff) {
		return fmt.Errorf("qc_mask must fit in 8 bits, got %d", *c.QCMask)
	}
	if c.CSVName != nil {
		name := *c.CSVName
		if name == "" || filepath.Base(name) != name {
			return fmt.Errorf("csv_name must be a bare file name, got %q", name)
		}
	}
	return nil
}

// RequireSource fails unless a source directory has been provided.
func (c *InspectConfig) RequireSource() error {
	if c.GetSourceDir() == "" {
		return ErrNoSourceDir
	}
	return nil
}

// GetSourceDir returns source_dir or "".
func (c *InspectConfig) GetSourceDir() string {
	if c.SourceDir == nil {
		return ""
	}
	return *c.SourceDir
}

// GetSampleCount returns sample_count or the default.
func (c *InspectConfig) GetSampleCount() int {
	if c.SampleCount == nil {
		return DefaultSampleCount
	}
	return *c.SampleCount
}

// GetCheckNight returns check_night or the default.
func (c *InspectConfig) GetCheckNight() bool {
	if c.CheckNight == nil {
		return DefaultCheckNight
	}
	return *c.CheckNight
}

// GetQCMask returns qc_mask or the default.
func (c *InspectConfig) GetQCMask() uint8 {
	if c.QCMask == nil {
		return DefaultQCMask
	}
	return uint8(*c.QCMask)
}

// GetOutputDir returns output_dir or the default.
func (c *InspectConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return DefaultOutputDir
	}
	return *c.OutputDir
}

// GetCSVName returns csv_name or the default.
func (c *InspectConfig) GetCSVName() string {
	if c.CSVName == nil || *c.CSVName == "" {
		return DefaultCSVName
	}
	return *c.CSVName
}

// GetUnits returns units or the default.
func (c *InspectConfig) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return DefaultUnits
	}
	return *c.Units
}

// GetDBPath returns db_path; empty disables persistence.
func (c *InspectConfig) GetDBPath() string {
	if c.DBPath == nil {
		return ""
	}
	return *c.DBPath
}

// GetPlotDir returns plot_dir; empty disables heatmaps.
func (c *InspectConfig) GetPlotDir() string {
	if c.PlotDir == nil {
		return ""
	}
	return *c.PlotDir
}

// GetChartPath returns chart_path; empty disables the HTML chart.
func (c *InspectConfig) GetChartPath() string {
	if c.ChartPath == nil {
		return ""
	}
	return *c.ChartPath
}

// Override describes command-line values that take precedence over the file.
// Nil fields leave the config untouched.
type Override struct {
	SourceDir   *string
	OutputDir   *string
	SampleCount *int
	CheckNight  *bool
	Units       *string
	DBPath      *string
	PlotDir     *string
	ChartPath   *string
}

// Apply copies the non-nil override values into c and revalidates.
func (c *InspectConfig) Apply(o Override) error {
	if o.SourceDir != nil {
		c.SourceDir = o.SourceDir
	}
	if o.OutputDir != nil {
		c.OutputDir = o.OutputDir
	}
	if o.SampleCount != nil {
		c.SampleCount = o.SampleCount
	}
	if o.CheckNight != nil {
		c.CheckNight = o.CheckNight
	}
	if o.Units != nil {
		c.Units = o.Units
	}
	if o.DBPath != nil {
		c.DBPath = o.DBPath
	}
	if o.PlotDir != nil {
		c.PlotDir = o.PlotDir
	}
	if o.ChartPath != nil {
		c.ChartPath = o.ChartPath
	}
	return c.Validate()
}
