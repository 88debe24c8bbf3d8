// Package config loads the JSON run configuration shared by every texprep
// subcommand. Fields omitted from the file keep their defaults, so partial
// configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hydrostrat/texprep/internal/control"
	"github.com/hydrostrat/texprep/internal/texture"
)

// RunConfig is the root configuration. Pointer fields distinguish "not set"
// from a zero value; the Get* accessors supply defaults.
type RunConfig struct {
	// Dataset schema
	Classes  []string `json:"classes,omitempty"`
	Variance *bool    `json:"variance,omitempty"`
	Layers   *int     `json:"layers,omitempty"`

	// Files
	DatabaseFile *string `json:"database_file,omitempty"`
	WellLogFile  *string `json:"well_log_file,omitempty"`
	UnitFile     *string `json:"unit_file,omitempty"`
	SimFile      *string `json:"sim_file,omitempty"`
	PreprocFile  *string `json:"preproc_file,omitempty"`
	TemplFile    *string `json:"template_file,omitempty"`
	PPZoneFile   *string `json:"pp_zone_file,omitempty"`

	// MODFLOW grid placement
	XOff     *float64 `json:"xoff,omitempty"`
	YOff     *float64 `json:"yoff,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`

	// Program settings
	FullOutput *bool `json:"full_output,omitempty"`

	// Variogram settings
	VariogramType *int     `json:"variogram_type,omitempty"`
	Sill          *float64 `json:"sill,omitempty"`
	RangeMax      *float64 `json:"range_max,omitempty"`
	RangeMin      *float64 `json:"range_min,omitempty"`
	Anisotropy    *float64 `json:"anisotropy,omitempty"`
	Nugget        *float64 `json:"nugget,omitempty"`
	NKrigeWells   *int     `json:"nkrige_wells,omitempty"`

	// Global exponents
	KCk *float64 `json:"kck,omitempty"`
	KFk *float64 `json:"kfk,omitempty"`
	KHp *float64 `json:"khp,omitempty"`
	KVp *float64 `json:"kvp,omitempty"`
	Syp *float64 `json:"syp,omitempty"`

	// Parameter estimation
	EstimateParameters         []string `json:"estimate_parameters,omitempty"`
	PilotEstimateParameters    []string `json:"pilot_estimate_parameters,omitempty"`
	AquitardEstimateParameters []string `json:"aquitard_estimate_parameters,omitempty"`
	TemplateDelimiter          *string  `json:"template_delimiter,omitempty"`

	// Dataset serialization
	MissingMarker *string `json:"missing_marker,omitempty"`
	FloatFormat   *string `json:"float_format,omitempty"`
}

// Load reads and validates a RunConfig from a JSON file.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *RunConfig) Validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("classes must name at least one classification column")
	}
	if c.Layers != nil && *c.Layers < 0 {
		return fmt.Errorf("layers must be non-negative, got %d", *c.Layers)
	}
	if c.VariogramType != nil && *c.VariogramType < 1 {
		return fmt.Errorf("variogram_type must be positive, got %d", *c.VariogramType)
	}
	if c.NKrigeWells != nil && *c.NKrigeWells < 1 {
		return fmt.Errorf("nkrige_wells must be positive, got %d", *c.NKrigeWells)
	}
	if c.TemplateDelimiter != nil && len(*c.TemplateDelimiter) != 1 {
		return fmt.Errorf("template_delimiter must be a single character, got %q", *c.TemplateDelimiter)
	}
	return nil
}

// Schema builds the dataset schema the config describes.
func (c *RunConfig) Schema() texture.Schema {
	s := texture.Schema{Classes: c.Classes}
	if c.Variance != nil {
		s.Variance = *c.Variance
	}
	if c.Layers != nil {
		s.Layers = *c.Layers
	}
	return s
}

// ControlOptions builds the control-file options the config describes,
// starting from the interpolator defaults.
func (c *RunConfig) ControlOptions() control.Options {
	o := control.DefaultOptions()
	o.WellLogFile = c.GetWellLogFile()
	o.UnitFile = strOr(c.UnitFile, "")
	o.SimFile = strOr(c.SimFile, "")
	o.PreprocFile = strOr(c.PreprocFile, "")
	o.TemplFile = strOr(c.TemplFile, "")
	o.PPZoneFile = strOr(c.PPZoneFile, "")
	o.XOff = floatOr(c.XOff, 0)
	o.YOff = floatOr(c.YOff, 0)
	o.Rotation = floatOr(c.Rotation, 0)
	if c.FullOutput != nil {
		o.FullOutput = *c.FullOutput
	}
	if c.VariogramType != nil {
		o.VariogramType = *c.VariogramType
	}
	o.Sill = floatOr(c.Sill, o.Sill)
	o.RangeMax = floatOr(c.RangeMax, o.RangeMax)
	o.RangeMin = floatOr(c.RangeMin, o.RangeMin)
	o.Anisotropy = floatOr(c.Anisotropy, o.Anisotropy)
	o.Nugget = floatOr(c.Nugget, o.Nugget)
	if c.NKrigeWells != nil {
		o.NKrigeWells = *c.NKrigeWells
	}
	o.KCk = floatOr(c.KCk, o.KCk)
	o.KFk = floatOr(c.KFk, o.KFk)
	o.KHp = floatOr(c.KHp, o.KHp)
	o.KVp = floatOr(c.KVp, o.KVp)
	o.Syp = floatOr(c.Syp, o.Syp)
	return o
}

// GetDatabaseFile returns the sqlite path or the default.
func (c *RunConfig) GetDatabaseFile() string {
	return strOr(c.DatabaseFile, "welllogs.db")
}

// GetWellLogFile returns the dataset export path or the default.
func (c *RunConfig) GetWellLogFile() string {
	return strOr(c.WellLogFile, "WellLogs.dat")
}

// GetTemplateDelimiter returns the PEST template delimiter or the default.
func (c *RunConfig) GetTemplateDelimiter() string {
	return strOr(c.TemplateDelimiter, "$")
}

// GetMissingMarker returns the on-disk missing-value marker or the default.
func (c *RunConfig) GetMissingMarker() string {
	return strOr(c.MissingMarker, "-999")
}

// GetFloatFormat returns the dataset float verb or the default.
func (c *RunConfig) GetFloatFormat() string {
	return strOr(c.FloatFormat, "%.5f")
}

func strOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
