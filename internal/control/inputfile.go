package control

import (
	"fmt"
	"strings"
)

// ModelType identifies the groundwater model family the interpolator
// writes parameters for.
type ModelType string

const (
	ModelMODFLOW ModelType = "MODFLOW"
	ModelIWFM    ModelType = "IWFM"
)

// ConfigError reports an invalid control-file configuration, such as a
// missing pre-processor file for an IWFM model.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// Options configures a new InputFile. Zero-valued numeric fields fall back
// to the interpolator's documented defaults via the Default* constants.
type Options struct {
	WellLogFile string
	UnitFile    string
	SimFile     string
	PreprocFile string
	TemplFile   string
	PPZoneFile  string

	XOff     float64
	YOff     float64
	Rotation float64

	FullOutput bool

	VariogramType int
	Sill          float64
	RangeMax      float64
	RangeMin      float64
	Anisotropy    float64
	Nugget        float64
	NKrigeWells   int

	KCk float64
	KFk float64
	KHp float64
	KVp float64
	Syp float64
}

// Interpolator defaults for the variogram and global settings.
const (
	DefaultVariogramType = 1
	DefaultSill          = 1.0
	DefaultRange         = 1e7
	DefaultNKrigeWells   = 16
	DefaultKCk           = 0.007
	DefaultKFk           = 0.0099
	DefaultKHp           = 0.93
	DefaultKVp           = -0.62
	DefaultSyp           = 1.0
)

// DefaultOptions returns Options populated with the interpolator defaults.
func DefaultOptions() Options {
	return Options{
		VariogramType: DefaultVariogramType,
		Sill:          DefaultSill,
		RangeMax:      DefaultRange,
		RangeMin:      DefaultRange,
		NKrigeWells:   DefaultNKrigeWells,
		KCk:           DefaultKCk,
		KFk:           DefaultKFk,
		KHp:           DefaultKHp,
		KVp:           DefaultKVp,
		Syp:           DefaultSyp,
	}
}

// InputFile is the full control-file state: model paths, the detected model
// family, the global parameter catalog, and the aquifer and aquitard pilot
// point collections. Construct once, append pilot points, serialize any
// number of times.
type InputFile struct {
	Model ModelType

	WellLogFile string
	UnitFile    string
	SimFile     string
	PreprocFile string
	TemplFile   string
	PPZoneFile  string

	XOff     float64
	YOff     float64
	Rotation float64

	FullOutput    bool
	VariogramType int

	// Globals holds the variogram and global-exponent parameters, all
	// template-eligible.
	Globals *Catalog

	Aquifer  []*PilotPoint
	Aquitard []*PilotPoint
}

// NewInputFile builds a control-file model. The model family is detected
// from the simulation file's extension: ".nam" selects MODFLOW, anything
// else selects IWFM, which additionally requires a pre-processor file.
func NewInputFile(opts Options) (*InputFile, error) {
	f := &InputFile{
		WellLogFile:   opts.WellLogFile,
		UnitFile:      opts.UnitFile,
		SimFile:       opts.SimFile,
		PreprocFile:   opts.PreprocFile,
		TemplFile:     opts.TemplFile,
		PPZoneFile:    opts.PPZoneFile,
		XOff:          opts.XOff,
		YOff:          opts.YOff,
		Rotation:      opts.Rotation,
		FullOutput:    opts.FullOutput,
		VariogramType: opts.VariogramType,
		Globals: NewCatalog(
			&Parameter{Name: "sill", Format: valueFloatFormat, Value: opts.Sill},
			&Parameter{Name: "range_max", Format: valueSciFormat, Value: opts.RangeMax},
			&Parameter{Name: "range_min", Format: valueSciFormat, Value: opts.RangeMin},
			&Parameter{Name: "anisotropy", Format: valueFloatFormat, Value: opts.Anisotropy},
			&Parameter{Name: "nugget", Format: valueFloatFormat, Value: opts.Nugget},
			&Parameter{Name: "nkrige_wells", Format: "%d", Value: float64(opts.NKrigeWells)},
			&Parameter{Name: "KCk", Format: valueFloatFormat, Value: opts.KCk},
			&Parameter{Name: "KFk", Format: valueFloatFormat, Value: opts.KFk},
			&Parameter{Name: "KHp", Format: valueFloatFormat, Value: opts.KHp},
			&Parameter{Name: "KVp", Format: valueFloatFormat, Value: opts.KVp},
			&Parameter{Name: "Syp", Format: valueFloatFormat, Value: opts.Syp},
		),
	}

	if strings.TrimPrefix(extension(opts.SimFile), ".") == "nam" {
		f.Model = ModelMODFLOW
	} else {
		f.Model = ModelIWFM
		if opts.PreprocFile == "" {
			return nil, &ConfigError{msg: "pre-processor file cannot be empty for IWFM"}
		}
	}
	return f, nil
}

func extension(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return path[i:]
}

// AddPilotPoint appends an aquifer pilot point.
func (f *InputFile) AddPilotPoint(x, y float64, zone int, h Hydraulics, s Storage) {
	f.Aquifer = append(f.Aquifer, NewPilotPoint(x, y, zone, h, s))
}

// AddAquitardPilotPoint appends an aquitard pilot point (no storage
// parameters).
func (f *InputFile) AddAquitardPilotPoint(x, y float64, zone int, h Hydraulics) {
	f.Aquitard = append(f.Aquitard, NewAquitardPilotPoint(x, y, zone, h))
}

// SelectParameters flags the named global parameters for estimation.
func (f *InputFile) SelectParameters(names ...string) error {
	return f.Globals.Select(names...)
}

// SelectPilotParameters flags the named hydraulic parameters for estimation
// on every pilot point of the chosen collection.
func (f *InputFile) SelectPilotParameters(names []string, aquitard bool) error {
	points := f.Aquifer
	if aquitard {
		points = f.Aquitard
	}
	for _, pp := range points {
		if err := pp.Params.Select(names...); err != nil {
			return err
		}
	}
	return nil
}

// NumPilotPoints returns the aquifer and aquitard pilot point counts.
func (f *InputFile) NumPilotPoints() (aquifer, aquitard int) {
	return len(f.Aquifer), len(f.Aquitard)
}

// String identifies the model for status messages.
func (f *InputFile) String() string {
	return fmt.Sprintf("%s control file (%d aquifer, %d aquitard pilot points)",
		f.Model, len(f.Aquifer), len(f.Aquitard))
}
