package control

import (
	"fmt"
	"strings"
)

// Pilot point field formats, fixed by the interpolator's reader.
const (
	ppFloatFormat = "%.2f"
	ppSciFormat   = "%.3e"
	ppIntFormat   = "%d"
)

// Hydraulics is the parameter payload every pilot point carries: coarse and
// fine hydraulic conductivity minimum and delta, and anisotropy.
type Hydraulics struct {
	KCMin   float64
	DeltaKC float64
	KFMin   float64
	DeltaKF float64
	AnisoC  float64
	AnisoF  float64
}

// Storage is the storage-parameter payload carried by aquifer pilot points
// only: specific storage and specific yield, coarse and fine.
type Storage struct {
	SsC float64
	SsF float64
	SyC float64
	SyF float64
}

// PilotPoint is a spatial parameter-estimation node: coordinates, a zone
// code, and an ordered catalog of hydraulic parameters. Aquitard points
// omit the storage payload; serialization dispatches on its presence.
type PilotPoint struct {
	X    float64
	Y    float64
	Zone int

	// Params is the ordered hydraulic parameter catalog; each entry can be
	// independently selected for estimation.
	Params *Catalog

	storage bool
}

// NewPilotPoint creates an aquifer pilot point with full storage
// parameters.
func NewPilotPoint(x, y float64, zone int, h Hydraulics, s Storage) *PilotPoint {
	return &PilotPoint{
		X:    x,
		Y:    y,
		Zone: zone,
		Params: NewCatalog(
			&Parameter{Name: "KCMin", Format: ppFloatFormat, Value: h.KCMin},
			&Parameter{Name: "deltaKC", Format: ppFloatFormat, Value: h.DeltaKC},
			&Parameter{Name: "KFMin", Format: ppFloatFormat, Value: h.KFMin},
			&Parameter{Name: "deltaKF", Format: ppFloatFormat, Value: h.DeltaKF},
			&Parameter{Name: "SsC", Format: ppSciFormat, Value: s.SsC},
			&Parameter{Name: "SsF", Format: ppSciFormat, Value: s.SsF},
			&Parameter{Name: "SyC", Format: ppSciFormat, Value: s.SyC},
			&Parameter{Name: "SyF", Format: ppSciFormat, Value: s.SyF},
			&Parameter{Name: "AnisoC", Format: ppFloatFormat, Value: h.AnisoC},
			&Parameter{Name: "AnisoF", Format: ppFloatFormat, Value: h.AnisoF},
		),
		storage: true,
	}
}

// NewAquitardPilotPoint creates a pilot point without storage parameters.
func NewAquitardPilotPoint(x, y float64, zone int, h Hydraulics) *PilotPoint {
	return &PilotPoint{
		X:    x,
		Y:    y,
		Zone: zone,
		Params: NewCatalog(
			&Parameter{Name: "KCMin", Format: ppFloatFormat, Value: h.KCMin},
			&Parameter{Name: "deltaKC", Format: ppFloatFormat, Value: h.DeltaKC},
			&Parameter{Name: "KFMin", Format: ppFloatFormat, Value: h.KFMin},
			&Parameter{Name: "deltaKF", Format: ppFloatFormat, Value: h.DeltaKF},
			&Parameter{Name: "AnisoC", Format: ppFloatFormat, Value: h.AnisoC},
			&Parameter{Name: "AnisoF", Format: ppFloatFormat, Value: h.AnisoF},
		),
	}
}

// HasStorage reports whether the point carries storage parameters (an
// aquifer point).
func (pp *PilotPoint) HasStorage() bool { return pp.storage }

// line renders the pilot point as one space-separated control-file line. In
// template mode, parameters selected for estimation are replaced by
// delimiter-wrapped tokens named "<parameter>_<NN>" where NN is the 1-based
// point number, zero padded.
func (pp *PilotPoint) line(template bool, number int, delim string) string {
	fields := []string{
		fmt.Sprintf(ppFloatFormat, pp.X),
		fmt.Sprintf(ppFloatFormat, pp.Y),
	}
	for _, p := range pp.Params.params {
		if template && p.Estimate {
			token := fmt.Sprintf("%s_%02d", p.Display(), number)
			fields = append(fields, fmt.Sprintf("%s %-12s %s", delim, token, delim))
			continue
		}
		fields = append(fields, p.render())
	}
	fields = append(fields, fmt.Sprintf(ppIntFormat, pp.Zone))
	return strings.Join(fields, " ")
}
