// Command texprep prepares well lithology logs for the Texture2Par
// interpolator: it ingests raw well-log tables into a local dataset,
// exports the interpolator's well-log file, and writes the control file in
// literal or PEST template form.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/hydrostrat/texprep/internal/config"
	"github.com/hydrostrat/texprep/internal/control"
	"github.com/hydrostrat/texprep/internal/report"
	"github.com/hydrostrat/texprep/internal/store"
	"github.com/hydrostrat/texprep/internal/texture"
	"github.com/hydrostrat/texprep/internal/units"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: texprep <command> [flags]

Commands:
  ingest    Reconcile a raw well-log table and merge it into the dataset
  export    Write the dataset as the interpolator's well-log file
  control   Write the Texture2Par control file
  template  Write the PEST template variant of the control file
  wellmap   Render an HTML map of distinct well locations
  migrate   Run or inspect dataset database migrations
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "ingest":
		err = runIngest(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "control":
		err = runControl(os.Args[2:], false)
	case "template":
		err = runControl(os.Args[2:], true)
	case "wellmap":
		err = runWellMap(os.Args[2:])
	case "migrate":
		err = runMigrate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("texprep %s: %v", os.Args[1], err)
	}
}

func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", "texprep.json", "run configuration file")
	in := fs.String("in", "", "raw well-log table (delimited, header line first)")
	delim := fs.String("delim", "\t", "raw table field delimiter")
	unit := fs.String("units", units.Meters, "depth/elevation units of the raw table (m or ft)")
	nameCol := fs.String("name", "Name", "well name column")
	xCol := fs.String("x", "X", "x coordinate column")
	yCol := fs.String("y", "Y", "y coordinate column")
	zlandCol := fs.String("zland", "Zland", "land-surface elevation column")
	depthCol := fs.String("depth", "Depth", "interval bottom depth column")
	topCol := fs.String("top", "", "interval top depth column (enables gap filling)")
	pointCol := fs.String("point", "", "explicit per-well point index column")
	fill := fs.Bool("fill", true, "fill interval gaps with missing-valued rows")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	if !units.IsValid(*unit) {
		return fmt.Errorf("invalid units %q (valid: %v)", *unit, units.ValidUnits)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.GetDatabaseFile())
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := st.LoadTable(cfg.Schema())
	if err != nil {
		return err
	}
	rowsBefore, maxBefore := table.Len(), table.MaxID()

	frame, err := texture.ReadFrame(*in, *delim)
	if err != nil {
		return err
	}
	if err := convertColumns(frame, *unit, *zlandCol, *depthCol, *topCol); err != nil {
		return err
	}

	err = table.AddWells(frame, texture.ColumnMap{
		Name:     *nameCol,
		X:        *xCol,
		Y:        *yCol,
		Zland:    *zlandCol,
		Depth:    *depthCol,
		DepthTop: *topCol,
		Point:    *pointCol,
	}, *fill)
	if err != nil {
		return err
	}

	added := table.Rows()[rowsBefore:]
	batch := store.Batch{
		ID:         uuid.NewString(),
		SourceFile: *in,
		Rows:       len(added),
		Wells:      table.MaxID() - maxBefore,
	}
	if err := st.AppendRows(added, batch.ID); err != nil {
		return err
	}
	if err := st.RecordBatch(batch); err != nil {
		return err
	}

	log.Printf("Merged batch %s: %d rows, %d wells (dataset now %d rows, max ID %d)",
		batch.ID, batch.Rows, batch.Wells, table.Len(), table.MaxID())
	for _, s := range table.Summary() {
		log.Printf("  %s: n=%d missing=%d mean=%.3f sd=%.3f", s.Class, s.Count, s.Missing, s.Mean, s.StdDev)
	}
	return nil
}

// convertColumns rewrites the named frame columns into meters when the raw
// table is logged in another unit. Missing markers pass through untouched.
func convertColumns(frame *texture.Frame, unit string, cols ...string) error {
	if unit == units.Meters {
		return nil
	}
	for _, name := range cols {
		if name == "" {
			continue
		}
		idx := frame.Index(name)
		if idx < 0 {
			continue
		}
		for _, rec := range frame.Records {
			v, err := frame.Float(rec, idx)
			if err != nil {
				return err
			}
			if texture.IsMissing(v) {
				continue
			}
			rec[idx] = strconv.FormatFloat(units.ToMeters(v, unit), 'f', -1, 64)
		}
	}
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "texprep.json", "run configuration file")
	out := fs.String("out", "", "output dataset file (defaults to the configured well-log file)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = cfg.GetWellLogFile()
	}

	st, err := store.Open(cfg.GetDatabaseFile())
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := st.LoadTable(cfg.Schema())
	if err != nil {
		return err
	}
	if err := table.WriteFile(*out, texture.WriteOptions{
		Missing:     cfg.GetMissingMarker(),
		FloatFormat: cfg.GetFloatFormat(),
	}); err != nil {
		return err
	}
	log.Printf("Wrote %d rows (%d wells) to %s", table.Len(), table.MaxID(), *out)
	return nil
}

func runControl(args []string, template bool) error {
	fs := flag.NewFlagSet("control", flag.ExitOnError)
	configPath := fs.String("config", "texprep.json", "run configuration file")
	out := fs.String("out", "Texture2Par.in", "output control file")
	delim := fs.String("delim", "", "template placeholder delimiter (overrides config)")
	aquiferPP := fs.String("pp", "", "aquifer pilot point table (delimited, header line first)")
	aquitardPP := fs.String("app", "", "aquitard pilot point table")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *delim == "" {
		*delim = cfg.GetTemplateDelimiter()
	}

	f, err := control.NewInputFile(cfg.ControlOptions())
	if err != nil {
		return err
	}
	log.Printf("Detected Model Type is: %s", f.Model)

	if *aquiferPP != "" {
		if err := loadPilotPoints(f, *aquiferPP, false); err != nil {
			return err
		}
	}
	if *aquitardPP != "" {
		if err := loadPilotPoints(f, *aquitardPP, true); err != nil {
			return err
		}
	}

	if template {
		if len(cfg.EstimateParameters) > 0 {
			if err := f.SelectParameters(cfg.EstimateParameters...); err != nil {
				return err
			}
		}
		if len(cfg.PilotEstimateParameters) > 0 {
			if err := f.SelectPilotParameters(cfg.PilotEstimateParameters, false); err != nil {
				return err
			}
		}
		if len(cfg.AquitardEstimateParameters) > 0 {
			if err := f.SelectPilotParameters(cfg.AquitardEstimateParameters, true); err != nil {
				return err
			}
		}
	}

	if err := f.WriteFile(*out, template, *delim); err != nil {
		return err
	}
	na, nt := f.NumPilotPoints()
	log.Printf("Wrote %s (%d aquifer, %d aquitard pilot points) to %s", f.Model, na, nt, *out)
	return nil
}

// loadPilotPoints reads a delimited pilot point table. Aquifer tables need
// columns X Y KCMin deltaKC KFMin deltaKF SsC SsF SyC SyF AnisoC AnisoF and
// optionally Zone; aquitard tables omit the storage columns.
func loadPilotPoints(f *control.InputFile, path string, aquitard bool) error {
	frame, err := texture.ReadFrame(path, "\t")
	if err != nil {
		return err
	}

	required := []string{"X", "Y", "KCMin", "deltaKC", "KFMin", "deltaKF", "AnisoC", "AnisoF"}
	if !aquitard {
		required = append(required, "SsC", "SsF", "SyC", "SyF")
	}
	for _, col := range required {
		if !frame.Has(col) {
			return fmt.Errorf("pilot point table %s is missing column %q", path, col)
		}
	}

	get := func(rec []string, col string) (float64, error) {
		return frame.Float(rec, frame.Index(col))
	}
	for _, rec := range frame.Records {
		var h control.Hydraulics
		var s control.Storage
		var err error
		if h.KCMin, err = get(rec, "KCMin"); err != nil {
			return err
		}
		if h.DeltaKC, err = get(rec, "deltaKC"); err != nil {
			return err
		}
		if h.KFMin, err = get(rec, "KFMin"); err != nil {
			return err
		}
		if h.DeltaKF, err = get(rec, "deltaKF"); err != nil {
			return err
		}
		if h.AnisoC, err = get(rec, "AnisoC"); err != nil {
			return err
		}
		if h.AnisoF, err = get(rec, "AnisoF"); err != nil {
			return err
		}
		x, err := get(rec, "X")
		if err != nil {
			return err
		}
		y, err := get(rec, "Y")
		if err != nil {
			return err
		}
		zone := 1
		if frame.Has("Zone") {
			if zone, err = frame.Int(rec, frame.Index("Zone")); err != nil {
				return err
			}
		}
		if aquitard {
			f.AddAquitardPilotPoint(x, y, zone, h)
			continue
		}
		if s.SsC, err = get(rec, "SsC"); err != nil {
			return err
		}
		if s.SsF, err = get(rec, "SsF"); err != nil {
			return err
		}
		if s.SyC, err = get(rec, "SyC"); err != nil {
			return err
		}
		if s.SyF, err = get(rec, "SyF"); err != nil {
			return err
		}
		f.AddPilotPoint(x, y, zone, h, s)
	}
	return nil
}

func runWellMap(args []string) error {
	fs := flag.NewFlagSet("wellmap", flag.ExitOnError)
	configPath := fs.String("config", "texprep.json", "run configuration file")
	out := fs.String("out", "wells.html", "output HTML file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.GetDatabaseFile())
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := st.LoadTable(cfg.Schema())
	if err != nil {
		return err
	}
	coords := table.WellCoords()
	if err := report.WriteWellMap(*out, coords); err != nil {
		return err
	}
	log.Printf("Wrote map of %d wells to %s", len(coords), *out)
	return nil
}

func runMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", "texprep.json", "run configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.GetDatabaseFile())
	if err != nil {
		return err
	}
	defer st.Close()

	sub := "status"
	if fs.NArg() > 0 {
		sub = fs.Arg(0)
	}
	switch sub {
	case "up":
		if err := st.MigrateUp(); err != nil {
			return err
		}
		fallthrough
	case "status":
		version, dirty, err := st.MigrateVersion()
		if err != nil {
			return err
		}
		log.Printf("Database %s at migration version %d (dirty=%v)", cfg.GetDatabaseFile(), version, dirty)
	default:
		return fmt.Errorf("unknown migrate command %q", sub)
	}
	return nil
}
