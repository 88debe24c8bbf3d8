package control

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Fixed layout of the control file: every data line is padded to the
// comment column and right-commented with "/ <description>".
const commentColumn = 40

// Value formats for the settings sections.
const (
	valueFloatFormat = "%.4f"
	valueSciFormat   = "%.4e"
)

var (
	bannerLine  = "*" + strings.Repeat("=", 79)
	dividerLine = "*" + strings.Repeat("-", 79)
)

const bannerText = "Texture2Par Input File  |  Written by texprep"

var sectionLabels = []string{
	"Model Settings (%s)",
	"Program Settings (True/False)",
	"Variogram Settings",
	"Global Settings",
	"Pilot Points - X  Y  KCMin  deltaKC  KFMin  deltaKF  SsC  SsF  SyC  SyF  AnisoC  AnisoF  Zone",
	"Aquitard Pilot Points - X  Y  KCMin  deltaKC  KFMin  deltaKF  AnisoC  AnisoF  Zone",
}

// WriteFile serializes the control file to path. In template mode,
// parameters selected for estimation are replaced by delimiter-wrapped
// placeholder tokens and the file starts with a "ptf <delim>" marker line.
func (f *InputFile) WriteFile(path string, template bool, delim string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create control file: %w", err)
	}
	defer out.Close()
	if err := f.Write(out, template, delim); err != nil {
		return err
	}
	return nil
}

// Write serializes the control file to w.
func (f *InputFile) Write(w io.Writer, template bool, delim string) error {
	bw := bufio.NewWriter(w)

	if template {
		fmt.Fprintf(bw, "ptf %s\n", delim)
	}

	// Banner and file references.
	fmt.Fprintln(bw, bannerLine)
	fmt.Fprintln(bw, "* "+bannerText)
	fmt.Fprintln(bw, bannerLine)
	writeString(bw, string(f.Model), "Model Type")
	writeString(bw, f.WellLogFile, "Well Log File")
	writeString(bw, f.UnitFile, "Hydrogeologic Units File")

	// Model settings. IWFM interpolates to nodes, MODFLOW to cells.
	writeSectionHeader(bw, fmt.Sprintf(sectionLabels[0], f.Model))
	interpPoint := "Node"
	switch f.Model {
	case ModelIWFM:
		writeString(bw, f.SimFile, "Simulation File")
		writeString(bw, f.PreprocFile, "Pre-processor File")
		writeString(bw, f.TemplFile, "GW Template File")
		writeString(bw, f.PPZoneFile, "Pilot Point Node Zones File")
	case ModelMODFLOW:
		interpPoint = "Cell"
		writeString(bw, f.SimFile, "Name File")
		writeString(bw, f.TemplFile, "Layer Parameter Template File")
		writeString(bw, f.PPZoneFile, "Pilot Point Node Zones File")
		writeString(bw, fmt.Sprintf(valueFloatFormat, f.XOff), "xOffset")
		writeString(bw, fmt.Sprintf(valueFloatFormat, f.YOff), "yOffset")
		writeString(bw, fmt.Sprintf(valueFloatFormat, f.Rotation), "Rotation")
	}

	// Program settings.
	writeSectionHeader(bw, sectionLabels[1])
	writeString(bw, pyBool(f.FullOutput), fmt.Sprintf("Output %s Files", interpPoint))

	// Variogram settings. The type is not template-eligible; the five
	// numeric fields and the kriging well count are.
	writeSectionHeader(bw, sectionLabels[2])
	writeString(bw, fmt.Sprintf("%d", f.VariogramType), "Variogram Type (itype)")
	f.writeParameter(bw, "sill", "Sill", template, delim)
	f.writeParameter(bw, "range_max", "[Maximum] Range", template, delim)
	f.writeParameter(bw, "range_min", "Minimum Range", template, delim)
	f.writeParameter(bw, "anisotropy", "Anisotropy Angle (from North)", template, delim)
	f.writeParameter(bw, "nugget", "Nugget", template, delim)
	f.writeParameter(bw, "nkrige_wells", "[Maximum] Wells used in kriging", template, delim)

	// Global settings, all template-eligible.
	writeSectionHeader(bw, sectionLabels[3])
	for _, name := range []string{"KCk", "KFk", "KHp", "KVp", "Syp"} {
		f.writeParameter(bw, name, name, template, delim)
	}

	// Pilot points, one line each; template tokens carry the 1-based point
	// number.
	writeSectionHeader(bw, sectionLabels[4])
	for i, pp := range f.Aquifer {
		fmt.Fprintln(bw, pp.line(template, i+1, delim))
	}
	writeSectionHeader(bw, sectionLabels[5])
	for i, pp := range f.Aquitard {
		fmt.Fprintln(bw, pp.line(template, i+1, delim))
	}

	fmt.Fprintln(bw, dividerLine)
	fmt.Fprintln(bw, "* EOF")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write control file: %w", err)
	}
	return nil
}

// writeParameter emits one catalog-backed value line, substituting the
// placeholder token in template mode when the parameter is selected.
func (f *InputFile) writeParameter(bw *bufio.Writer, name, description string, template bool, delim string) {
	p := f.Globals.Get(name)
	line := " " + p.render()
	if template && p.Estimate {
		line = fmt.Sprintf("%s %-12s %s", delim, p.Display(), delim)
	}
	writeLine(bw, line, description)
}

// writeString emits a literal string value line.
func writeString(bw *bufio.Writer, value, description string) {
	writeLine(bw, " "+value, description)
}

// writeLine pads line to the comment column and appends the description.
// Lines already past the column get the comment appended immediately, with
// no truncation.
func writeLine(bw *bufio.Writer, line, description string) {
	if pad := commentColumn - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	fmt.Fprintf(bw, "%s/ %s\n", line, description)
}

func writeSectionHeader(bw *bufio.Writer, label string) {
	fmt.Fprintln(bw, dividerLine)
	fmt.Fprintln(bw, "* "+label)
	fmt.Fprintln(bw, dividerLine)
}

// pyBool renders a flag the way the interpolator's reader expects it.
func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
