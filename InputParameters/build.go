package InputParameters

import (
	"fmt"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/FDTD/materials"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

var waveformTypes = map[string]bool{
	"gaussian":            true,
	"gaussiandot":         true,
	"gaussiandotnorm":     true,
	"gaussiandotdot":      true,
	"gaussiandotdotnorm":  true,
	"ricker":              true,
	"gaussianprime":       true,
	"gaussiandoubleprime": true,
	"sine":                true,
	"contsine":            true,
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), FDTD.ErrConfiguration)
}

/*
BuildGrid validates the input and returns a grid with its scalars and object lists
set and its material registry filled. Arrays are not allocated; callers finish with
Grid.Allocate once any further setup is done.
*/
func (ip *ModelInput) BuildGrid() (g *FDTD.Grid, err error) {
	g = FDTD.NewGrid()
	g.Title = ip.Title
	g.InputDirectory = ip.inputDirectory()
	g.NThreads = ip.NumThreads
	if ip.Messages != nil {
		g.Messages = *ip.Messages
	}
	if ip.AverageVolumeObjects != nil {
		g.AverageVolumeObjects = *ip.AverageVolumeObjects
	}
	steps := []func(g *FDTD.Grid) error{
		ip.setDiscretisation,
		ip.setTime,
		ip.setPML,
		ip.setMaterials,
		ip.setWaveforms,
		ip.setSources,
		ip.setReceivers,
		ip.setOutputs,
		ip.setFractalVolumes,
	}
	for _, step := range steps {
		if err = step(g); err != nil {
			return nil, err
		}
	}
	return
}

func (ip *ModelInput) setDiscretisation(g *FDTD.Grid) (err error) {
	for i := 0; i < 3; i++ {
		if !(ip.DxDyDz[i] > 0) {
			return invalid("cell size along %s must be positive, have %g", types.Axis(i), ip.DxDyDz[i])
		}
		if ip.Domain[i] < 0 {
			return invalid("domain size along %s must be >= 0, have %g", types.Axis(i), ip.Domain[i])
		}
	}
	g.Dx, g.Dy, g.Dz = ip.DxDyDz[0], ip.DxDyDz[1], ip.DxDyDz[2]
	g.Nx = utils.RoundHalfDown(ip.Domain[0] / g.Dx)
	g.Ny = utils.RoundHalfDown(ip.Domain[1] / g.Dy)
	g.Nz = utils.RoundHalfDown(ip.Domain[2] / g.Dz)
	return
}

func (ip *ModelInput) setTime(g *FDTD.Grid) (err error) {
	factor := ip.TimeStepStabilityFactor
	if factor == 0 {
		factor = 1
	}
	if err = g.CalculateDt(factor); err != nil {
		return
	}
	switch {
	case ip.TimeWindow != 0 && ip.Iterations != 0:
		return invalid("give either TimeWindow or Iterations, not both")
	case ip.Iterations != 0:
		return g.SetIterations(ip.Iterations)
	case ip.TimeWindow != 0:
		return g.SetTimeWindow(ip.TimeWindow)
	}
	return invalid("one of TimeWindow or Iterations is required")
}

func (ip *ModelInput) setPML(g *FDTD.Grid) (err error) {
	switch len(ip.PMLCells) {
	case 0:
	case 1:
		for f := range g.PMLThickness {
			g.PMLThickness[f] = ip.PMLCells[0]
		}
	case types.NumFaces:
		copy(g.PMLThickness[:], ip.PMLCells)
	default:
		return invalid("PMLCells takes one or six values, have %d", len(ip.PMLCells))
	}
	n := [3]int{g.Nx, g.Ny, g.Nz}
	for f := range g.PMLThickness {
		face := types.Face(f)
		if g.PMLThickness[f] < 0 {
			return invalid("PML thickness on face %s must be >= 0", face)
		}
		// A degenerate axis has no boundary to absorb at
		if n[face.Axis()] == 0 {
			g.PMLThickness[f] = 0
		}
	}
	for a := 0; a < 3; a++ {
		lo, hi := g.PMLThickness[2*a], g.PMLThickness[2*a+1]
		if n[a] != 0 && lo+hi >= n[a] {
			return invalid("PML of %d+%d cells does not fit the %d cells along %s", lo, hi, n[a], types.Axis(a))
		}
	}
	g.CFS = ip.CFS
	for f, thickness := range g.PMLThickness {
		if thickness == 0 {
			continue
		}
		g.PMLs = append(g.PMLs, FDTD.PML{Face: types.Face(f), Thickness: thickness, CFS: g.CFS})
	}
	return
}

func (ip *ModelInput) setMaterials(g *FDTD.Grid) (err error) {
	var maxPoles int
	if ip.MaxPoles != nil {
		maxPoles = *ip.MaxPoles
	} else {
		for _, mi := range ip.Materials {
			if len(mi.Poles) > maxPoles {
				maxPoles = len(mi.Poles)
			}
		}
	}
	if g.Materials, err = materials.NewDefaultRegistry(maxPoles); err != nil {
		return
	}
	for _, mi := range ip.Materials {
		m := materials.NewMaterial(mi.ID)
		m.Se, m.Sm = mi.Se, mi.Sm
		// Omitted relative values keep the vacuum default of one
		if mi.Er != 0 {
			m.Er = mi.Er
		}
		if mi.Mr != 0 {
			m.Mr = mi.Mr
		}
		if mi.Averagable != nil {
			m.Averagable = *mi.Averagable
		}
		if m.Type, err = materials.ParseDispersionType(mi.Dispersion); err != nil {
			return fmt.Errorf("material %q: %w", mi.ID, err)
		}
		for _, p := range mi.Poles {
			m.Poles = append(m.Poles, materials.Pole{DeltaEr: p.DeltaEr, Tau: p.Tau, Alpha: p.Alpha})
		}
		if _, err = g.Materials.Add(m); err != nil {
			return
		}
	}
	seen := make(map[string]bool)
	for _, mm := range ip.MixingModels {
		if len(mm.ID) == 0 || seen[mm.ID] {
			return invalid("mixing model identifier %q is missing or repeated", mm.ID)
		}
		if _, clash := g.Materials.Get(mm.ID); clash {
			return invalid("mixing model %q has the name of a material", mm.ID)
		}
		if mm.SandFraction < 0 || mm.ClayFraction < 0 || mm.SandFraction+mm.ClayFraction > 1 {
			return invalid("mixing model %q sand and clay fractions must lie in [0, 1]", mm.ID)
		}
		if mm.WaterFractionLower > mm.WaterFractionUpper {
			return invalid("mixing model %q water fraction range is inverted", mm.ID)
		}
		seen[mm.ID] = true
		g.MixingModels = append(g.MixingModels, mm)
	}
	return
}

func (ip *ModelInput) setWaveforms(g *FDTD.Grid) (err error) {
	seen := make(map[string]bool)
	for _, w := range ip.Waveforms {
		if len(w.ID) == 0 || seen[w.ID] {
			return invalid("waveform identifier %q is missing or repeated", w.ID)
		}
		if !waveformTypes[w.Type] {
			return invalid("waveform %q has unknown type %q", w.ID, w.Type)
		}
		if !(w.Freq > 0) {
			return invalid("waveform %q frequency must be positive", w.ID)
		}
		seen[w.ID] = true
		g.Waveforms = append(g.Waveforms, w)
	}
	return
}

func (ip *ModelInput) toCells(g *FDTD.Grid, pos [3]float64) (c [3]int) {
	d := [3]float64{g.Dx, g.Dy, g.Dz}
	for i := range c {
		c[i] = utils.RoundHalfDown(pos[i] / d[i])
	}
	return
}

func (ip *ModelInput) source(g *FDTD.Grid, kind string, si SourceInput) (sb FDTD.SourceBase, err error) {
	if sb.Polarisation, err = types.ParseAxis(string(si.Polarisation)); err != nil {
		err = fmt.Errorf("%s polarisation: %v: %w", kind, err, FDTD.ErrConfiguration)
		return
	}
	c := ip.toCells(g, si.Position)
	if !g.InDomain(c[0], c[1], c[2]) {
		err = invalid("%s at %v lies outside the domain", kind, si.Position)
		return
	}
	found := false
	for _, w := range g.Waveforms {
		if w.ID == si.Waveform {
			found = true
		}
	}
	if !found {
		err = invalid("%s uses undefined waveform %q", kind, si.Waveform)
		return
	}
	if si.Start < 0 || (si.Stop != 0 && si.Stop <= si.Start) {
		err = invalid("%s start %g and stop %g times are inconsistent", kind, si.Start, si.Stop)
		return
	}
	sb.XCoord, sb.YCoord, sb.ZCoord = c[0], c[1], c[2]
	sb.WaveformID, sb.Start, sb.Stop = si.Waveform, si.Start, si.Stop
	return
}

func (ip *ModelInput) setSources(g *FDTD.Grid) (err error) {
	var sb FDTD.SourceBase
	for _, si := range ip.VoltageSources {
		if sb, err = ip.source(g, "voltage source", si); err != nil {
			return
		}
		if si.Resistance < 0 {
			return invalid("voltage source resistance must be >= 0")
		}
		g.VoltageSources = append(g.VoltageSources, FDTD.VoltageSource{SourceBase: sb, Resistance: si.Resistance})
	}
	for _, si := range ip.HertzianDipoles {
		if sb, err = ip.source(g, "hertzian dipole", si); err != nil {
			return
		}
		g.HertzianDipoles = append(g.HertzianDipoles, FDTD.HertzianDipole{SourceBase: sb})
	}
	for _, si := range ip.MagneticDipoles {
		if sb, err = ip.source(g, "magnetic dipole", si); err != nil {
			return
		}
		g.MagneticDipoles = append(g.MagneticDipoles, FDTD.MagneticDipole{SourceBase: sb})
	}
	g.TxStep = ip.toCells(g, ip.TxSteps)
	return
}

func (ip *ModelInput) setReceivers(g *FDTD.Grid) (err error) {
	for n, ri := range ip.Receivers {
		rx := FDTD.Receiver{ID: ri.ID}
		if len(rx.ID) == 0 {
			rx.ID = fmt.Sprintf("Rx%d", n+1)
		}
		c := ip.toCells(g, ri.Position)
		if !g.InDomain(c[0], c[1], c[2]) {
			return invalid("receiver %s at %v lies outside the domain", rx.ID, ri.Position)
		}
		rx.XCoord, rx.YCoord, rx.ZCoord = c[0], c[1], c[2]
		if len(ri.Outputs) == 0 {
			for comp := FDTD.Ex; comp <= FDTD.Hz; comp++ {
				rx.Outputs = append(rx.Outputs, comp)
			}
		}
		for _, name := range ri.Outputs {
			var comp FDTD.Component
			if comp, err = FDTD.ParseComponent(name); err != nil {
				return fmt.Errorf("receiver %s: %w", rx.ID, err)
			}
			rx.Outputs = append(rx.Outputs, comp)
		}
		g.Receivers = append(g.Receivers, rx)
	}
	g.RxStep = ip.toCells(g, ip.RxSteps)
	return
}

func (ip *ModelInput) region(g *FDTD.Grid, kind string, ri RegionInput) (r FDTD.Region, err error) {
	var (
		s = ip.toCells(g, ri.Start)
		f = ip.toCells(g, ri.Stop)
		d = ip.toCells(g, ri.Step)
	)
	if !g.InDomain(s[0], s[1], s[2]) || !g.InDomain(f[0], f[1], f[2]) {
		err = invalid("%s region %v to %v lies outside the domain", kind, ri.Start, ri.Stop)
		return
	}
	for i := 0; i < 3; i++ {
		if s[i] > f[i] {
			err = invalid("%s region start %v is beyond its stop %v", kind, ri.Start, ri.Stop)
			return
		}
		if d[i] < 1 {
			d[i] = 1
		}
	}
	r = FDTD.Region{
		Xs: s[0], Ys: s[1], Zs: s[2],
		Xf: f[0], Yf: f[1], Zf: f[2],
		Dx: d[0], Dy: d[1], Dz: d[2],
	}
	return
}

func (ip *ModelInput) setOutputs(g *FDTD.Grid) (err error) {
	for _, si := range ip.Snapshots {
		snap := FDTD.Snapshot{Filename: si.Filename}
		if snap.Region, err = ip.region(g, "snapshot", si.RegionInput); err != nil {
			return
		}
		switch {
		case si.Iteration != 0:
			snap.Iteration = si.Iteration
		default:
			snap.Iteration = utils.RoundHalfDown(si.Time/g.Dt) + 1
		}
		if snap.Iteration < 1 || snap.Iteration > g.Iterations {
			return invalid("snapshot %s at iteration %d is outside the run of %d iterations",
				si.Filename, snap.Iteration, g.Iterations)
		}
		g.Snapshots = append(g.Snapshots, snap)
	}
	for _, gi := range ip.GeometryViews {
		gv := FDTD.GeometryView{Filename: gi.Filename, Type: string(gi.Type)}
		if gv.Type != "n" && gv.Type != "f" {
			return invalid("geometry view %s type must be n or f, have %q", gi.Filename, gi.Type)
		}
		if gv.Region, err = ip.region(g, "geometry view", gi.RegionInput); err != nil {
			return
		}
		g.GeometryViews = append(g.GeometryViews, gv)
	}
	return
}

func (ip *ModelInput) setFractalVolumes(g *FDTD.Grid) (err error) {
	for _, fi := range ip.FractalVolumes {
		fv := FDTD.FractalVolume{
			ID:               fi.ID,
			Dimension:        fi.Dimension,
			Weighting:        fi.Weighting,
			NBins:            fi.NBins,
			MixingModelID:    fi.Mixing,
			Seed:             fi.Seed,
			AveragingEnabled: g.AverageVolumeObjects,
		}
		if fv.Region, err = ip.region(g, "fractal volume", fi.RegionInput); err != nil {
			return
		}
		if !(fv.Dimension > 0 && fv.Dimension < 3) {
			return invalid("fractal volume %s dimension %g must lie in (0, 3)", fi.ID, fi.Dimension)
		}
		if fv.NBins < 1 {
			return invalid("fractal volume %s needs at least one bin", fi.ID)
		}
		_, isMaterial := g.Materials.Get(fi.Mixing)
		isMixing := false
		for _, mm := range g.MixingModels {
			if mm.ID == fi.Mixing {
				isMixing = true
			}
		}
		if !isMaterial && !isMixing {
			return invalid("fractal volume %s uses undefined material or mixing model %q", fi.ID, fi.Mixing)
		}
		g.FractalVolumes = append(g.FractalVolumes, fv)
	}
	return
}
