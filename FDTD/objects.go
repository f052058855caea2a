package FDTD

import (
	"github.com/notargets/gofdtd/types"
)

// The descriptors below are carried by the grid in input order for the solver and
// output writers. The grid does not interpret them.

type Waveform struct {
	ID   string
	Type string // gaussian, gaussiandot, ricker, sine, contsine...
	Amp  float64
	Freq float64
}

// SourceBase holds what every point source shares. Start and Stop are times in
// seconds, Stop == 0 meaning the source stays on for the whole time window.
type SourceBase struct {
	Polarisation           types.Axis
	XCoord, YCoord, ZCoord int
	WaveformID             string
	Start, Stop            float64
}

type VoltageSource struct {
	SourceBase
	Resistance float64
}

type HertzianDipole struct {
	SourceBase
}

type MagneticDipole struct {
	SourceBase
}

type Receiver struct {
	ID                     string
	XCoord, YCoord, ZCoord int
	Outputs                []Component
}

// Region is a box of nodes from (Xs,Ys,Zs) to (Xf,Yf,Zf), both ends included,
// sampled every Dx, Dy, Dz cells
type Region struct {
	Xs, Ys, Zs int
	Xf, Yf, Zf int
	Dx, Dy, Dz int
}

type Snapshot struct {
	Region
	Iteration int
	Filename  string
}

type GeometryView struct {
	Region
	Filename string
	Type     string // "n" per cell, "f" per edge
}

// MixingModel blends materials, for example a Peplinski soil built from sand and clay
type MixingModel struct {
	ID                 string
	SandFraction       float64
	ClayFraction       float64
	BulkDensity        float64
	SandDensity        float64
	WaterFractionLower float64
	WaterFractionUpper float64
}

type FractalVolume struct {
	Region
	ID               string
	Dimension        float64
	Weighting        [3]float64
	NBins            int
	MixingModelID    string
	Seed             int64
	AveragingEnabled bool
}

// CFSParameter is one scaled profile of a complex frequency shifted PML parameter
type CFSParameter struct {
	ScalingProfile   string
	ScalingDirection string
	Min, Max         float64
}

// CFS holds the boundary condition parameters applied to every PML
type CFS struct {
	Alpha, Kappa, Sigma CFSParameter
}

type PML struct {
	Face      types.Face
	Thickness int
	CFS       []CFS
}
