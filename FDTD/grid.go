package FDTD

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/notargets/gofdtd/FDTD/materials"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

const SpeedOfLight = 299792458.0 // m/s

const DefaultPMLThickness = 10 // cells, every face

// Storage groups, each bound by one allocation step
const (
	groupFields = iota
	groupCoefficients
	groupDispersive
	numGroups
)

/*
Grid holds everything associated with the whole model: the scalars fixing the
discretisation, the ordered lists of objects placed in it, and the arrays on the
staggered grid. Grid is the only owner of the arrays. The allocation methods drop
and recreate them, so nothing written before a reallocation survives it.
*/
type Grid struct {
	InputDirectory string
	Title          string
	Messages       bool
	RunID          uuid.UUID
	NThreads       int    // Workers, 0 for one per CPU
	MemoryLimit    uint64 // bytes, 0 for no limit

	Nx, Ny, Nz int     // Cells per axis
	Dx, Dy, Dz float64 // Cell size, metres
	Dt         float64 // Seconds
	Iterations int
	TimeWindow float64

	PMLThickness         [types.NumFaces]int // Cells, ordered -x,+x,-y,+y,-z,+z
	CFS                  []CFS
	PMLs                 []PML
	AverageVolumeObjects bool

	Materials       *materials.Registry
	MixingModels    []MixingModel
	FractalVolumes  []FractalVolume
	GeometryViews   []GeometryView
	Waveforms       []Waveform
	VoltageSources  []VoltageSource
	HertzianDipoles []HertzianDipole
	MagneticDipoles []MagneticDipole
	Receivers       []Receiver
	Snapshots       []Snapshot
	TxStep, RxStep  [3]int

	// Geometry, indexed by node
	Solid  utils.Array3[uint32]
	ID     utils.Array4[uint32] // Leading index is a Component
	RigidE utils.Array4[int8]   // Leading index is an EEdges entry
	RigidH utils.Array4[int8]   // Leading index is an HFaces entry

	// Field samples, shapes given by Component.Shape
	Ex, Ey, Ez utils.Array3[float32]
	Hx, Hy, Hz utils.Array3[float32]

	// Per material coefficients, row = material NumID
	UpdateCoeffsE, UpdateCoeffsH utils.Matrix
	UpdateCoeffsDispersive       utils.CMatrix // Columns from materials.DispersiveColumn

	// Per pole polarisation state, leading index is the pole
	Tx, Ty, Tz utils.Array4[complex64]

	bound          [numGroups]bool
	boundBytes     [numGroups]uint64
	dispersiveDims [3]int // Nx, Ny, Nz the dispersive state was sized for
}

func NewGrid() (g *Grid) {
	reg, err := materials.NewDefaultRegistry(0)
	if err != nil {
		panic(err)
	}
	g = &Grid{
		Messages:             true,
		RunID:                uuid.New(),
		AverageVolumeObjects: true,
		Materials:            reg,
	}
	for f := range g.PMLThickness {
		g.PMLThickness[f] = DefaultPMLThickness
	}
	return
}

/*
AllocateFieldArrays binds the geometry and field arrays for the current Nx, Ny, Nz.
A zero cell count is legal and leaves an empty axis on the staggered arrays. solid
and ID are filled with the free space identity by NThreads workers, everything
else with zero. Any arrays bound by an earlier call are replaced. Dispersive
storage sized for other dimensions is released and must be allocated again.
*/
func (g *Grid) AllocateFieldArrays() (err error) {
	if err = g.checkDimensions(); err != nil {
		return
	}
	var (
		nx, ny, nz = g.Nx, g.Ny, g.Nz
		ni, nj, nk = nx + 1, ny + 1, nz + 1
	)
	bytes, overflow := FieldArraysBytes(nx, ny, nz)
	g.reserve(groupFields, "field arrays", bytes, overflow)

	np := utils.ThreadCount(g.NThreads)
	g.Solid = utils.NewArray3[uint32](ni, nj, nk)
	g.ID = utils.NewArray4[uint32](NumComponents, ni, nj, nk)
	utils.ParallelFill(g.Solid.Data, materials.FreeSpaceID, np)
	utils.ParallelFill(g.ID.Data, materials.FreeSpaceID, np)
	// TODO: confirm the rigid flag polarity against the dielectric smoothing predicate
	g.RigidE = utils.NewArray4[int8](NumEEdges, ni, nj, nk)
	g.RigidH = utils.NewArray4[int8](NumHFaces, ni, nj, nk)
	g.Ex, g.Ey, g.Ez = g.newField(Ex), g.newField(Ey), g.newField(Ez)
	g.Hx, g.Hy, g.Hz = g.newField(Hx), g.newField(Hy), g.newField(Hz)

	g.bind(groupFields, bytes)
	// Tx, Ty, Tz follow the shapes of Ex, Ey, Ez and are stale once those change
	if g.bound[groupDispersive] && g.dispersiveDims != [3]int{nx, ny, nz} {
		g.release(groupDispersive)
		g.Tx, g.Ty, g.Tz = utils.Array4[complex64]{}, utils.Array4[complex64]{}, utils.Array4[complex64]{}
		g.UpdateCoeffsDispersive = utils.CMatrix{}
	}
	return
}

// AllocateUpdateCoefficients binds zeroed (materialCount, 5) tables for the E and H updates
func (g *Grid) AllocateUpdateCoefficients(materialCount int) (err error) {
	if err = checkMaterialCount(materialCount); err != nil {
		return
	}
	bytes, overflow := UpdateCoefficientsBytes(materialCount)
	g.reserve(groupCoefficients, "update coefficients", bytes, overflow)

	g.UpdateCoeffsE = utils.NewMatrix(materialCount, coeffsPerEq)
	g.UpdateCoeffsH = utils.NewMatrix(materialCount, coeffsPerEq)

	g.bind(groupCoefficients, bytes)
	return
}

/*
AllocateDispersiveStorage binds the per pole polarisation state Tx, Ty, Tz and the
(materialCount, 3*maxPoles) dispersive coefficient table, all complex and zeroed.
maxPoles == 0 is legal: the arrays are bound with an empty pole dimension.
*/
func (g *Grid) AllocateDispersiveStorage(materialCount, maxPoles int) (err error) {
	if err = checkMaterialCount(materialCount); err != nil {
		return
	}
	if maxPoles < 0 {
		err = fmt.Errorf("maximum pole count %d must be >= 0: %w", maxPoles, ErrConfiguration)
		return
	}
	if err = g.checkDimensions(); err != nil {
		return
	}
	bytes, overflow := DispersiveStorageBytes(g.Nx, g.Ny, g.Nz, materialCount, maxPoles)
	g.reserve(groupDispersive, "dispersive storage", bytes, overflow)

	g.Tx, g.Ty, g.Tz = g.newAux(maxPoles, Ex), g.newAux(maxPoles, Ey), g.newAux(maxPoles, Ez)
	g.UpdateCoeffsDispersive = utils.NewCMatrix(materialCount, materials.CoeffsPerPole*maxPoles)

	g.bind(groupDispersive, bytes)
	g.dispersiveDims = [3]int{g.Nx, g.Ny, g.Nz}
	return
}

/*
Allocate runs the whole protocol from the material registry: field arrays, then
coefficients sized by the registered count, then dispersive storage sized by the
registry's pole maximum. Inputs are checked before anything is allocated. The
registry is frozen afterwards since adding a material would invalidate the tables.
*/
func (g *Grid) Allocate() (err error) {
	if g.Materials == nil {
		err = fmt.Errorf("grid has no material registry: %w", ErrConfiguration)
		return
	}
	var (
		nm = g.Materials.Len()
		np = g.Materials.MaxPoles()
	)
	if err = g.checkDimensions(); err != nil {
		return
	}
	if err = checkMaterialCount(nm); err != nil {
		return
	}
	if err = g.AllocateFieldArrays(); err != nil {
		return
	}
	if err = g.AllocateUpdateCoefficients(nm); err != nil {
		return
	}
	if err = g.AllocateDispersiveStorage(nm, np); err != nil {
		return
	}
	g.Materials.Freeze()
	if g.Messages {
		utils.Logf("Total memory (RAM) required for the grid: ~%s\n", utils.HumanSize(g.AllocatedBytes(), true))
	}
	return
}

func (g *Grid) FieldArraysBound() bool  { return g.bound[groupFields] }
func (g *Grid) CoefficientsBound() bool { return g.bound[groupCoefficients] }
func (g *Grid) DispersiveBound() bool   { return g.bound[groupDispersive] }

// AllocatedBytes is the estimated storage of every bound array
func (g *Grid) AllocatedBytes() (total uint64) {
	for _, b := range g.boundBytes {
		total += b
	}
	return
}

// Field returns the array holding the given component
func (g *Grid) Field(c Component) utils.Array3[float32] {
	switch c {
	case Ex:
		return g.Ex
	case Ey:
		return g.Ey
	case Ez:
		return g.Ez
	case Hx:
		return g.Hx
	case Hy:
		return g.Hy
	case Hz:
		return g.Hz
	}
	panic(fmt.Errorf("no field component %d", c))
}

// DispersiveState returns the polarisation state paired with the E component along axis
func (g *Grid) DispersiveState(axis types.Axis) utils.Array4[complex64] {
	switch axis {
	case types.X:
		return g.Tx
	case types.Y:
		return g.Ty
	case types.Z:
		return g.Tz
	}
	panic(fmt.Errorf("no axis %d", axis))
}

// Shapes lists the shape of every bound array under its conventional name
func (g *Grid) Shapes() (shapes map[string][]int) {
	shapes = make(map[string][]int)
	if g.bound[groupFields] {
		shapes["solid"] = g.Solid.Shape()
		shapes["ID"] = g.ID.Shape()
		shapes["rigidE"] = g.RigidE.Shape()
		shapes["rigidH"] = g.RigidH.Shape()
		for c := Ex; c <= Hz; c++ {
			shapes[c.String()] = g.Field(c).Shape()
		}
	}
	if g.bound[groupCoefficients] {
		shapes["updatecoeffsE"] = dims(g.UpdateCoeffsE.Dims())
		shapes["updatecoeffsH"] = dims(g.UpdateCoeffsH.Dims())
	}
	if g.bound[groupDispersive] {
		shapes["updatecoeffsdispersive"] = dims(g.UpdateCoeffsDispersive.Dims())
		shapes["Tx"] = g.Tx.Shape()
		shapes["Ty"] = g.Ty.Shape()
		shapes["Tz"] = g.Tz.Shape()
	}
	return
}

// InDomain reports whether (i,j,k) is a node of the grid
func (g *Grid) InDomain(i, j, k int) bool {
	return i >= 0 && i <= g.Nx && j >= 0 && j <= g.Ny && k >= 0 && k <= g.Nz
}

/*
CalculateDt sets the time step to the Courant limit of the 3D grid scaled by
factor, which must lie in (0, 1].
*/
func (g *Grid) CalculateDt(factor float64) (err error) {
	if !(g.Dx > 0 && g.Dy > 0 && g.Dz > 0) {
		err = fmt.Errorf("cell size %g x %g x %g must be positive: %w", g.Dx, g.Dy, g.Dz, ErrConfiguration)
		return
	}
	if !(factor > 0 && factor <= 1) {
		err = fmt.Errorf("time step stability factor %g must be in (0, 1]: %w", factor, ErrConfiguration)
		return
	}
	g.Dt = factor / (SpeedOfLight * math.Sqrt(1/(g.Dx*g.Dx)+1/(g.Dy*g.Dy)+1/(g.Dz*g.Dz)))
	return
}

// SetTimeWindow derives the iteration count from a window in seconds. Dt must be set.
func (g *Grid) SetTimeWindow(window float64) (err error) {
	if !(g.Dt > 0) {
		err = fmt.Errorf("time step must be calculated before the time window: %w", ErrConfiguration)
		return
	}
	if !(window > 0) {
		err = fmt.Errorf("time window %g must be positive: %w", window, ErrConfiguration)
		return
	}
	g.TimeWindow = window
	g.Iterations = utils.RoundHalfDown(window/g.Dt) + 1
	return
}

func (g *Grid) SetIterations(iterations int) (err error) {
	if iterations < 1 {
		err = fmt.Errorf("iteration count %d must be >= 1: %w", iterations, ErrConfiguration)
		return
	}
	g.Iterations = iterations
	g.TimeWindow = float64(iterations-1) * g.Dt
	return
}

func (g *Grid) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", g.Title)
	fmt.Printf("%s\t= Run ID\n", g.RunID)
	fmt.Printf("[%d x %d x %d]\t\t= Cells\n", g.Nx, g.Ny, g.Nz)
	fmt.Printf("[%g x %g x %g]\t= Cell size (m)\n", g.Dx, g.Dy, g.Dz)
	fmt.Printf("%g\t\t= Time step (s)\n", g.Dt)
	fmt.Printf("%g\t\t= Time window (s), %d iterations\n", g.TimeWindow, g.Iterations)
	fmt.Printf("%v\t= PML cells (-x,+x,-y,+y,-z,+z)\n", g.PMLThickness)
	if g.Materials != nil {
		fmt.Printf("%d materials, %d dispersive, max poles %d\n",
			g.Materials.Len(), g.Materials.NumDispersive(), g.Materials.MaxPoles())
		for _, m := range g.Materials.Materials() {
			fmt.Printf("\t%s\n", m)
		}
	}
	fmt.Printf("%d waveforms, %d voltage sources, %d hertzian dipoles, %d magnetic dipoles, %d receivers, %d snapshots, %d geometry views\n",
		len(g.Waveforms), len(g.VoltageSources), len(g.HertzianDipoles), len(g.MagneticDipoles),
		len(g.Receivers), len(g.Snapshots), len(g.GeometryViews))
	shapes := g.Shapes()
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s%v\n", name, shapes[name])
	}
	if n := g.AllocatedBytes(); n != 0 {
		fmt.Printf("%s\t\t= Grid memory\n", utils.HumanSize(n, true))
	}
}

func (g *Grid) checkDimensions() (err error) {
	if g.Nx < 0 || g.Ny < 0 || g.Nz < 0 {
		err = fmt.Errorf("grid dimensions %d x %d x %d must be >= 0: %w", g.Nx, g.Ny, g.Nz, ErrConfiguration)
	}
	return
}

func checkMaterialCount(materialCount int) (err error) {
	if materialCount < 1 {
		err = fmt.Errorf("material count %d must be >= 1: %w", materialCount, ErrConfiguration)
	}
	return
}

// reserve panics with a ResourceError when the storage cannot be satisfied
func (g *Grid) reserve(group int, what string, bytes uint64, overflow bool) {
	if overflow {
		panic(&ResourceError{What: what, Reason: "size overflows the address space"})
	}
	var total = bytes
	for gr, b := range g.boundBytes {
		if gr != group {
			total += b
		}
	}
	if g.MemoryLimit != 0 && total > g.MemoryLimit {
		panic(&ResourceError{What: what, Bytes: total, Limit: g.MemoryLimit,
			Reason: "model exceeds the memory limit"})
	}
	if g.Messages {
		utils.Logf("Memory (RAM) required for %s: ~%s\n", what, utils.HumanSize(bytes, true))
	}
}

func (g *Grid) bind(group int, bytes uint64) {
	g.bound[group] = true
	g.boundBytes[group] = bytes
}

func (g *Grid) release(group int) {
	g.bound[group] = false
	g.boundBytes[group] = 0
}

func (g *Grid) newField(c Component) utils.Array3[float32] {
	s := c.Shape(g.Nx, g.Ny, g.Nz)
	return utils.NewArray3[float32](s[0], s[1], s[2])
}

func (g *Grid) newAux(maxPoles int, c Component) utils.Array4[complex64] {
	s := c.Shape(g.Nx, g.Ny, g.Nz)
	return utils.NewArray4[complex64](maxPoles, s[0], s[1], s[2])
}

func dims(r, c int) []int { return []int{r, c} }
