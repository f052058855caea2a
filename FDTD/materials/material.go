package materials

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration marks every input validation failure in the grid model.
// Callers match it with errors.Is.
var ErrConfiguration = errors.New("fdtd: configuration error")

// Reserved material identities, seeded by NewDefaultRegistry
const (
	PECID       uint32 = 0
	FreeSpaceID uint32 = 1
)

// Number of complex update coefficients stored per pole
const CoeffsPerPole = 3

type DispersionType string

const (
	NonDispersive DispersionType = ""
	Debye         DispersionType = "debye"
	Lorentz       DispersionType = "lorentz"
	Drude         DispersionType = "drude"
)

var DispersionNameMap = map[string]DispersionType{
	"":        NonDispersive,
	"none":    NonDispersive,
	"debye":   Debye,
	"lorentz": Lorentz,
	"drude":   Drude,
}

func ParseDispersionType(name string) (dt DispersionType, err error) {
	var ok bool
	if dt, ok = DispersionNameMap[name]; !ok {
		err = fmt.Errorf("unknown dispersion type %q: %w", name, ErrConfiguration)
	}
	return
}

/*
Pole is one term of a multi-pole permittivity expansion.
Debye poles use DeltaEr and Tau. Lorentz poles add the damping Alpha.
Drude poles use Tau and Alpha only.
*/
type Pole struct {
	DeltaEr float64
	Tau     float64
	Alpha   float64
}

type Material struct {
	NumID      uint32 // Assigned by the registry
	ID         string
	Type       DispersionType
	Averagable bool
	Er, Se     float64 // Relative permittivity, electric conductivity
	Mr, Sm     float64 // Relative permeability, magnetic loss
	Poles      []Pole
}

// NewMaterial returns a lossless, non-dispersive material with free space constants
func NewMaterial(id string) *Material {
	return &Material{
		ID:         id,
		Averagable: true,
		Er:         1,
		Mr:         1,
	}
}

func (m *Material) NumPoles() int      { return len(m.Poles) }
func (m *Material) IsDispersive() bool { return len(m.Poles) != 0 }

func (m *Material) String() string {
	s := fmt.Sprintf("%d: %s er=%g se=%g mr=%g sm=%g", m.NumID, m.ID, m.Er, m.Se, m.Mr, m.Sm)
	if m.IsDispersive() {
		s += fmt.Sprintf(" %s poles=%d", m.Type, m.NumPoles())
	}
	return s
}

// Validate checks the material against the run-wide maximum pole count
func (m *Material) Validate(maxPoles int) (err error) {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("material %q: %s: %w", m.ID, fmt.Sprintf(format, args...), ErrConfiguration)
	}
	if len(m.ID) == 0 {
		return fmt.Errorf("material has no identifier: %w", ErrConfiguration)
	}
	if math.IsNaN(m.Er) || m.Er < 1 {
		return invalid("relative permittivity %g must be >= 1", m.Er)
	}
	if math.IsNaN(m.Mr) || m.Mr < 1 {
		return invalid("relative permeability %g must be >= 1", m.Mr)
	}
	if math.IsNaN(m.Se) || m.Se < 0 {
		return invalid("conductivity %g must be >= 0", m.Se)
	}
	if math.IsNaN(m.Sm) || m.Sm < 0 {
		return invalid("magnetic loss %g must be >= 0", m.Sm)
	}
	if len(m.Poles) > maxPoles {
		return invalid("%d poles exceeds the model maximum of %d", len(m.Poles), maxPoles)
	}
	switch m.Type {
	case NonDispersive:
		if len(m.Poles) != 0 {
			return invalid("poles given without a dispersion type")
		}
	case Debye, Lorentz, Drude:
		if len(m.Poles) == 0 {
			return invalid("%s dispersion requires at least one pole", m.Type)
		}
	default:
		return invalid("unknown dispersion type %q", m.Type)
	}
	for i, p := range m.Poles {
		if math.IsNaN(p.DeltaEr) || math.IsNaN(p.Tau) || math.IsNaN(p.Alpha) {
			return invalid("pole %d has NaN parameters", i)
		}
		if p.Tau <= 0 {
			return invalid("pole %d tau %g must be > 0", i, p.Tau)
		}
		if (m.Type == Lorentz || m.Type == Drude) && p.Alpha <= 0 {
			return invalid("pole %d alpha %g must be > 0", i, p.Alpha)
		}
	}
	return
}

// DispersiveColumn maps a pole and one of its coefficients to a column of the
// per-material dispersive coefficient table, which is laid out pole by pole.
func DispersiveColumn(pole, coeff int) int {
	if pole < 0 || coeff < 0 || coeff >= CoeffsPerPole {
		panic(fmt.Errorf("no dispersive column for pole %d coefficient %d", pole, coeff))
	}
	return CoeffsPerPole*pole + coeff
}
