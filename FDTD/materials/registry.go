package materials

import (
	"errors"
	"fmt"
	"math"
)

var ErrRegistryFrozen = errors.New("fdtd: material registry is frozen, arrays were sized from it")

/*
Registry is the ordered list of materials in a model. The registration order fixes
each material's numeric identity, which is the value stored in the grid's solid and
ID arrays and the row index of the coefficient tables.
*/
type Registry struct {
	maxPoles  int
	materials []*Material
	byName    map[string]*Material
	frozen    bool
}

func NewRegistry(maxPoles int) (r *Registry, err error) {
	if maxPoles < 0 {
		err = fmt.Errorf("maximum pole count %d must be >= 0: %w", maxPoles, ErrConfiguration)
		return
	}
	r = &Registry{
		maxPoles: maxPoles,
		byName:   make(map[string]*Material),
	}
	return
}

// NewDefaultRegistry seeds the two built in materials, pec and free_space, so that
// their identities are PECID and FreeSpaceID.
func NewDefaultRegistry(maxPoles int) (r *Registry, err error) {
	if r, err = NewRegistry(maxPoles); err != nil {
		return
	}
	pec := NewMaterial("pec")
	pec.Se = math.Inf(1)
	pec.Averagable = false
	if _, err = r.Add(pec); err != nil {
		return
	}
	if _, err = r.Add(NewMaterial("free_space")); err != nil {
		return
	}
	return
}

func (r *Registry) Add(m *Material) (numID uint32, err error) {
	if r.frozen {
		err = fmt.Errorf("adding material %q: %w", m.ID, ErrRegistryFrozen)
		return
	}
	if err = m.Validate(r.maxPoles); err != nil {
		return
	}
	if _, exists := r.byName[m.ID]; exists {
		err = fmt.Errorf("material %q is already defined: %w", m.ID, ErrConfiguration)
		return
	}
	numID = uint32(len(r.materials))
	m.NumID = numID
	r.materials = append(r.materials, m)
	r.byName[m.ID] = m
	return
}

func (r *Registry) Get(name string) (m *Material, ok bool) {
	m, ok = r.byName[name]
	return
}

func (r *Registry) ByID(numID uint32) (m *Material, ok bool) {
	if int(numID) >= len(r.materials) {
		return nil, false
	}
	return r.materials[numID], true
}

func (r *Registry) Len() int      { return len(r.materials) }
func (r *Registry) MaxPoles() int { return r.maxPoles }
func (r *Registry) Frozen() bool  { return r.frozen }

// Freeze stops further registration. The grid calls it once coefficient arrays are sized.
func (r *Registry) Freeze() { r.frozen = true }

// Materials returns the materials in registration order. The slice is a copy.
func (r *Registry) Materials() (ms []*Material) {
	ms = make([]*Material, len(r.materials))
	copy(ms, r.materials)
	return
}

func (r *Registry) NumDispersive() (n int) {
	for _, m := range r.materials {
		if m.IsDispersive() {
			n++
		}
	}
	return
}

// PolesInUse is the largest pole count declared by any registered material
func (r *Registry) PolesInUse() (n int) {
	for _, m := range r.materials {
		if m.NumPoles() > n {
			n = m.NumPoles()
		}
	}
	return
}
