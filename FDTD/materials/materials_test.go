package materials

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(0)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	pec, ok := r.ByID(PECID)
	require.True(t, ok)
	assert.Equal(t, "pec", pec.ID)
	assert.True(t, math.IsInf(pec.Se, 1))
	assert.False(t, pec.Averagable)
	fs, ok := r.Get("free_space")
	require.True(t, ok)
	assert.Equal(t, FreeSpaceID, fs.NumID)
	assert.Equal(t, 1., fs.Er)
	_, ok = r.ByID(2)
	assert.False(t, ok)
}

func TestRegistryAdd(t *testing.T) {
	r, err := NewDefaultRegistry(2)
	require.NoError(t, err)
	{ // Identities follow registration order
		sand := NewMaterial("sand")
		sand.Er, sand.Se = 3, 0.001
		id, err := r.Add(sand)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), id)
		assert.Equal(t, uint32(2), sand.NumID)

		water := NewMaterial("water")
		water.Type = Debye
		water.Er = 4.9
		water.Poles = []Pole{{DeltaEr: 75.2, Tau: 9.231e-12}}
		id, err = r.Add(water)
		require.NoError(t, err)
		assert.Equal(t, uint32(3), id)
		assert.Equal(t, 1, r.NumDispersive())
		assert.Equal(t, 1, r.PolesInUse())
		assert.Equal(t, 2, r.MaxPoles())
	}
	{ // Duplicates are rejected
		_, err := r.Add(NewMaterial("sand"))
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.Equal(t, 4, r.Len())
	}
	{ // Too many poles for the model
		m := NewMaterial("metal")
		m.Type = Drude
		m.Poles = []Pole{{Tau: 1, Alpha: 1}, {Tau: 1, Alpha: 1}, {Tau: 1, Alpha: 1}}
		_, err := r.Add(m)
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Frozen registries refuse additions
		r.Freeze()
		assert.True(t, r.Frozen())
		_, err := r.Add(NewMaterial("late"))
		assert.True(t, errors.Is(err, ErrRegistryFrozen))
		assert.Equal(t, 4, r.Len())
	}
	ms := r.Materials()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.ID
		assert.Equal(t, uint32(i), m.NumID)
	}
	assert.Equal(t, []string{"pec", "free_space", "sand", "water"}, names)
}

func TestMaterialValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(m *Material)
		ok     bool
	}{
		{"free space constants", func(m *Material) {}, true},
		{"empty id", func(m *Material) { m.ID = "" }, false},
		{"er below one", func(m *Material) { m.Er = 0.5 }, false},
		{"mr below one", func(m *Material) { m.Mr = 0 }, false},
		{"negative conductivity", func(m *Material) { m.Se = -1 }, false},
		{"nan magnetic loss", func(m *Material) { m.Sm = math.NaN() }, false},
		{"poles without type", func(m *Material) { m.Poles = []Pole{{DeltaEr: 1, Tau: 1}} }, false},
		{"type without poles", func(m *Material) { m.Type = Lorentz }, false},
		{"unknown type", func(m *Material) { m.Type = "cole"; m.Poles = []Pole{{Tau: 1}} }, false},
		{"debye", func(m *Material) { m.Type = Debye; m.Poles = []Pole{{DeltaEr: 2, Tau: 1e-9}} }, true},
		{"debye zero tau", func(m *Material) { m.Type = Debye; m.Poles = []Pole{{DeltaEr: 2}} }, false},
		{"lorentz no alpha", func(m *Material) { m.Type = Lorentz; m.Poles = []Pole{{DeltaEr: 2, Tau: 1}} }, false},
		{"lorentz", func(m *Material) { m.Type = Lorentz; m.Poles = []Pole{{DeltaEr: 2, Tau: 1, Alpha: 1}} }, true},
	}
	for _, tc := range cases {
		m := NewMaterial("m")
		tc.modify(m)
		err := m.Validate(1)
		if tc.ok {
			assert.NoError(t, err, tc.name)
		} else {
			assert.True(t, errors.Is(err, ErrConfiguration), tc.name)
		}
	}
}

func TestNewRegistryNegativePoles(t *testing.T) {
	r, err := NewRegistry(-1)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestDispersiveColumn(t *testing.T) {
	assert.Equal(t, 0, DispersiveColumn(0, 0))
	assert.Equal(t, 2, DispersiveColumn(0, 2))
	assert.Equal(t, 3, DispersiveColumn(1, 0))
	assert.Equal(t, 5, DispersiveColumn(1, 2))
	assert.Panics(t, func() { DispersiveColumn(0, 3) })
	assert.Panics(t, func() { DispersiveColumn(-1, 0) })
	dt, err := ParseDispersionType("lorentz")
	require.NoError(t, err)
	assert.Equal(t, Lorentz, dt)
	_, err = ParseDispersionType("havriliak")
	assert.True(t, errors.Is(err, ErrConfiguration))
}
