package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/InputParameters"
)

func writeModel(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const boxModel = `
Title: Box
Domain: [0.05, 0.04, 0.03]
DxDyDz: [0.01, 0.01, 0.01]
Iterations: 20
PMLCells: [1]
Messages: false
Materials:
  - ID: sand
    Er: 3
    Dispersion: debye
    Poles:
      - DeltaEr: 2
        Tau: 1.0e-9
`

func TestRunGrid(t *testing.T) {
	mg := &ModelGrid{InputFile: writeModel(t, boxModel), Quiet: true}
	ip := processInput(mg)
	require.NotNil(t, ip)
	assert.Equal(t, "Box", ip.Title)
	assert.NoError(t, RunGrid(mg, ip))

	mg.Profile = "disk"
	assert.Error(t, RunGrid(mg, ip))
}

func TestRunGridMemoryLimit(t *testing.T) {
	mg := &ModelGrid{InputFile: writeModel(t, boxModel), MaxMemory: 1024, Quiet: true}
	err := RunGrid(mg, processInput(mg))
	var re *FDTD.ResourceError
	require.True(t, errors.As(err, &re), "%v", err)
	assert.Equal(t, uint64(1024), re.Limit)
}

func TestRunGridInvalidModel(t *testing.T) {
	mg := &ModelGrid{InputFile: writeModel(t, "Domain: [0.1, 0.1, 0.1]\nDxDyDz: [0.01, 0.01, 0.01]\n")}
	err := RunGrid(mg, processInput(mg))
	assert.True(t, errors.Is(err, FDTD.ErrConfiguration))
}

func TestAllocate(t *testing.T) {
	ip := &InputParameters.ModelInput{}
	require.NoError(t, ip.Parse([]byte(boxModel)))
	g, err := ip.BuildGrid()
	require.NoError(t, err)
	require.NoError(t, allocate(g))
	assert.True(t, g.DispersiveBound())
	assert.Equal(t, []int{1, 5, 5, 4}, g.Shapes()["Tx"])
}
