package InputParameters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofdtd/FDTD"
)

/*
ModelInput is the YAML model file. Lengths and positions are in metres and times
in seconds, converted to cells and iterations by BuildGrid. Give exactly one of
TimeWindow and Iterations.
*/
type ModelInput struct {
	Title                   string               `json:"Title"`
	Domain                  [3]float64           `json:"Domain"`
	DxDyDz                  [3]float64           `json:"DxDyDz"`
	TimeWindow              float64              `json:"TimeWindow"`
	Iterations              int                  `json:"Iterations"`
	TimeStepStabilityFactor float64              `json:"TimeStepStabilityFactor"` // Default 1
	PMLCells                []int                `json:"PMLCells"`                // One value, or six ordered -x,+x,-y,+y,-z,+z
	CFS                     []FDTD.CFS           `json:"CFS"`
	MaxPoles                *int                 `json:"MaxPoles"`                // Default is the most poles any material declares
	NumThreads              int                  `json:"NumThreads"`
	Messages                *bool                `json:"Messages"`
	AverageVolumeObjects    *bool                `json:"AverageVolumeObjects"`
	Materials               []MaterialInput      `json:"Materials"`
	MixingModels            []FDTD.MixingModel   `json:"MixingModels"`
	FractalVolumes          []FractalVolumeInput `json:"FractalVolumes"`
	Waveforms               []FDTD.Waveform      `json:"Waveforms"`
	VoltageSources          []SourceInput        `json:"VoltageSources"`
	HertzianDipoles         []SourceInput        `json:"HertzianDipoles"`
	MagneticDipoles         []SourceInput        `json:"MagneticDipoles"`
	Receivers               []ReceiverInput      `json:"Receivers"`
	TxSteps                 [3]float64           `json:"TxSteps"`
	RxSteps                 [3]float64           `json:"RxSteps"`
	Snapshots               []SnapshotInput      `json:"Snapshots"`
	GeometryViews           []GeometryViewInput  `json:"GeometryViews"`
	inputFile               string
}

type MaterialInput struct {
	ID         string      `json:"ID"`
	Er         float64     `json:"Er"`
	Se         float64     `json:"Se"`
	Mr         float64     `json:"Mr"`
	Sm         float64     `json:"Sm"`
	Averagable *bool       `json:"Averagable"`
	Dispersion string      `json:"Dispersion"` // debye, lorentz or drude
	Poles      []PoleInput `json:"Poles"`
}

type PoleInput struct {
	DeltaEr float64 `json:"DeltaEr"`
	Tau     float64 `json:"Tau"`
	Alpha   float64 `json:"Alpha"`
}

type SourceInput struct {
	Polarisation Letter     `json:"Polarisation"`
	Position     [3]float64 `json:"Position"`
	Waveform     string     `json:"Waveform"`
	Resistance   float64    `json:"Resistance"` // Voltage sources only
	Start        float64    `json:"Start"`
	Stop         float64    `json:"Stop"`
}

type ReceiverInput struct {
	ID       string     `json:"ID"`
	Position [3]float64 `json:"Position"`
	Outputs  []string   `json:"Outputs"` // Default is all six components
}

type RegionInput struct {
	Start [3]float64 `json:"Start"`
	Stop  [3]float64 `json:"Stop"`
	Step  [3]float64 `json:"Step"`
}

type SnapshotInput struct {
	RegionInput
	Time      float64 `json:"Time"`
	Iteration int     `json:"Iteration"`
	Filename  string  `json:"Filename"`
}

type GeometryViewInput struct {
	RegionInput
	Filename string `json:"Filename"`
	Type     Letter `json:"Type"` // n per cell, f per edge
}

type FractalVolumeInput struct {
	RegionInput
	ID        string     `json:"ID"`
	Dimension float64    `json:"Dimension"`
	Weighting [3]float64 `json:"Weighting"`
	NBins     int        `json:"NBins"`
	Mixing    string     `json:"Mixing"`
	Seed      int64      `json:"Seed"`
}

/*
Letter is a short name written unquoted in model files, an axis or a view type.
YAML 1.1 reads an unquoted y, yes or on as true and n, no or off as false, so the
decoder sees a boolean; those come back as "y" and "n".
*/
type Letter string

func (l *Letter) UnmarshalJSON(data []byte) (err error) {
	if string(data) == "null" {
		return
	}
	var b bool
	if err = json.Unmarshal(data, &b); err == nil {
		if b {
			*l = "y"
		} else {
			*l = "n"
		}
		return
	}
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a name, have %s: %w", data, err)
	}
	*l = Letter(s)
	return
}

func (ip *ModelInput) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ReadModelInput parses the file at path, remembering its directory for relative outputs
func ReadModelInput(path string) (ip *ModelInput, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &ModelInput{inputFile: path}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("parsing %s: %w", path, err)
		ip = nil
	}
	return
}

func (ip *ModelInput) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t= Domain (m)\n", ip.Domain)
	fmt.Printf("%v\t= Cell size (m)\n", ip.DxDyDz)
	if ip.Iterations != 0 {
		fmt.Printf("[%d]\t\t\t= Iterations\n", ip.Iterations)
	} else {
		fmt.Printf("%g\t\t= Time Window (s)\n", ip.TimeWindow)
	}
	fmt.Printf("%v\t\t= PML cells\n", ip.PMLCells)
	ids := make([]string, len(ip.Materials))
	for i, m := range ip.Materials {
		ids[i] = m.ID
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("Material[%s]\n", id)
	}
	fmt.Printf("%d waveforms, %d sources, %d receivers\n", len(ip.Waveforms),
		len(ip.VoltageSources)+len(ip.HertzianDipoles)+len(ip.MagneticDipoles), len(ip.Receivers))
}

func (ip *ModelInput) inputDirectory() string {
	if len(ip.inputFile) == 0 {
		return ""
	}
	return filepath.Dir(ip.inputFile)
}
