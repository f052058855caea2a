/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/InputParameters"
	"github.com/notargets/gofdtd/utils"
)

type ModelGrid struct {
	InputFile string
	MaxMemory uint64 // bytes, 0 for no limit
	Profile   string // cpu or mem
	Perf      bool
	Quiet     bool
}

// GridCmd represents the grid command
var GridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Build and allocate the Yee grid of a model file",
	Long: `
Reads a YAML model file, derives the grid dimensions, time step and material
registry, then allocates every array of the model and reports its shapes and
memory use.

gofdtd grid -I model.yaml --maxMemory 8GiB`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mg := &ModelGrid{}
		if mg.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		if mg.MaxMemory, err = utils.ParseSize(viper.GetString("maxMemory")); err != nil {
			fmt.Printf("error: maxMemory: %s\n", err.Error())
			os.Exit(1)
		}
		mg.Profile, _ = cmd.Flags().GetString("profile")
		mg.Perf, _ = cmd.Flags().GetBool("perf")
		mg.Quiet = viper.GetBool("quiet")
		ip := processInput(mg)
		if err = RunGrid(mg, ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(GridCmd)
	GridCmd.Flags().StringP("inputFile", "I", "", "YAML model file describing the domain, materials, sources and outputs")
	GridCmd.Flags().StringP("maxMemory", "m", "", "upper bound on grid storage, e.g. 512MiB or 4GB, none by default")
	GridCmd.Flags().String("profile", "", "write a profile of the run to the working directory: cpu or mem")
	GridCmd.Flags().Bool("perf", false, "count CPU instructions spent allocating the grid (linux only)")
	GridCmd.Flags().BoolP("quiet", "q", false, "suppress memory messages during allocation")
	for _, name := range []string{"maxMemory", "quiet"} {
		if err := viper.BindPFlag(name, GridCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func processInput(mg *ModelGrid) (ip *InputParameters.ModelInput) {
	var (
		err error
	)
	if len(mg.InputFile) == 0 {
		err = fmt.Errorf("must supply a model file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
Domain: [0.5, 0.5, 0.1]  # metres
DxDyDz: [0.002, 0.002, 0.002]
TimeWindow: 3.0e-9       # or Iterations
PMLCells: [10]
Materials:
  - ID: half_space
    Er: 6
    Se: 0.005
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if ip, err = InputParameters.ReadModelInput(mg.InputFile); err != nil {
		panic(err)
	}
	return
}

// RunGrid builds the grid described by ip and allocates it within the memory limit
func RunGrid(mg *ModelGrid, ip *InputParameters.ModelInput) (err error) {
	switch mg.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile type %q, must be cpu or mem", mg.Profile)
	}
	ip.Print()
	var g *FDTD.Grid
	if g, err = ip.BuildGrid(); err != nil {
		return
	}
	if mg.Quiet {
		g.Messages = false
	}
	g.MemoryLimit = mg.MaxMemory
	start := time.Now()
	if mg.Perf {
		var instructions uint64
		if instructions, err = countInstructions(func() error { return allocate(g) }); err != nil {
			return
		}
		fmt.Printf("%d\t= CPU instructions to allocate\n", instructions)
	} else if err = allocate(g); err != nil {
		return
	}
	g.Print()
	fmt.Printf("%v\t= Allocation time\n", time.Since(start))
	fmt.Printf("%s\t= Process memory\n", utils.GetMemUsage())
	return
}

// allocate turns a failed reservation into an error for the command line
func allocate(g *FDTD.Grid) (err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*FDTD.ResourceError)
			if !ok {
				panic(r)
			}
			err = re
		}
	}()
	return g.Allocate()
}
