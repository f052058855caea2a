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

	perf "github.com/hodgesds/perf-utils"
)

/*
countInstructions runs f under a hardware instruction counter. When the kernel
refuses the counter, typically through perf_event_paranoid, f is run uncounted.
*/
func countInstructions(f func() error) (instructions uint64, err error) {
	var (
		ran  bool
		fErr error
	)
	pv, perr := perf.CPUInstructions(func() error {
		ran = true
		fErr = f()
		return fErr
	})
	switch {
	case fErr != nil:
		return 0, fErr
	case perr != nil && ran:
		return 0, perr
	case perr != nil:
		fmt.Printf("instruction counter unavailable: %s\n", perr.Error())
		return 0, f()
	}
	return pv.Value, nil
}
