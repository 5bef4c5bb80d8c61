//go:build linux

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

// hardwareCounters runs fn once per counter under perf_event_open.
func hardwareCounters(fn func() error) (string, error) {
	instructions, err := perf.CPUInstructions(fn)
	if err != nil {
		return "", err
	}
	cycles, err := perf.CPUCycles(fn)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("instructions = %d, cycles = %d, IPC = %5.2f (enabled %d ns, running %d ns)",
		instructions.Value, cycles.Value, float64(instructions.Value)/float64(max(cycles.Value, 1)),
		cycles.TimeEnabled, cycles.TimeRunning), nil
}
