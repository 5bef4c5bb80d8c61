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
	"io"
	"os"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated evaluations of a large table",
	Long: `
Evaluates P_0..P_N and the first derivative at equispaced points repeatedly
and prints timing statistics. Profiles are written to the current directory:

gospectral bench -n 64 --points 100000 --repeat 20 -p 0 --profile cpu`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			basis spectral.Basis
			N     int
		)
		if basis, N, err = basisFlags(cmd); err != nil {
			return
		}
		bo := BenchOptions{}
		bo.Points, _ = cmd.Flags().GetInt("points")
		bo.Repeat, _ = cmd.Flags().GetInt("repeat")
		bo.Derivative, _ = cmd.Flags().GetInt("derivative")
		bo.Perf, _ = cmd.Flags().GetBool("perf")
		prof, _ := cmd.Flags().GetString("profile")
		switch prof {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", prof)
		}
		err = RunBench(os.Stdout, newEvaluator(), basis, N, bo)
		reportMemory()
		return
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	addBasisFlags(BenchCmd, 64)
	BenchCmd.Flags().Int("points", 10000, "number of equispaced points on [-1,1]")
	BenchCmd.Flags().Int("repeat", 10, "number of timed evaluations")
	BenchCmd.Flags().IntP("derivative", "d", 1, "derivative order")
	BenchCmd.Flags().String("profile", "", "write a cpu or mem profile")
	BenchCmd.Flags().Bool("perf", false, "count hardware instructions for one evaluation (linux)")
}

type BenchOptions struct {
	Points, Repeat, Derivative int
	Perf                       bool
}

// RunBench times bo.Repeat evaluations with e and writes a summary to w.
func RunBench(w io.Writer, e *spectral.Evaluator, b spectral.Basis, N int, bo BenchOptions) (err error) {
	var (
		elapsed = make([]float64, 0, max(bo.Repeat, 0))
		digest  string
		x       []float64
		eval    func() (*spectral.EvaluationResult, error)
	)
	if bo.Repeat < 1 {
		return fmt.Errorf("repeat = %d, must be >= 1: %w", bo.Repeat, spectral.ErrInvalidInput)
	}
	if bo.Points < 1 {
		return fmt.Errorf("points = %d, must be >= 1: %w", bo.Points, spectral.ErrInvalidInput)
	}
	x = utils.Linspace(-1, 1, bo.Points)
	if b.Family.IsHermite() {
		eval = func() (*spectral.EvaluationResult, error) {
			return e.EvaluateHermite(b.Family, N, x, bo.Derivative)
		}
	} else {
		var (
			jp  spectral.JacobiParameters
			req spectral.EvaluationRequest
		)
		if jp, err = b.Parameters(); err != nil {
			return
		}
		if req, err = spectral.NewEvaluationRequest(jp.Alpha, jp.Beta, N, x, bo.Derivative); err != nil {
			return
		}
		eval = func() (*spectral.EvaluationResult, error) {
			return e.Evaluate(req)
		}
	}
	for i := 0; i < bo.Repeat; i++ {
		var res *spectral.EvaluationResult
		start := time.Now()
		if res, err = eval(); err != nil {
			return
		}
		elapsed = append(elapsed, time.Since(start).Seconds())
		if i == 0 {
			digest = res.Digest()
		}
	}
	data := stats.Float64Data(elapsed)
	mean, _ := data.Mean()
	median, _ := data.Median()
	minT, _ := data.Min()
	p90, _ := data.Percentile(90)
	fmt.Fprintf(w, "%s, N = %d, %d points, d = %d, parallel degree = %d\n",
		b, N, bo.Points, bo.Derivative, e.ParallelDegree())
	fmt.Fprintf(w, "%d runs: mean = %v, median = %v, min = %v, p90 = %v\n", bo.Repeat,
		seconds(mean), seconds(median), seconds(minT), seconds(p90))
	fmt.Fprintf(w, "%8.3f Mpoly/s (median)\n", float64((N+1)*bo.Points)/median/1.e6)
	fmt.Fprintf(w, "digest = %s\n", digest)
	if bo.Perf {
		var counters string
		counters, err = hardwareCounters(func() error {
			_, err := eval()
			return err
		})
		if err != nil {
			fmt.Fprintf(w, "hardware counters unavailable: %v\n", err)
			return nil
		}
		fmt.Fprintln(w, counters)
	}
	return
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
