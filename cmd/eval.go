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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gospectral/InputParameters"
	"github.com/notargets/gospectral/spectral"
)

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate orthonormal polynomials and derivatives at a set of points",
	Long: `
Prints the table P_n(x_j), n = 0..N, and optionally the d-th derivative table,
followed by a digest of the result. Parameters come from flags or from a YAML
file (-I):

gospectral eval -f legendre -n 3 --points -1,0,0.5,1 -d 1`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.EvalParameters
		if ip, err = processEvalInput(cmd); err != nil {
			return
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		if ip.ParallelDegree == 0 {
			ip.ParallelDegree = viper.GetInt("parallel")
		}
		err = RunEval(os.Stdout, ip)
		reportMemory()
		return
	},
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().Float64P("alpha", "a", 0, "Jacobi weight exponent α > -1 of (1-x)")
	EvalCmd.Flags().Float64P("beta", "b", 0, "Jacobi weight exponent β > -1 of (1+x)")
	EvalCmd.Flags().Float64("lambda", 0.5, "Gegenbauer parameter λ > -1/2")
	EvalCmd.Flags().IntP("n", "n", 4, "maximum polynomial degree")
	EvalCmd.Flags().IntP("derivative", "d", 0, "derivative order, 0 for values only")
	EvalCmd.Flags().StringP("family", "f", "Jacobi", familyUsage)
	EvalCmd.Flags().Float64Slice("points", nil, "evaluation points, comma separated")
	EvalCmd.Flags().Int("linspace", 5, "number of equispaced points on [-1,1], used without --points")
	EvalCmd.Flags().Bool("strict", false, "reject points outside [-1,1], Jacobi families only")
	EvalCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for evaluation parameters")
}

func processEvalInput(cmd *cobra.Command) (ip *InputParameters.EvalParameters, err error) {
	var fileName string
	if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	ip = &InputParameters.EvalParameters{}
	if len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", fileName, err)
		}
		return
	}
	flags := cmd.Flags()
	ip.Title = "command line"
	ip.Family, _ = flags.GetString("family")
	ip.Alpha, _ = flags.GetFloat64("alpha")
	ip.Beta, _ = flags.GetFloat64("beta")
	ip.Lambda, _ = flags.GetFloat64("lambda")
	ip.MaxDegree, _ = flags.GetInt("n")
	ip.DerivativeOrder, _ = flags.GetInt("derivative")
	ip.Points, _ = flags.GetFloat64Slice("points")
	ip.Linspace, _ = flags.GetInt("linspace")
	ip.StrictDomain, _ = flags.GetBool("strict")
	return
}

// RunEval evaluates the request described by ip and writes the tables and
// digest to w.
func RunEval(w io.Writer, ip *InputParameters.EvalParameters) (err error) {
	var (
		res *spectral.EvaluationResult
		b   spectral.Basis
	)
	if b, err = ip.Basis(); err != nil {
		return
	}
	if res, err = ip.Evaluate(ip.Evaluator(spectral.WithCache())); err != nil {
		return
	}
	fmt.Fprintf(w, "%s, N = %d, %d points\n", b, res.MaxDegree, len(res.Points))
	printTable(w, "P_n(x)", res.Points, res.MaxDegree, res.Row)
	if res.Derivatives != nil {
		printTable(w, fmt.Sprintf("d^%d/dx^%d P_n(x)", res.DerivativeOrder, res.DerivativeOrder),
			res.Points, res.MaxDegree, res.DerivativeRow)
	}
	fmt.Fprintf(w, "digest = %s\n", res.Digest())
	return
}

// printTable writes rows 0..N, one column per point.
func printTable(w io.Writer, title string, x []float64, N int, row func(n int) []float64) {
	fmt.Fprintf(w, "%s\n%4s", title, "n")
	for _, xj := range x {
		fmt.Fprintf(w, " %14.6g", xj)
	}
	fmt.Fprintln(w)
	for n := 0; n <= N; n++ {
		fmt.Fprintf(w, "%4d", n)
		for _, v := range row(n) {
			fmt.Fprintf(w, " %14.6e", v)
		}
		fmt.Fprintln(w)
	}
}
