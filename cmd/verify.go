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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check orthonormality and agreement with a high precision reference",
	Long: `
Forms the Gram matrix of P_0..P_N with Gauss quadrature and compares the
recurrence against the hypergeometric series, or the explicit Hermite sum,
evaluated in extended precision. The Jacobi families also report the relative
error away from roots. With --csv one row per degree is written for
tools/convOrder:

gospectral verify -f chebyshevT -n 32 --sweep --csv`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			basis spectral.Basis
			N     int
		)
		if basis, N, err = basisFlags(cmd); err != nil {
			return
		}
		vo := VerifyOptions{}
		vo.Points, _ = cmd.Flags().GetInt("points")
		vo.CSV, _ = cmd.Flags().GetBool("csv")
		vo.Sweep, _ = cmd.Flags().GetBool("sweep")
		vo.Title, _ = cmd.Flags().GetString("title")
		err = RunVerify(os.Stdout, basis, N, vo)
		reportMemory()
		return
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	addBasisFlags(VerifyCmd, 16)
	VerifyCmd.Flags().Int("points", 11, "number of equispaced points on [-1,1] for the reference check")
	VerifyCmd.Flags().Bool("csv", false, "write CSV rows instead of reports")
	VerifyCmd.Flags().Bool("sweep", false, "check every degree 1..N, not only N")
	VerifyCmd.Flags().String("title", "verify", "study title written to the CSV")
}

type VerifyOptions struct {
	Title  string
	Points int
	CSV    bool
	Sweep  bool
}

var verifyHeader = []string{"Title", "Family", "N", "OrthoMax", "OrthoMean", "RefMax", "RefMean"}

// RunVerify writes orthonormality and reference reports for basis b to w.
func RunVerify(w io.Writer, b spectral.Basis, N int, vo VerifyOptions) (err error) {
	var (
		jp     spectral.JacobiParameters
		points []float64
		csvW   *csv.Writer
		nMin   = N
	)
	if vo.Points < 1 {
		return fmt.Errorf("points = %d, must be >= 1: %w", vo.Points, spectral.ErrInvalidInput)
	}
	points = utils.Linspace(-1, 1, vo.Points)
	if !b.Family.IsHermite() {
		if jp, err = b.Parameters(); err != nil {
			return
		}
	}
	if vo.Sweep {
		nMin = min(1, N)
	}
	if vo.CSV {
		csvW = csv.NewWriter(w)
		if err = csvW.Write(verifyHeader); err != nil {
			return
		}
	}
	for n := nMin; n <= N; n++ {
		var ortho, ref, rel spectral.Report
		if b.Family.IsHermite() {
			if ortho, err = spectral.CheckHermiteOrthonormality(b.Family, n); err != nil {
				return
			}
			if ref, err = spectral.CheckHermiteReference(b.Family, n, points); err != nil {
				return
			}
		} else {
			if ortho, err = spectral.CheckOrthonormality(jp.Alpha, jp.Beta, n); err != nil {
				return
			}
			if ref, err = spectral.CheckReference(jp.Alpha, jp.Beta, n, points); err != nil {
				return
			}
			if csvW == nil {
				if rel, err = spectral.CheckReferenceRelative(jp.Alpha, jp.Beta, n, points, 0); err != nil {
					return
				}
			}
		}
		if csvW == nil {
			fmt.Fprintf(w, "%s\n%s\n", ortho, ref)
			if rel.Samples != 0 {
				fmt.Fprintf(w, "%s\n", rel)
			}
			continue
		}
		err = csvW.Write([]string{
			vo.Title, b.String(), strconv.Itoa(n),
			formatFloat(ortho.Max), formatFloat(ortho.Mean),
			formatFloat(ref.Max), formatFloat(ref.Mean),
		})
		if err != nil {
			return
		}
	}
	if csvW != nil {
		csvW.Flush()
		err = csvW.Error()
	}
	return
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'e', 6, 64)
}
