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
	"math"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/spectral"
)

// NodesCmd represents the nodes command
var NodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print Gauss quadrature nodes, weights and differentiation matrices",
	Long: `
Prints the N+1 point Gauss-Jacobi rule for the weight (1-x)^α (1+x)^β, or the
Gauss-Lobatto-Jacobi rule with --lobatto. The Hermite families print the
Gauss-Hermite rule, for e^{-x²} or for Hermite functions. With --dr the
collocation differentiation matrix at the nodes follows:

gospectral nodes -a 0 -b 0 -n 4 --lobatto --dr
gospectral nodes -f hermiteF -n 8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			basis spectral.Basis
			N     int
			no    NodesOptions
		)
		if basis, N, err = basisFlags(cmd); err != nil {
			return
		}
		no.Lobatto, _ = cmd.Flags().GetBool("lobatto")
		no.Dr, _ = cmd.Flags().GetBool("dr")
		err = RunNodes(os.Stdout, basis, N, no)
		reportMemory()
		return
	},
}

func init() {
	rootCmd.AddCommand(NodesCmd)
	addBasisFlags(NodesCmd, 4)
	NodesCmd.Flags().Bool("lobatto", false, "include the endpoints, Gauss-Lobatto-Jacobi rule")
	NodesCmd.Flags().Bool("dr", false, "print the collocation differentiation matrix")
}

const familyUsage = "Jacobi, Legendre, ChebyshevT, ChebyshevU, Gegenbauer, Hermite or HermiteFunction"

// addBasisFlags registers the flags selecting a polynomial family and degree.
func addBasisFlags(cmd *cobra.Command, defaultN int) {
	cmd.Flags().Float64P("alpha", "a", 0, "Jacobi weight exponent α > -1 of (1-x)")
	cmd.Flags().Float64P("beta", "b", 0, "Jacobi weight exponent β > -1 of (1+x)")
	cmd.Flags().Float64("lambda", 0.5, "Gegenbauer parameter λ > -1/2")
	cmd.Flags().StringP("family", "f", "Jacobi", familyUsage)
	cmd.Flags().IntP("n", "n", defaultN, "polynomial degree")
}

func basisFlags(cmd *cobra.Command) (b spectral.Basis, N int, err error) {
	flags := cmd.Flags()
	family, _ := flags.GetString("family")
	if b.Family, err = spectral.NewFamily(family); err != nil {
		return
	}
	b.Alpha, _ = flags.GetFloat64("alpha")
	b.Beta, _ = flags.GetFloat64("beta")
	b.Lambda, _ = flags.GetFloat64("lambda")
	N, _ = flags.GetInt("n")
	return
}

type NodesOptions struct {
	Lobatto bool
	Dr      bool
}

// RunNodes writes the quadrature rule of degree N for basis b to w, and the
// differentiation matrix at its nodes with no.Dr. The Hermite functions use
// the scale c = 1/sqrt(2) for the matrix.
func RunNodes(w io.Writer, b spectral.Basis, N int, no NodesOptions) (err error) {
	var (
		jp   spectral.JacobiParameters
		x, q []float64
		Dr   *mat.Dense
		rule = "Gauss-Jacobi"
	)
	switch {
	case b.Family.IsHermite():
		if no.Lobatto {
			return fmt.Errorf("no Gauss-Lobatto rule on the real line for %v: %w", b, spectral.ErrInvalidParameter)
		}
		rule = "Gauss-Hermite"
		c := 0.
		if b.Family == spectral.HermiteFunction {
			c = 1 / math.Sqrt2
		}
		x, q, Dr, err = spectral.HermiteGQDr(N, c)
	case no.Lobatto:
		if jp, err = b.Parameters(); err != nil {
			return
		}
		rule = "Gauss-Lobatto-Jacobi"
		x, q, Dr, err = spectral.JacobiGLDr(jp.Alpha, jp.Beta, N)
	default:
		if jp, err = b.Parameters(); err != nil {
			return
		}
		x, q, Dr, err = spectral.JacobiGQDr(jp.Alpha, jp.Beta, N)
	}
	if err != nil {
		return
	}
	fmt.Fprintf(w, "%s, %s, N = %d\n", rule, b, N)
	fmt.Fprintf(w, "%4s %24s %24s\n", "i", "x", "w")
	for i := range x {
		fmt.Fprintf(w, "%4d %24.16e %24.16e\n", i, x[i], q[i])
	}
	if no.Dr {
		fmt.Fprintf(w, "Dr\n%v\n", mat.Formatted(Dr, mat.Squeeze()))
	}
	return
}
