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

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gospectral",
	Short: "Orthonormal Jacobi polynomial tables, quadrature and checks",
	Long: `
Evaluates orthonormal Jacobi polynomials P_0..P_N with weight (1-x)^α (1+x)^β
and their derivatives at a set of points, along with the matching
Gauss-Jacobi quadrature and accuracy diagnostics.

gospectral eval -a 0 -b 0 -n 4 --linspace 5`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gospectral.yaml)")
	rootCmd.PersistentFlags().IntP("parallel", "p", 1, "number of goroutines splitting the points, 0 = one per CPU")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "echo parameters and memory usage")
	_ = viper.BindPFlag("parallel", rootCmd.PersistentFlags().Lookup("parallel"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".gospectral" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gospectral")
	}
	viper.SetEnvPrefix("GOSPECTRAL")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// newEvaluator returns a caching evaluator split across the configured
// parallel degree.
func newEvaluator(opts ...spectral.Option) *spectral.Evaluator {
	opts = append([]spectral.Option{spectral.WithCache(), spectral.WithParallelDegree(viper.GetInt("parallel"))}, opts...)
	return spectral.NewEvaluator(opts...)
}

func reportMemory() {
	if viper.GetBool("verbose") {
		fmt.Println(utils.GetMemUsage())
	}
}
