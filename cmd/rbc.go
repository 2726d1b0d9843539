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
	"go.uber.org/zap"

	"github.com/flowphys/chebdns/InputParameters"
	"github.com/flowphys/chebdns/model_problems/Boussinesq2D"
)

// RbcCmd represents the rbc command
var RbcCmd = &cobra.Command{
	Use:   "rbc",
	Short: "Rayleigh-Benard convection in a periodic channel",
	Long: `
Integrates Rayleigh-Benard convection between a hot bottom and a cold
top plate, Fourier in x and Chebyshev in y,

chebdns rbc `,
	Run: func(cmd *cobra.Command, args []string) {
		ip := InputParameters.NewDefaultParameters()
		if inputFile, _ := cmd.Flags().GetString("inputFile"); inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				fmt.Printf("unable to read input file %s: %v\n", inputFile, err)
				os.Exit(1)
			}
			if err = ip.Parse(data); err != nil {
				fmt.Printf("unable to parse input file %s: %v\n", inputFile, err)
				os.Exit(1)
			}
		}
		if ra, _ := cmd.Flags().GetFloat64("ra"); ra != 0 {
			ip.Ra = ra
		}
		if ft, _ := cmd.Flags().GetFloat64("finalTime"); ft != 0 {
			ip.FinalTime = ft
		}
		ip.Print()

		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}

		nv := Boussinesq2D.NewNavier2D(ip.Nx, ip.Ny, ip.Ra, ip.Pr, ip.Dt, ip.Aspect)
		nv.SaveInterval = ip.SaveInterval
		if ip.RestartFile != "" {
			if err := nv.Read(ip.RestartFile); err != nil {
				fmt.Printf("unable to restart from %s: %v\n", ip.RestartFile, err)
				os.Exit(1)
			}
		} else {
			nv.SetVelocity(0.2, 1, 1)
			nv.SetTemperature(0.2, 1, 1)
		}

		var (
			graph, _ = cmd.Flags().GetBool("graph")
			delay, _ = cmd.Flags().GetInt("delay")
		)
		nv.Run(ip.FinalTime, graph, time.Duration(delay)*time.Millisecond)

		if out, _ := cmd.Flags().GetString("output"); out != "" {
			if err := nv.WriteToFile(out); err != nil {
				zap.S().Errorw("unable to write restart file", "path", out, "error", err)
			}
			if err := nv.Diag.SavePlots("."); err != nil {
				zap.S().Errorw("unable to save diagnostics plots", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(RbcCmd)
	RbcCmd.Flags().StringP("inputFile", "f", "", "YAML parameter file, overrides the built-in defaults")
	RbcCmd.Flags().StringP("output", "o", "", "restart file written at the end of the run")
	RbcCmd.Flags().Float64("ra", 0, "Rayleigh number, overrides the parameter file")
	RbcCmd.Flags().Float64("finalTime", 0, "FinalTime - the target end time for the sim")
	RbcCmd.Flags().BoolP("graph", "g", false, "display the mean temperature profile while computing")
	RbcCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	RbcCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}
