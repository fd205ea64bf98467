package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/kr/text"
	"github.com/spf13/cobra"
)

var (
	simulateDegree float64
	simulateIndex  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compare lens thickness across refractive indices",
	Long: `Estimate edge and center thickness, in relative units, for a prescription degree.

Example:
  lp-otica simulate --degree=-4.5 --index 1.67`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := services.SimulateThickness(services.DefaultCatalog(), simulateDegree, simulateIndex)
		if err != nil {
			return err
		}
		writeThickness(cmd.OutOrStdout(), simulateDegree, results)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateDegree, "degree", 0, "spherical degree (negative for myopia)")
	simulateCmd.Flags().StringVar(&simulateIndex, "index", "", "refractive index id (all when empty)")
}

func writeThickness(w io.Writer, degree float64, results []models.ThicknessResult) {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%-22s %-22s borda %5.1f  centro %5.1f\n", r.Label, r.Material, r.Thickness.Edge, r.Thickness.Center)
		b.WriteString(text.Indent(strings.Join(r.Features, ", "), "    ") + "\n")
	}
	fmt.Fprintf(w, "Espessura estimada para grau %+.2f\n", degree)
	fmt.Fprintln(w, text.Indent(b.String(), "  "))
}
