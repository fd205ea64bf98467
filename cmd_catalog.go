package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/kr/text"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the embedded lens catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		writeCatalog(cmd.OutOrStdout(), services.DefaultCatalog().Tables())
		return nil
	},
}

func writeCatalog(w io.Writer, cat models.Catalog) {
	writeTable(w, "Tipos de lente", cat.LensTypes)
	writeTable(w, "Campos de visão", cat.VisionFields)
	writeTable(w, "Índices de refração", cat.RefractiveIndices)
	writeTable(w, "Tratamentos", cat.Treatments)
}

func writeTable(w io.Writer, title string, opts []models.Option) {
	var b strings.Builder
	for _, opt := range opts {
		price := utils.FormatBRL(opt.Price)
		if opt.MonofocalPrice != nil {
			price += " (monofocal " + utils.FormatBRL(*opt.MonofocalPrice) + ")"
		}
		fmt.Fprintf(&b, "%-14s %-28s %s\n", opt.ID, opt.Label, price)
		if opt.Description != "" {
			b.WriteString(text.Indent(text.Wrap(opt.Description, 60), "    ") + "\n")
		}
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, text.Indent(b.String(), "  "))
}
