package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/kr/text"
	"github.com/spf13/cobra"
)

var (
	quoteLens       string
	quoteField      string
	quoteIndex      string
	quoteTreatments []string
	quoteDiscount   string
	quoteWhatsApp   bool
)

// quoteCmd prices a selection offline, the same way the wizard does.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a lens selection",
	Long: `Price a lens selection with the embedded catalog and print the breakdown.

Example:
  lp-otica quote --lens multifocal --field premium --index 1.67 --treatment filtro-azul`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteLens, "lens", models.LensMonofocal, "lens type id")
	quoteCmd.Flags().StringVar(&quoteField, "field", "", "vision field id (multifocal only)")
	quoteCmd.Flags().StringVar(&quoteIndex, "index", "", "refractive index id")
	quoteCmd.Flags().StringSliceVar(&quoteTreatments, "treatment", nil, "treatment id (repeatable)")
	quoteCmd.Flags().StringVar(&quoteDiscount, "discount", models.Reais(200).String(), "promotional discount in reais")
	quoteCmd.Flags().BoolVar(&quoteWhatsApp, "whatsapp", false, "also print the WhatsApp link")
}

func runQuote(cmd *cobra.Command, args []string) error {
	discount, err := models.ParseMoney(quoteDiscount)
	if err != nil || discount < 0 {
		return fmt.Errorf("invalid --discount %q", quoteDiscount)
	}

	sel := models.Selections{
		LensType:        quoteLens,
		RefractiveIndex: quoteIndex,
		Treatments:      quoteTreatments,
	}
	if quoteField != "" && quoteLens == models.LensMultifocal {
		field := quoteField
		sel.VisionField = &field
	}

	catalog := services.DefaultCatalog()
	quotes := services.NewQuoteService(services.NewMemoryQuoteRepository(), catalog, nil, services.QuoteOptions{
		Discount:       discount,
		WhatsAppNumber: config.DefaultWhatsAppPhone,
	})

	budget, summary, link := quotes.Price(sel)
	writeQuote(cmd.OutOrStdout(), budget, summary)

	var selErr *services.SelectionError
	if err := services.ValidateSelections(catalog, sel); errors.As(err, &selErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️ Incomplete selection: %s\n", selErr.Error())
	}

	if quoteWhatsApp {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}
	return nil
}

func writeQuote(w io.Writer, budget models.BudgetResult, summary models.PriceSummary) {
	var lines strings.Builder
	for _, line := range budget.Breakdown {
		fmt.Fprintf(&lines, "%-40s %14s\n", line.Label, utils.FormatBRL(line.Value))
	}

	fmt.Fprintln(w, "Orçamento")
	fmt.Fprint(w, text.Indent(lines.String(), "  "))
	fmt.Fprintf(w, "%-42s %14s\n", "Total", utils.FormatBRL(summary.Original))
	fmt.Fprintf(w, "%-42s %14s\n", "Desconto", "- "+utils.FormatBRL(summary.Discount))
	fmt.Fprintf(w, "%-42s %14s\n", "Valor Final", utils.FormatBRL(summary.Final))
	fmt.Fprintf(w, "%-42s %14s\n", fmt.Sprintf("%dx sem juros", summary.Installments), utils.FormatBRL(summary.Installment))
}
