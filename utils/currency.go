package utils

import (
	"github.com/WilkerGw/LP-OTICA/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatAmount formats centavos the pt-BR way: 1.799,90
func FormatAmount(m models.Money) string {
	return brPrinter.Sprintf("%.2f", m.Reais())
}

// FormatBRL formats centavos as a price tag: R$ 1.799,90
func FormatBRL(m models.Money) string {
	if m < 0 {
		return "- R$ " + FormatAmount(-m)
	}
	return "R$ " + FormatAmount(m)
}
