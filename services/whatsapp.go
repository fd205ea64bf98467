package services

import (
	"net/url"
	"strings"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"
)

// BuildWhatsAppMessage writes the quote summary the visitor sends to the
// store when confirming a budget.
func BuildWhatsAppMessage(cat *Catalog, sel models.Selections, summary models.PriceSummary) string {
	lensLabel := ""
	if lens, ok := cat.LensType(sel.LensType); ok {
		lensLabel = lens.Label
	}
	fieldLabel := ""
	if sel.VisionField != nil && lensRules[sel.LensType].strategy == strategyFieldTier {
		if field, ok := cat.VisionField(*sel.VisionField); ok {
			fieldLabel = field.Label
		}
	}
	indexLabel := ""
	if index, ok := cat.RefractiveIndex(sel.RefractiveIndex); ok {
		indexLabel = index.Label
	}
	var treatments []string
	for _, id := range sel.Treatments {
		if t, ok := cat.Treatment(id); ok {
			treatments = append(treatments, t.Label)
		}
	}

	lines := []string{
		"Olá! Fiz o orçamento automático no site e gostaria de confirmar:",
		"",
		"🔹 Lente: " + lensLabel,
	}
	if fieldLabel != "" {
		lines = append(lines, "🔹 Campo: "+fieldLabel)
	}
	lines = append(lines, "🔹 Índice: "+indexLabel)
	if len(treatments) > 0 {
		lines = append(lines, "🔹 Tratamentos: "+strings.Join(treatments, ", "))
	}
	lines = append(lines,
		"",
		"💰 Valor Original: "+utils.FormatBRL(summary.Original),
		"🏷️ Desconto: - "+utils.FormatBRL(summary.Discount),
		"✅ Valor Final: "+utils.FormatBRL(summary.Final),
	)

	return strings.Join(lines, "\n")
}

// BuildWhatsAppLink returns a wa.me deep link carrying the message.
func BuildWhatsAppLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + encodeURIComponent(message)
}

// uriComponentUnescaper restores what encodeURIComponent leaves alone but
// url.QueryEscape escapes. QueryEscape turns spaces into "+", wa.me wants %20.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
