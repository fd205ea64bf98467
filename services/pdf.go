package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pdfMargin   = 40.0
	pdfWidth    = 595.0
	pdfRowH     = 18.0
	pdfValueCol = 120.0
)

// RenderQuotePDF returns a one-page A4 quote sheet.
func RenderQuotePDF(cat *Catalog, q *models.Quote) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("nil quote")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Orçamento Óticas Vizz", true)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentW := pdfWidth - 2*pdfMargin

	// Header band
	pdf.SetFillColor(38, 38, 38)
	pdf.Rect(0, 0, pdfWidth, 90, "F")
	pdf.SetTextColor(250, 204, 21)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(pdfMargin, 28)
	pdf.CellFormat(contentW, 24, tr("Óticas Vizz"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(pdfMargin)
	pdf.CellFormat(contentW, 14, tr("Orçamento automático de lentes"), "", 1, "L", false, 0, "")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetY(110)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 12, tr(fmt.Sprintf("Orçamento %s  -  %s", q.ID, q.CreatedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	if q.CustomerName != "" {
		pdf.CellFormat(contentW, 12, tr("Cliente: "+q.CustomerName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Selections
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 16, tr("Sua escolha"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range selectionLines(cat, q.Selections) {
		pdf.CellFormat(contentW, 14, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Breakdown table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(contentW-pdfValueCol, pdfRowH, tr("Item"), "B", 0, "L", true, 0, "")
	pdf.CellFormat(pdfValueCol, pdfRowH, tr("Valor"), "B", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range q.Budget.Breakdown {
		pdf.CellFormat(contentW-pdfValueCol, pdfRowH, tr(line.Label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(pdfValueCol, pdfRowH, tr(utils.FormatBRL(line.Value)), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	summaryRow(pdf, tr, contentW, "Valor original", utils.FormatBRL(q.Summary.Original), false)
	summaryRow(pdf, tr, contentW, "Desconto", "- "+utils.FormatBRL(q.Summary.Discount), false)
	summaryRow(pdf, tr, contentW, "Valor final", utils.FormatBRL(q.Summary.Final), true)
	summaryRow(pdf, tr, contentW,
		fmt.Sprintf("ou %dx sem juros de", q.Summary.Installments),
		utils.FormatBRL(q.Summary.Installment), false)

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(contentW, 11, tr("Valores estimados. O preço final depende da avaliação da sua receita. "+
		"Envie a receita pelo WhatsApp (11) 2362-8799. Av. do Oratório, 4869 - Jardim Guairaçá, São Paulo."), "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryRow(pdf *gofpdf.Fpdf, tr func(string) string, contentW float64, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 11)
	pdf.CellFormat(contentW-pdfValueCol, pdfRowH, tr(label), "", 0, "R", false, 0, "")
	pdf.CellFormat(pdfValueCol, pdfRowH, tr(value), "", 1, "R", false, 0, "")
}

func selectionLines(cat *Catalog, sel models.Selections) []string {
	var lines []string
	if lens, ok := cat.LensType(sel.LensType); ok {
		lines = append(lines, "Lente: "+lens.Label)
	}
	if sel.VisionField != nil && lensRules[sel.LensType].strategy == strategyFieldTier {
		if field, ok := cat.VisionField(*sel.VisionField); ok {
			lines = append(lines, "Campo de visão: "+field.Label)
		}
	}
	if index, ok := cat.RefractiveIndex(sel.RefractiveIndex); ok {
		lines = append(lines, "Índice: "+index.Label)
	}
	var treatments []string
	for _, id := range sel.Treatments {
		if t, ok := cat.Treatment(id); ok {
			treatments = append(treatments, t.Label)
		}
	}
	if len(treatments) > 0 {
		lines = append(lines, "Tratamentos: "+strings.Join(treatments, ", "))
	}
	return lines
}
