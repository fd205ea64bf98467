package services

import (
	"errors"
	"testing"

	"github.com/WilkerGw/LP-OTICA/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sumLines(lines []models.BudgetLine) models.Money {
	var total models.Money
	for _, l := range lines {
		total += l.Value
	}
	return total
}

func TestCalculateBudget(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		name  string
		sel   models.Selections
		total models.Money
		lines []models.BudgetLine
	}{
		{
			name:  "monofocal standard index",
			sel:   models.Selections{LensType: "monofocal", RefractiveIndex: "1.50"},
			total: models.Reais(359.90),
			lines: []models.BudgetLine{{Label: "Lente Monofocal + Índice 1.50 Standard", Value: models.Reais(359.90)}},
		},
		{
			name:  "monofocal ignores vision field",
			sel:   models.Selections{LensType: "monofocal", VisionField: strPtr("premium"), RefractiveIndex: "1.67"},
			total: models.Reais(899.90),
			lines: []models.BudgetLine{{Label: "Lente Monofocal + Índice 1.67 High-Index", Value: models.Reais(899.90)}},
		},
		{
			name:  "monofocal with treatments",
			sel:   models.Selections{LensType: "monofocal", RefractiveIndex: "1.56", Treatments: []string{"antirreflexo", "filtro-azul"}},
			total: models.Reais(539.90),
			lines: []models.BudgetLine{
				{Label: "Lente Monofocal + Índice 1.56 Mid-Index", Value: models.Reais(399.90)},
				{Label: "Antirreflexo", Value: models.Reais(40)},
				{Label: "Filtro de Luz Azul", Value: models.Reais(100)},
			},
		},
		{
			name:  "multifocal basic standard index has no index line",
			sel:   models.Selections{LensType: "multifocal", VisionField: strPtr("basica"), RefractiveIndex: "1.50"},
			total: models.Reais(599.90),
			lines: []models.BudgetLine{{Label: "Lente Multifocal Básica", Value: models.Reais(599.90)}},
		},
		{
			name: "multifocal premium thin index polarized",
			sel: models.Selections{
				LensType:        "multifocal",
				VisionField:     strPtr("premium"),
				RefractiveIndex: "1.74",
				Treatments:      []string{"polarizado"},
			},
			total: models.Reais(2169.90),
			lines: []models.BudgetLine{
				{Label: "Lente Multifocal Premium", Value: models.Reais(1799.90)},
				{Label: "Índice 1.74 Ultra Fina", Value: models.Reais(220)},
				{Label: "Polarizado", Value: models.Reais(150)},
			},
		},
		{
			name: "multifocal includes anti-reflective",
			sel: models.Selections{
				LensType:        "multifocal",
				VisionField:     strPtr("intermediaria"),
				RefractiveIndex: "1.61",
				Treatments:      []string{"antirreflexo", "fotossensivel"},
			},
			total: models.Reais(1269.90),
			lines: []models.BudgetLine{
				{Label: "Lente Multifocal Intermediária", Value: models.Reais(999.90)},
				{Label: "Índice 1.61 Alto Índice", Value: models.Reais(150)},
				{Label: "Antirreflexo (Incluso)", Value: 0},
				{Label: "Fotossensível", Value: models.Reais(120)},
			},
		},
		{
			name:  "multifocal without field uses the lens base price",
			sel:   models.Selections{LensType: "multifocal"},
			total: models.Reais(599.90),
			lines: []models.BudgetLine{{Label: "Multifocal", Value: models.Reais(599.90)}},
		},
		{
			name:  "monofocal without index prices nothing",
			sel:   models.Selections{LensType: "monofocal", Treatments: []string{"antirreflexo"}},
			total: models.Reais(40),
			lines: []models.BudgetLine{{Label: "Antirreflexo", Value: models.Reais(40)}},
		},
		{
			name:  "unknown lens type falls back to a generic lens",
			sel:   models.Selections{LensType: "bifocal", RefractiveIndex: "1.59"},
			total: models.Reais(210),
			lines: []models.BudgetLine{
				{Label: "Lente", Value: models.Reais(150)},
				{Label: "Índice 1.59 Policarbonato", Value: models.Reais(60)},
			},
		},
		{
			name:  "unknown and duplicated treatments",
			sel:   models.Selections{LensType: "monofocal", RefractiveIndex: "1.50", Treatments: []string{"hidrofobico", "laser", "hidrofobico"}},
			total: models.Reais(509.90),
			lines: []models.BudgetLine{
				{Label: "Lente Monofocal + Índice 1.50 Standard", Value: models.Reais(359.90)},
				{Label: "Hidrofóbico", Value: models.Reais(150)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBudget(cat, tt.sel)
			assert.Equal(t, tt.total, got.Total)
			if diff := cmp.Diff(tt.lines, got.Breakdown); diff != "" {
				t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateBudget_TotalIsSumOfBreakdown(t *testing.T) {
	cat := DefaultCatalog()
	tables := cat.Tables()

	var treatments []string
	for _, tr := range tables.Treatments {
		treatments = append(treatments, tr.ID)
	}

	for _, lens := range tables.LensTypes {
		for _, field := range tables.VisionFields {
			for _, idx := range tables.RefractiveIndices {
				for n := 0; n <= len(treatments); n++ {
					sel := models.Selections{
						LensType:        lens.ID,
						VisionField:     strPtr(field.ID),
						RefractiveIndex: idx.ID,
						Treatments:      treatments[:n],
					}
					got := CalculateBudget(cat, sel)
					require.Equal(t, sumLines(got.Breakdown), got.Total, "%+v", sel)
					require.Greater(t, got.Total, models.Money(0))
					for _, line := range got.Breakdown {
						require.GreaterOrEqual(t, line.Value, models.Money(0))
					}
				}
			}
		}
	}
}

func TestCalculateBudget_DoesNotModifySelections(t *testing.T) {
	sel := models.Selections{LensType: "multifocal", VisionField: strPtr("basica"), RefractiveIndex: "1.50", Treatments: []string{"antirreflexo"}}
	before := sel.Clone()

	CalculateBudget(DefaultCatalog(), sel)

	assert.Equal(t, before, sel)
}

func TestValidateSelections(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		name  string
		sel   models.Selections
		field string
		err   error
	}{
		{"complete monofocal", models.Selections{LensType: "monofocal", RefractiveIndex: "1.50"}, "", nil},
		{"complete multifocal", models.Selections{LensType: "multifocal", VisionField: strPtr("premium"), RefractiveIndex: "1.74", Treatments: []string{"antirreflexo"}}, "", nil},
		{"no lens", models.Selections{}, "lens_type", ErrIncompleteSelection},
		{"unknown lens", models.Selections{LensType: "bifocal", RefractiveIndex: "1.50"}, "lens_type", ErrUnknownOption},
		{"multifocal without field", models.Selections{LensType: "multifocal", RefractiveIndex: "1.50"}, "vision_field", ErrIncompleteSelection},
		{"unknown field", models.Selections{LensType: "multifocal", VisionField: strPtr("gold"), RefractiveIndex: "1.50"}, "vision_field", ErrUnknownOption},
		{"monofocal without index", models.Selections{LensType: "monofocal"}, "refractive_index", ErrIncompleteSelection},
		{"unknown index", models.Selections{LensType: "monofocal", RefractiveIndex: "2.00"}, "refractive_index", ErrUnknownOption},
		{"unknown treatment", models.Selections{LensType: "monofocal", RefractiveIndex: "1.50", Treatments: []string{"laser"}}, "treatments", ErrUnknownOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelections(cat, tt.sel)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))

			var selErr *SelectionError
			require.True(t, errors.As(err, &selErr))
			assert.Equal(t, tt.field, selErr.Field)
		})
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(models.Reais(2169.90), models.Reais(200))
	assert.Equal(t, models.PriceSummary{
		Original:     models.Reais(2169.90),
		Discount:     models.Reais(200),
		Final:        models.Reais(1969.90),
		Installments: 10,
		Installment:  models.Reais(196.99),
	}, got)

	// discount larger than the total never goes negative
	small := Summarize(models.Reais(40), models.Reais(200))
	assert.Equal(t, models.Money(0), small.Final)
	assert.Equal(t, models.Reais(40), small.Discount)
	assert.Equal(t, models.Money(0), small.Installment)

	none := Summarize(models.Reais(359.90), 0)
	assert.Equal(t, models.Reais(359.90), none.Final)
	assert.Equal(t, models.Reais(35.99), none.Installment)
}
