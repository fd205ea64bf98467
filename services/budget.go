package services

import (
	"errors"
	"fmt"

	"github.com/WilkerGw/LP-OTICA/models"
)

// ============================================================================
// ORÇAMENTO - cálculo do preço das lentes
// ============================================================================

var ErrIncompleteSelection = errors.New("incomplete selection")

// pricingStrategy decides where the base line of a budget comes from.
type pricingStrategy int

const (
	// strategyFlat: lens type price as base line, index price as add-on.
	strategyFlat pricingStrategy = iota
	// strategyFieldTier: vision field tier price as base line, index price as add-on.
	strategyFieldTier
	// strategyAllInclusive: the index monofocal price is the whole lens.
	strategyAllInclusive
)

type lensRule struct {
	strategy pricingStrategy
	// treatments that come with the lens at no cost
	included map[string]bool
}

var lensRules = map[string]lensRule{
	models.LensMultifocal: {
		strategy: strategyFieldTier,
		included: map[string]bool{models.TreatmentAntiReflective: true},
	},
	models.LensMonofocal: {
		strategy: strategyAllInclusive,
	},
}

const (
	fallbackLensPrice = models.Money(15000)
	fallbackLensLabel = "Lente"

	PromoInstallments = 10
)

func ruleFor(cat *Catalog, lensType string) (models.Option, lensRule) {
	lens, ok := cat.LensType(lensType)
	if !ok {
		return models.Option{Label: fallbackLensLabel, Price: fallbackLensPrice}, lensRule{strategy: strategyFlat}
	}
	return lens, lensRules[lensType]
}

// CalculateBudget prices a set of selections. It never fails: unknown ids
// are skipped or replaced by defaults so a partially filled wizard can always
// be priced. Total is the sum of the breakdown values.
func CalculateBudget(cat *Catalog, sel models.Selections) models.BudgetResult {
	lens, rule := ruleFor(cat, sel.LensType)
	index, hasIndex := cat.RefractiveIndex(sel.RefractiveIndex)

	breakdown := make([]models.BudgetLine, 0, 2+len(sel.Treatments))

	switch rule.strategy {
	case strategyAllInclusive:
		if hasIndex && index.MonofocalPrice != nil {
			breakdown = append(breakdown, models.BudgetLine{
				Label: "Lente Monofocal + Índice " + index.Label,
				Value: *index.MonofocalPrice,
			})
		}
	case strategyFieldTier:
		base := models.BudgetLine{Label: lens.Label, Value: lens.Price}
		if sel.VisionField != nil {
			if field, ok := cat.VisionField(*sel.VisionField); ok {
				base = models.BudgetLine{Label: "Lente Multifocal " + field.Label, Value: field.Price}
			}
		}
		breakdown = append(breakdown, base)
		breakdown = appendIndexAddOn(breakdown, index, hasIndex)
	default:
		breakdown = append(breakdown, models.BudgetLine{Label: lens.Label, Value: lens.Price})
		breakdown = appendIndexAddOn(breakdown, index, hasIndex)
	}

	seen := make(map[string]bool, len(sel.Treatments))
	for _, id := range sel.Treatments {
		if seen[id] {
			continue
		}
		seen[id] = true

		treatment, ok := cat.Treatment(id)
		if !ok {
			continue
		}
		line := models.BudgetLine{Label: treatment.Label, Value: treatment.Price}
		if rule.included[id] {
			line = models.BudgetLine{Label: treatment.Label + " (Incluso)", Value: 0}
		}
		breakdown = append(breakdown, line)
	}

	var total models.Money
	for _, line := range breakdown {
		total += line.Value
	}

	return models.BudgetResult{Total: total, Breakdown: breakdown}
}

func appendIndexAddOn(breakdown []models.BudgetLine, index models.Option, ok bool) []models.BudgetLine {
	if !ok || index.Price <= 0 {
		return breakdown
	}
	return append(breakdown, models.BudgetLine{Label: "Índice " + index.Label, Value: index.Price})
}

// SelectionError reports which field keeps a selection from being quoted.
type SelectionError struct {
	Field string
	Value string
	Err   error
}

func (e *SelectionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s not selected", e.Err, e.Field)
	}
	return fmt.Sprintf("%v: %s %q", e.Err, e.Field, e.Value)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// ValidateSelections checks that a selection describes a lens that can
// actually be sold. Monofocal without an index prices at zero in
// CalculateBudget, so it is rejected here.
func ValidateSelections(cat *Catalog, sel models.Selections) error {
	if sel.LensType == "" {
		return &SelectionError{Field: "lens_type", Err: ErrIncompleteSelection}
	}
	if _, ok := cat.LensType(sel.LensType); !ok {
		return &SelectionError{Field: "lens_type", Value: sel.LensType, Err: ErrUnknownOption}
	}

	if lensRules[sel.LensType].strategy == strategyFieldTier {
		if sel.VisionField == nil || *sel.VisionField == "" {
			return &SelectionError{Field: "vision_field", Err: ErrIncompleteSelection}
		}
		if _, ok := cat.VisionField(*sel.VisionField); !ok {
			return &SelectionError{Field: "vision_field", Value: *sel.VisionField, Err: ErrUnknownOption}
		}
	}

	if sel.RefractiveIndex == "" {
		return &SelectionError{Field: "refractive_index", Err: ErrIncompleteSelection}
	}
	if _, ok := cat.RefractiveIndex(sel.RefractiveIndex); !ok {
		return &SelectionError{Field: "refractive_index", Value: sel.RefractiveIndex, Err: ErrUnknownOption}
	}

	for _, id := range sel.Treatments {
		if _, ok := cat.Treatment(id); !ok {
			return &SelectionError{Field: "treatments", Value: id, Err: ErrUnknownOption}
		}
	}

	return nil
}

// Summarize applies the flat promotional discount, floored at zero, and
// splits the final amount in interest-free installments.
func Summarize(total, discount models.Money) models.PriceSummary {
	applied := discount
	if applied > total {
		applied = total
	}
	if applied < 0 {
		applied = 0
	}
	final := total - applied

	return models.PriceSummary{
		Original:     total,
		Discount:     applied,
		Final:        final,
		Installments: PromoInstallments,
		Installment:  (final + PromoInstallments/2) / PromoInstallments,
	}
}
