package models

// ============================================================================
// CATÁLOGO - tabelas de opções de lentes
// ============================================================================

// Option is one selectable entry of a catalog table. Order inside a table is
// display order.
type Option struct {
	ID               string `json:"id" yaml:"id"`
	Label            string `json:"label" yaml:"label"`
	Description      string `json:"description" yaml:"description"`
	Price            Money  `json:"price" yaml:"price"`
	MonofocalPrice   *Money `json:"monofocal_price,omitempty" yaml:"monofocal_price,omitempty"`
	RecommendedRange string `json:"recommended_range,omitempty" yaml:"recommended_range,omitempty"`
	Image            string `json:"image,omitempty" yaml:"image,omitempty"`
}

type Catalog struct {
	LensTypes         []Option `json:"lens_types" yaml:"lens_types"`
	VisionFields      []Option `json:"vision_fields" yaml:"vision_fields"`
	RefractiveIndices []Option `json:"refractive_indices" yaml:"refractive_indices"`
	Treatments        []Option `json:"treatments" yaml:"treatments"`

	LensMaterials []LensMaterial `json:"lens_materials,omitempty" yaml:"lens_materials,omitempty"`
}

// ============================================================================
// SELECTIONS & BUDGET
// ============================================================================

const (
	LensMonofocal  = "monofocal"
	LensMultifocal = "multifocal"

	TreatmentAntiReflective = "antirreflexo"
)

// Selections holds the wizard choices of one visitor. VisionField stays nil
// unless the lens type is multifocal.
type Selections struct {
	LensType        string   `json:"lens_type"`
	VisionField     *string  `json:"vision_field"`
	RefractiveIndex string   `json:"refractive_index"`
	Treatments      []string `json:"treatments"`
}

// Clone returns a deep copy so reducers never share slices between states.
func (s Selections) Clone() Selections {
	out := s
	if s.VisionField != nil {
		v := *s.VisionField
		out.VisionField = &v
	}
	out.Treatments = append([]string{}, s.Treatments...)
	return out
}

func (s Selections) HasTreatment(id string) bool {
	for _, t := range s.Treatments {
		if t == id {
			return true
		}
	}
	return false
}

type BudgetLine struct {
	Label string `json:"label"`
	Value Money  `json:"value"`
}

type BudgetResult struct {
	Total     Money        `json:"total"`
	Breakdown []BudgetLine `json:"breakdown"`
}

// PriceSummary carries the figures shown next to a budget once the
// promotional discount is applied.
type PriceSummary struct {
	Original     Money `json:"original"`
	Discount     Money `json:"discount"`
	Final        Money `json:"final"`
	Installments int   `json:"installments"`
	Installment  Money `json:"installment"`
}

type BudgetRequest struct {
	Selections Selections `json:"selections"`
}

type BudgetResponse struct {
	Budget      BudgetResult `json:"budget"`
	Summary     PriceSummary `json:"summary"`
	WhatsAppURL string       `json:"whatsapp_url"`
	Complete    bool         `json:"complete"`
	Missing     string       `json:"missing,omitempty"`
}
