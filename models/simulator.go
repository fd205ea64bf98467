package models

// ============================================================================
// SIMULADOR - espessura de lentes por índice de refração
// ============================================================================

// LensMaterial describes one refractive index in the thickness comparator.
// Index is the same id used by the refractive_indices table.
type LensMaterial struct {
	Index    string   `json:"index" yaml:"index"`
	Label    string   `json:"label" yaml:"label"`
	Material string   `json:"material" yaml:"material"`
	Features []string `json:"features" yaml:"features"`
	Image    string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// Thickness is a relative visual unit, not millimetres.
type Thickness struct {
	Edge   float64 `json:"edge"`
	Center float64 `json:"center"`
}

type ThicknessResult struct {
	LensMaterial
	Thickness Thickness `json:"thickness"`
}

type ThicknessResponse struct {
	Degree  float64           `json:"degree"`
	Results []ThicknessResult `json:"results"`
}
