package models

import "time"

// Wizard steps. The numeric values are shared with the site front-end.
const (
	StepIntro           = -1
	StepLensType        = 0
	StepVisionField     = 1
	StepRefractiveIndex = 2
	StepTreatments      = 3
	StepResult          = 99
)

type WizardActionType string

const (
	ActionStart                 WizardActionType = "start"
	ActionSelectLensType        WizardActionType = "select_lens_type"
	ActionSelectVisionField     WizardActionType = "select_vision_field"
	ActionSelectRefractiveIndex WizardActionType = "select_refractive_index"
	ActionToggleTreatment       WizardActionType = "toggle_treatment"
	ActionNext                  WizardActionType = "next"
	ActionBack                  WizardActionType = "back"
	ActionRestart               WizardActionType = "restart"
)

type WizardState struct {
	Step       int        `json:"step"`
	Selections Selections `json:"selections"`
}

func NewWizardState() WizardState {
	return WizardState{
		Step:       StepIntro,
		Selections: Selections{Treatments: []string{}},
	}
}

type WizardAction struct {
	Type  WizardActionType `json:"type" binding:"required"`
	Value string           `json:"value,omitempty"`
}

// WizardView is what the API and the websocket stream return for a session.
// Version increases with every applied action; clients keep the highest one.
type WizardView struct {
	ID         string       `json:"id"`
	Version    uint64       `json:"version"`
	State      WizardState  `json:"state"`
	Steps      []int        `json:"steps"`
	Progress   float64      `json:"progress"`
	CanAdvance bool         `json:"can_advance"`
	Budget     BudgetResult `json:"budget"`
	Summary    PriceSummary `json:"summary"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
