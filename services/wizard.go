package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/WilkerGw/LP-OTICA/models"
)

var (
	ErrCannotAdvance = errors.New("current step is not answered")
	ErrWrongStep     = errors.New("action not allowed on the current step")
	ErrUnknownAction = errors.New("unknown wizard action")
)

// StepSequence lists the question steps a visitor goes through. The vision
// field step only exists for multifocal lenses.
func StepSequence(sel models.Selections) []int {
	if lensRules[sel.LensType].strategy == strategyFieldTier {
		return []int{models.StepLensType, models.StepVisionField, models.StepRefractiveIndex, models.StepTreatments}
	}
	return []int{models.StepLensType, models.StepRefractiveIndex, models.StepTreatments}
}

func stepPosition(steps []int, step int) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return -1
}

// CanAdvance is the forward guard of the current step.
func CanAdvance(state models.WizardState) bool {
	sel := state.Selections
	switch state.Step {
	case models.StepIntro:
		return true
	case models.StepLensType:
		return sel.LensType != ""
	case models.StepVisionField:
		return sel.VisionField != nil
	case models.StepRefractiveIndex:
		return sel.RefractiveIndex != ""
	case models.StepTreatments:
		return true
	}
	return false
}

// Progress returns the completion percentage shown in the progress bar.
func Progress(state models.WizardState) float64 {
	switch state.Step {
	case models.StepResult:
		return 100
	case models.StepIntro:
		return 0
	}
	steps := StepSequence(state.Selections)
	pos := stepPosition(steps, state.Step)
	if pos < 0 {
		return 0
	}
	return float64(pos+1) / float64(len(steps)) * 100
}

// Reduce applies one action to a wizard state and returns the next state.
// The input state is never modified.
func Reduce(cat *Catalog, state models.WizardState, action models.WizardAction) (models.WizardState, error) {
	next := models.WizardState{Step: state.Step, Selections: state.Selections.Clone()}
	sel := &next.Selections

	switch action.Type {
	case models.ActionStart:
		if next.Step == models.StepIntro {
			next.Step = models.StepLensType
		}

	case models.ActionSelectLensType:
		if next.Step != models.StepLensType {
			return state, ErrWrongStep
		}
		if _, ok := cat.LensType(action.Value); !ok {
			return state, fmt.Errorf("%w: lens type %q", ErrUnknownOption, action.Value)
		}
		sel.LensType = action.Value
		if lensRules[sel.LensType].strategy != strategyFieldTier {
			sel.VisionField = nil
		}

	case models.ActionSelectVisionField:
		if next.Step != models.StepVisionField {
			return state, ErrWrongStep
		}
		if _, ok := cat.VisionField(action.Value); !ok {
			return state, fmt.Errorf("%w: vision field %q", ErrUnknownOption, action.Value)
		}
		v := action.Value
		sel.VisionField = &v

	case models.ActionSelectRefractiveIndex:
		if next.Step != models.StepRefractiveIndex {
			return state, ErrWrongStep
		}
		if _, ok := cat.RefractiveIndex(action.Value); !ok {
			return state, fmt.Errorf("%w: refractive index %q", ErrUnknownOption, action.Value)
		}
		sel.RefractiveIndex = action.Value

	case models.ActionToggleTreatment:
		if next.Step != models.StepTreatments {
			return state, ErrWrongStep
		}
		if _, ok := cat.Treatment(action.Value); !ok {
			return state, fmt.Errorf("%w: treatment %q", ErrUnknownOption, action.Value)
		}
		// included treatments stay selected while the lens includes them
		if !lensRules[sel.LensType].included[action.Value] {
			toggleTreatment(sel, action.Value)
		}

	case models.ActionNext:
		switch next.Step {
		case models.StepIntro:
			next.Step = models.StepLensType
		case models.StepResult:
		default:
			if !CanAdvance(next) {
				return state, ErrCannotAdvance
			}
			steps := StepSequence(next.Selections)
			pos := stepPosition(steps, next.Step)
			if pos < 0 {
				return state, ErrWrongStep
			}
			if pos == len(steps)-1 {
				next.Step = models.StepResult
			} else {
				next.Step = steps[pos+1]
			}
		}

	case models.ActionBack:
		steps := StepSequence(next.Selections)
		if next.Step == models.StepResult {
			next.Step = steps[len(steps)-1]
		} else if pos := stepPosition(steps, next.Step); pos > 0 {
			next.Step = steps[pos-1]
		}

	case models.ActionRestart:
		next = models.NewWizardState()

	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	addIncludedTreatments(sel)
	return next, nil
}

// addIncludedTreatments makes sure the treatments that come free with the
// lens type are selected. They are not removed when the visitor switches lens
// type again.
func addIncludedTreatments(sel *models.Selections) {
	included := lensRules[sel.LensType].included
	ids := make([]string, 0, len(included))
	for id := range included {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !sel.HasTreatment(id) {
			sel.Treatments = append(sel.Treatments, id)
		}
	}
}

func toggleTreatment(sel *models.Selections, id string) {
	for i, t := range sel.Treatments {
		if t == id {
			sel.Treatments = append(sel.Treatments[:i], sel.Treatments[i+1:]...)
			return
		}
	}
	sel.Treatments = append(sel.Treatments, id)
}
