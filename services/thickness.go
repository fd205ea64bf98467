package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/WilkerGw/LP-OTICA/models"
)

// Visual scale of the thickness simulator.
const (
	thicknessFactor    = 2.5
	minCenterThickness = 1.5 // plus lenses
	minEdgeThickness   = 1.5 // minus lenses
)

var ErrInvalidDegree = errors.New("invalid degree")

// CalculateThickness estimates edge and center thickness of a lens in
// relative units. Thickness grows with |degree| / (index - 1): minus lenses
// thicken at the edge and plus lenses at the center.
func CalculateThickness(degree, index float64) (models.Thickness, error) {
	if math.IsNaN(degree) || math.IsInf(degree, 0) {
		return models.Thickness{}, ErrInvalidDegree
	}
	if !(index > 1) || math.IsInf(index, 0) {
		return models.Thickness{}, fmt.Errorf("%w: refractive index %v", ErrUnknownOption, index)
	}

	extra := math.Abs(degree) / (index - 1) * thicknessFactor
	switch {
	case degree < 0:
		return models.Thickness{Edge: minEdgeThickness + extra, Center: minCenterThickness}, nil
	case degree > 0:
		return models.Thickness{Edge: minEdgeThickness, Center: minCenterThickness + extra}, nil
	default:
		return models.Thickness{Edge: minEdgeThickness, Center: minCenterThickness}, nil
	}
}

// SimulateThickness runs the calculation for one material of the catalog, or
// for every material when index is empty.
func SimulateThickness(cat *Catalog, degree float64, index string) ([]models.ThicknessResult, error) {
	mats := cat.Materials()
	if index != "" {
		mat, ok := cat.Material(index)
		if !ok {
			return nil, fmt.Errorf("%w: refractive index %q", ErrUnknownOption, index)
		}
		mats = []models.LensMaterial{mat}
	}

	results := make([]models.ThicknessResult, 0, len(mats))
	for _, mat := range mats {
		n, err := strconv.ParseFloat(mat.Index, 64)
		if err != nil {
			return nil, fmt.Errorf("lens material %q: %w", mat.Index, err)
		}
		th, err := CalculateThickness(degree, n)
		if err != nil {
			return nil, err
		}
		results = append(results, models.ThicknessResult{LensMaterial: mat, Thickness: th})
	}
	return results, nil
}
