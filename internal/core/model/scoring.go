package model

import (
	"math"

	"github.com/pkg/errors"
)

// QuadrantMidpoint splits the impact and effort axes of the prioritization
// matrix.
const QuadrantMidpoint = 50

type Quadrant string

const (
	QuadrantQuickWins     Quadrant = "quick-wins"
	QuadrantMajorProjects Quadrant = "major-projects"
	QuadrantFillIns       Quadrant = "fill-ins"
	QuadrantTimeWasters   Quadrant = "time-wasters"
)

var Quadrants = []Quadrant{
	QuadrantQuickWins,
	QuadrantMajorProjects,
	QuadrantFillIns,
	QuadrantTimeWasters,
}

var quadrantPositions = map[Quadrant][2]int{
	QuadrantQuickWins:     {80, 30},
	QuadrantMajorProjects: {80, 70},
	QuadrantFillIns:       {30, 30},
	QuadrantTimeWasters:   {30, 70},
}

// Position returns the representative impact and effort scores of the
// quadrant.
func (q Quadrant) Position() (impact int, effort int, err error) {
	position, exists := quadrantPositions[q]
	if !exists {
		return 0, 0, errors.WithStack(NewValidationErrorf("Unknown quadrant '%s'", q))
	}

	return position[0], position[1], nil
}

func (q Quadrant) Valid() bool {
	_, exists := quadrantPositions[q]
	return exists
}

// RICE computes round(reach * impact * confidence / (effort * 100)).
// A non-positive effort is treated as 1.
func RICE(reach, impact, confidence, effort int) int {
	if effort <= 0 {
		effort = 1
	}

	score := float64(reach) * float64(impact) * float64(confidence) / (float64(effort) * 100)

	return int(math.Round(score))
}

// Classify places an impact/effort pair in the prioritization matrix.
func Classify(impact, effort int) Quadrant {
	highImpact := impact >= QuadrantMidpoint
	lowEffort := effort <= QuadrantMidpoint

	switch {
	case highImpact && lowEffort:
		return QuadrantQuickWins
	case highImpact:
		return QuadrantMajorProjects
	case lowEffort:
		return QuadrantFillIns
	default:
		return QuadrantTimeWasters
	}
}
