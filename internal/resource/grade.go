// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"math"

	"github.com/pdiddy/coalseam/pkg/types"
)

// Quality grades in descending order of their minimum score.
var qualityGrades = []struct {
	min   float64
	grade types.QualityGrade
}{
	{90, types.QualitySpecial},
	{75, types.QualityPremium},
	{60, types.QualityGood},
	{45, types.QualityMedium},
}

func assessQuality(density, gamma float64) types.Quality {
	densityScore := clamp((1.8-density)/0.7*100, 0, 100)
	gammaScore := clamp((80-gamma)/60*100, 0, 100)
	score := 0.6*densityScore + 0.4*gammaScore

	q := types.Quality{Score: score, Grade: types.QualityLow, Density: density, Gamma: gamma}
	for _, g := range qualityGrades {
		if score >= g.min {
			q.Grade = g.grade
			break
		}
	}
	return q
}

// Thickness bands are [min, next band's min). Very thin and very thick
// seams both score harder than the 2-5 band.
var thicknessFactors = []struct {
	min, factor float64
}{
	{8, 6},
	{5, 4},
	{2, 2},
	{1, 5},
	{0, 8},
}

// Difficulty grades in ascending order of their exclusive upper bound.
var difficultyGrades = []struct {
	below float64
	grade types.DifficultyGrade
}{
	{3, types.DifficultyEasy},
	{5, types.DifficultyModerate},
	{7, types.DifficultyHard},
}

func thicknessFactor(thickness float64) float64 {
	for _, b := range thicknessFactors {
		if thickness >= b.min {
			return b.factor
		}
	}
	return thicknessFactors[len(thicknessFactors)-1].factor
}

func assessDifficulty(r types.DepthRange) types.MiningDifficulty {
	depthFactor := math.Min(10, (r.Start+r.End)/2/100)
	tf := thicknessFactor(r.Thickness)
	score := 0.7*depthFactor + 0.3*tf

	d := types.MiningDifficulty{
		Score:           score,
		Grade:           types.DifficultyExtreme,
		DepthFactor:     depthFactor,
		ThicknessFactor: tf,
	}
	for _, g := range difficultyGrades {
		if score < g.below {
			d.Grade = g.grade
			break
		}
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
