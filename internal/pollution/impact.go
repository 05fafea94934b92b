// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pollution

import "github.com/pdiddy/coalseam/pkg/types"

type gradeBand struct {
	below func(types.GradeThresholds) float64
	grade types.PollutionGrade
	desc  string
}

var gradeBands = []gradeBand{
	{func(g types.GradeThresholds) float64 { return g.Light }, types.GradeSlight,
		"minimal seam pollution impact, no special treatment required"},
	{func(g types.GradeThresholds) float64 { return g.Moderate }, types.GradeLight,
		"light seam pollution, simple protective measures are sufficient"},
	{func(g types.GradeThresholds) float64 { return g.Severe }, types.GradeModerate,
		"moderate seam pollution, protection and remediation measures required"},
	{func(g types.GradeThresholds) float64 { return g.Critical }, types.GradeSevere,
		"severe seam pollution, a professional remediation plan is required"},
}

// grade maps an overall score to its grade and fixed description.
func (s *Scorer) grade(score float64) (types.PollutionGrade, string) {
	for _, b := range gradeBands {
		if score < b.below(s.cfg.Grades) {
			return b.grade, b.desc
		}
	}
	return types.GradeCritical, "extreme seam pollution, urgent remediation and area isolation required"
}

// impactRule appends statements to an impact domain.
type impactRule struct {
	ecological, water, soil, health []string
}

func (r impactRule) apply(im *types.Impacts) {
	im.Ecological = append(im.Ecological, r.ecological...)
	im.Water = append(im.Water, r.water...)
	im.Soil = append(im.Soil, r.soil...)
	im.Health = append(im.Health, r.health...)
}

// scoreImpacts escalate with the overall score; every rule whose threshold
// the score exceeds applies, in order.
var scoreImpacts = []struct {
	above float64
	rule  impactRule
}{
	{20, impactRule{
		soil: []string{"soil organic matter structure may be damaged"},
	}},
	{40, impactRule{
		soil:       []string{"soil pH may shift and affect plant growth"},
		ecological: []string{"microbial community structure may be altered"},
	}},
	{50, impactRule{
		water:      []string{"shallow groundwater may be contaminated"},
		ecological: []string{"regional vegetation growth may be suppressed"},
	}},
	{65, impactRule{
		water:  []string{"groundwater system may suffer long-term contamination"},
		health: []string{"bioaccumulation through the food chain may affect health"},
	}},
	{80, impactRule{
		water:      []string{"surface water may be contaminated in turn"},
		soil:       []string{"soil may be unable to support crops for a long period"},
		health:     []string{"direct threat to resident health is possible"},
		ecological: []string{"irreversible ecosystem damage is possible"},
	}},
}

// pollutantImpacts apply when the strongest signal of a pollutant kind in
// any segment exceeds pollutantImpactLevel.
var pollutantImpacts = []struct {
	kind types.PollutantKind
	rule impactRule
}{
	{types.PollutantHeavyMetal, impactRule{
		health:     []string{"heavy metals may accumulate in organisms and cause chronic poisoning"},
		ecological: []string{"heavy metal pollution may reduce biodiversity"},
	}},
	{types.PollutantOrganic, impactRule{
		water:  []string{"organic pollutants may cause eutrophication"},
		health: []string{"some organic pollutants may be carcinogenic"},
	}},
	{types.PollutantAcidic, impactRule{
		soil:  []string{"soil acidification may leach nutrients"},
		water: []string{"water acidification may harm aquatic life"},
	}},
}

const pollutantImpactLevel = 5

func analyzeImpacts(segments []types.PollutionSegment, score float64) types.Impacts {
	im := emptyImpacts()
	for _, si := range scoreImpacts {
		if score > si.above {
			si.rule.apply(&im)
		}
	}

	peak := map[types.PollutantKind]float64{}
	for _, seg := range segments {
		for _, p := range seg.Pollutants {
			if p.Level > peak[p.Name] {
				peak[p.Name] = p.Level
			}
		}
	}
	for _, pi := range pollutantImpacts {
		if peak[pi.kind] > pollutantImpactLevel {
			pi.rule.apply(&im)
		}
	}
	return im
}

func emptyImpacts() types.Impacts {
	return types.Impacts{
		Ecological: []string{},
		Water:      []string{},
		Soil:       []string{},
		Health:     []string{},
	}
}
