package models

// Nutrition scoring rules. Caps follow infant feeding guidance: protein
// and fiber carry the most weight, sugar is the only deduction.
const (
	nutritionBaseScore = 50.0

	proteinFactor = 2.0
	proteinCap    = 20.0

	fiberFactor = 3.0
	fiberCap    = 10.0

	ironCap        = 5.0
	calciumDivisor = 20.0
	calciumCap     = 5.0
	vitaminADiv    = 50.0
	vitaminACap    = 5.0

	sugarCap = 20.0
)

// NutritionScore rates the recipe 0-100. Higher protein, fiber and
// micronutrients raise the score, sugar lowers it. Missing nutrient
// fields are zero and contribute nothing.
func (r *Recipe) NutritionScore() float64 {
	score := nutritionBaseScore

	score += minf(r.ProteinG*proteinFactor, proteinCap)
	score += minf(r.FiberG*fiberFactor, fiberCap)
	score += minf(r.IronMg, ironCap)
	score += minf(r.CalciumMg/calciumDivisor, calciumCap)
	score += minf(r.VitaminAMcg/vitaminADiv, vitaminACap)

	score -= minf(r.SugarG, sugarCap)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
