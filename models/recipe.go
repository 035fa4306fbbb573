package models

import (
	"gorm.io/gorm"
)

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Recipe holds a baby meal with nutritional information per 100g.
// Nutrient fields left at zero simply contribute nothing to scoring.
type Recipe struct {
	gorm.Model
	Name        string `gorm:"not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	AgeMinMonths int  `gorm:"not null" json:"age_min_months"`
	AgeMaxMonths *int `json:"age_max_months,omitempty"` // nil = no upper bound

	PreparationTimeMin int    `json:"preparation_time_min,omitempty"`
	DifficultyLevel    string `json:"difficulty_level,omitempty"` // easy | medium | hard

	Ingredients  []Ingredient `gorm:"serializer:json;not null" json:"ingredients"`
	Instructions string       `gorm:"type:text" json:"instructions,omitempty"`

	Calories float64 `json:"calories,omitempty"`
	ProteinG float64 `json:"protein_g,omitempty"`
	CarbsG   float64 `json:"carbs_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
	FiberG   float64 `json:"fiber_g,omitempty"`
	SugarG   float64 `json:"sugar_g,omitempty"`

	IronMg      float64 `json:"iron_mg,omitempty"`
	CalciumMg   float64 `json:"calcium_mg,omitempty"`
	VitaminAMcg float64 `json:"vitamin_a_mcg,omitempty"`
	VitaminCMg  float64 `json:"vitamin_c_mg,omitempty"`
	VitaminDMcg float64 `json:"vitamin_d_mcg,omitempty"`

	MealType  string   `gorm:"index" json:"meal_type,omitempty"` // breakfast | lunch | dinner | snack
	Cuisine   string   `json:"cuisine,omitempty"`
	Tags      []string `gorm:"serializer:json" json:"tags"`
	Allergens []string `gorm:"serializer:json" json:"allergens"`

	ServingSizeG float64 `gorm:"default:100" json:"serving_size_g"`

	Feedbacks []Feedback `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SuitableForAge reports whether the recipe fits a baby of the given
// age in months.
func (r *Recipe) SuitableForAge(ageMonths int) bool {
	if ageMonths < r.AgeMinMonths {
		return false
	}
	if r.AgeMaxMonths != nil && ageMonths > *r.AgeMaxMonths {
		return false
	}
	return true
}

// HasAllergen checks the recipe's allergen tags against a baby's
// allergy list. Matching is exact set containment.
func (r *Recipe) HasAllergen(allergies []string) bool {
	if len(r.Allergens) == 0 || len(allergies) == 0 {
		return false
	}
	for _, a := range allergies {
		for _, tag := range r.Allergens {
			if a == tag {
				return true
			}
		}
	}
	return false
}
