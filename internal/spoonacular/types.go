/**
 * @description
 * Spoonacular API response types and the mapping from raw recipe payloads to
 * flat meal rows.
 */

package spoonacular

import (
	"fmt"
	"strings"
)

// maxIngredients caps how many ingredient names are kept per meal
const maxIngredients = 10

// SearchResponse wraps the /recipes/complexSearch payload
type SearchResponse struct {
	Results []Recipe `json:"results"`
}

// Recipe is a raw recipe entry with nutrition data attached
type Recipe struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Servings    *int       `json:"servings"`
	HealthScore *float64   `json:"healthScore"`
	SourceURL   string     `json:"sourceUrl"`
	Cuisines    []string   `json:"cuisines"`
	Diets       []string   `json:"diets"`
	Nutrition   *Nutrition `json:"nutrition"`
}

// Nutrition is the nested nutrition sub-object of a Recipe
type Nutrition struct {
	Nutrients   []Nutrient   `json:"nutrients"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Nutrient is a single named nutrition value, e.g. {"name": "Calories", "amount": 420}
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Ingredient carries only the name; amounts are not stored
type Ingredient struct {
	Name string `json:"name"`
}

// CleanMeal is one flattened meal row ready for ingestion
type CleanMeal struct {
	MealID          int64
	MealName        string
	ServingSize     string
	Calories        *float64
	ProteinG        *float64
	FatG            *float64
	CarbsG          *float64
	CuisineType     string
	HealthScore     *float64
	DietLabels      string
	IngredientsList string
	MealURL         string
}

// CleanRecipes flattens raw recipes into CleanMeal rows. Pure mapping, no I/O.
// Macro values are found by exact case-sensitive name match in the nutrient
// list, first match wins; a missing nutrition sub-object degrades to nil macros
// rather than failing the batch.
func CleanRecipes(raw []Recipe) []CleanMeal {
	cleaned := make([]CleanMeal, 0, len(raw))

	for _, meal := range raw {
		cm := CleanMeal{
			MealID:      meal.ID,
			MealName:    meal.Title,
			ServingSize: servingSize(meal.Servings),
			CuisineType: "Unknown",
			HealthScore: meal.HealthScore,
			DietLabels:  "None",
			MealURL:     meal.SourceURL,
		}

		if len(meal.Cuisines) > 0 {
			cm.CuisineType = meal.Cuisines[0]
		}
		if len(meal.Diets) > 0 {
			cm.DietLabels = strings.Join(meal.Diets, ", ")
		}

		if meal.Nutrition != nil {
			cm.Calories = nutrientAmount(meal.Nutrition.Nutrients, "Calories")
			cm.ProteinG = nutrientAmount(meal.Nutrition.Nutrients, "Protein")
			cm.FatG = nutrientAmount(meal.Nutrition.Nutrients, "Fat")
			cm.CarbsG = nutrientAmount(meal.Nutrition.Nutrients, "Carbohydrates")

			names := make([]string, 0, maxIngredients)
			for _, ing := range meal.Nutrition.Ingredients {
				if len(names) == maxIngredients {
					break
				}
				names = append(names, ing.Name)
			}
			cm.IngredientsList = strings.Join(names, ", ")
		}

		cleaned = append(cleaned, cm)
	}

	return cleaned
}

// nutrientAmount returns the first exact-name match, or nil when absent
func nutrientAmount(nutrients []Nutrient, name string) *float64 {
	for _, n := range nutrients {
		if n.Name == name {
			amount := n.Amount
			return &amount
		}
	}
	return nil
}

func servingSize(servings *int) string {
	n := 1
	if servings != nil {
		n = *servings
	}
	return fmt.Sprintf("%d serving(s)", n)
}
