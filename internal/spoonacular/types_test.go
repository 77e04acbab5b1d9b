package spoonacular

import (
	"strings"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func sampleRecipe() Recipe {
	return Recipe{
		ID:          716429,
		Title:       "Pasta with Garlic",
		Servings:    iptr(2),
		HealthScore: fptr(62),
		SourceURL:   "https://example.com/pasta",
		Cuisines:    []string{"Mediterranean", "Italian"},
		Diets:       []string{"dairy free", "lacto ovo vegetarian"},
		Nutrition: &Nutrition{
			Nutrients: []Nutrient{
				{Name: "Calories", Amount: 584.46},
				{Name: "Fat", Amount: 19.83},
				{Name: "Protein", Amount: 18.97},
				{Name: "Carbohydrates", Amount: 83.7},
				{Name: "Protein", Amount: 999}, // later duplicate must lose: first match wins
			},
			Ingredients: []Ingredient{
				{Name: "butter"}, {Name: "cauliflower"}, {Name: "cheese"},
			},
		},
	}
}

func TestCleanRecipesExtractsMacros(t *testing.T) {
	cleaned := CleanRecipes([]Recipe{sampleRecipe()})
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 cleaned meal, got %d", len(cleaned))
	}

	m := cleaned[0]
	if m.MealID != 716429 || m.MealName != "Pasta with Garlic" {
		t.Errorf("unexpected identity fields: %+v", m)
	}
	if m.Calories == nil || *m.Calories != 584.46 {
		t.Errorf("expected calories 584.46, got %v", m.Calories)
	}
	if m.ProteinG == nil || *m.ProteinG != 18.97 {
		t.Errorf("first nutrient match must win, got protein %v", m.ProteinG)
	}
	if m.FatG == nil || *m.FatG != 19.83 {
		t.Errorf("expected fat 19.83, got %v", m.FatG)
	}
	if m.CarbsG == nil || *m.CarbsG != 83.7 {
		t.Errorf("expected carbs 83.7, got %v", m.CarbsG)
	}
	if m.CuisineType != "Mediterranean" {
		t.Errorf("cuisine must be the first entry, got %q", m.CuisineType)
	}
	if m.DietLabels != "dairy free, lacto ovo vegetarian" {
		t.Errorf("unexpected diet labels: %q", m.DietLabels)
	}
	if m.ServingSize != "2 serving(s)" {
		t.Errorf("unexpected serving size: %q", m.ServingSize)
	}
	if m.IngredientsList != "butter, cauliflower, cheese" {
		t.Errorf("unexpected ingredients: %q", m.IngredientsList)
	}
}

func TestCleanRecipesDefaults(t *testing.T) {
	cleaned := CleanRecipes([]Recipe{{ID: 1, Title: "Mystery Bowl"}})
	m := cleaned[0]

	if m.CuisineType != "Unknown" {
		t.Errorf("empty cuisines must default to Unknown, got %q", m.CuisineType)
	}
	if m.DietLabels != "None" {
		t.Errorf("empty diets must default to None, got %q", m.DietLabels)
	}
	if m.ServingSize != "1 serving(s)" {
		t.Errorf("missing servings must default to 1, got %q", m.ServingSize)
	}
	if m.Calories != nil || m.ProteinG != nil || m.FatG != nil || m.CarbsG != nil {
		t.Errorf("missing nutrition must degrade to nil macros, got %+v", m)
	}
	if m.IngredientsList != "" {
		t.Errorf("missing nutrition must leave ingredients empty, got %q", m.IngredientsList)
	}
}

func TestCleanRecipesCaseSensitiveNutrientMatch(t *testing.T) {
	r := Recipe{
		ID:    2,
		Title: "Lowercase Soup",
		Nutrition: &Nutrition{
			Nutrients: []Nutrient{{Name: "calories", Amount: 100}},
		},
	}

	m := CleanRecipes([]Recipe{r})[0]
	if m.Calories != nil {
		t.Errorf("nutrient lookup must be case-sensitive, got %v", m.Calories)
	}
}

func TestCleanRecipesIngredientCap(t *testing.T) {
	var ingredients []Ingredient
	for i := 0; i < 15; i++ {
		ingredients = append(ingredients, Ingredient{Name: "item"})
	}
	r := Recipe{
		ID:        3,
		Title:     "Everything Stew",
		Nutrition: &Nutrition{Ingredients: ingredients},
	}

	m := CleanRecipes([]Recipe{r})[0]
	if got := len(strings.Split(m.IngredientsList, ", ")); got != 10 {
		t.Errorf("ingredients must be capped at 10, got %d", got)
	}
}
