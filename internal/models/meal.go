/**
 * @description
 * Meal database model.
 * Maps to the 'meals' table: one row per recipe fetched from the nutrition API.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

// Meal represents a recipe/nutrition entity keyed by the upstream recipe id.
// The unique index on MealID makes re-ingestion a no-op for known recipes.
type Meal struct {
	ID              uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	MealID          int64    `gorm:"column:meal_id;uniqueIndex" json:"meal_id"`
	MealName        string   `gorm:"column:meal_name" json:"meal_name"`
	ServingSize     string   `gorm:"column:serving_size" json:"serving_size"`
	Calories        *float64 `gorm:"column:calories" json:"calories"`
	ProteinG        *float64 `gorm:"column:protein_g" json:"protein_g"`
	FatG            *float64 `gorm:"column:fat_g" json:"fat_g"`
	CarbsG          *float64 `gorm:"column:carbs_g" json:"carbs_g"`
	CuisineType     string   `gorm:"column:cuisine_type;default:Unknown" json:"cuisine_type"`
	HealthScore     *float64 `gorm:"column:health_score" json:"health_score"`
	DietLabels      string   `gorm:"column:diet_labels" json:"diet_labels"`           // comma-joined, "None" when empty
	IngredientsList string   `gorm:"column:ingredients_list" json:"ingredients_list"` // comma-joined, capped at 10
	MealURL         string   `gorm:"column:meal_url" json:"meal_url"`
}

// TableName overrides the table name used by Meal to `meals`
func (Meal) TableName() string {
	return "meals"
}
