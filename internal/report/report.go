/**
 * @description
 * Text report emitters.
 * Renders the aggregator's outputs into line-oriented result files, mirroring
 * what the stats API serves as JSON.
 *
 * @dependencies
 * - backend/internal/services (aggregate types)
 * - standard "os", "fmt", "strings"
 */

package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/foodlens-project/backend/internal/services"
)

// WriteGrocery writes the grocery price analysis to path
func WriteGrocery(path string, stats *services.GroceryStats, runID string) error {
	var out []string

	out = append(out, "=== GROCERY PRICE ANALYSIS ===")
	out = append(out, fmt.Sprintf("Run: %s", runID))
	out = append(out, "")
	out = append(out, fmt.Sprintf("Computed price per unit for %d products", len(stats.PricePerUnit)))

	if stats.Cheapest != nil {
		out = append(out, fmt.Sprintf("The cheapest item found out of %d products is %s ($%.4f/oz)",
			len(stats.PricePerUnit), stats.Cheapest.Description, stats.Cheapest.PricePerOunce))
		out = append(out, fmt.Sprintf("Median price per unit: $%.2f/oz", stats.MedianPPU))
	}

	out = append(out, fmt.Sprintf("Average price of all products: %.2f", stats.AveragePrice))
	out = append(out, fmt.Sprintf("Brand comparison for %d brands complete.", len(stats.BrandAverages)))
	for _, brand := range stats.BrandAverages {
		out = append(out, fmt.Sprintf("  %s: $%.2f average", brand.Brand, brand.AvgPrice))
	}

	if len(stats.StockLevels) > 0 {
		out = append(out, "")
		out = append(out, "--- Availability ---")
		for _, stock := range stats.StockLevels {
			out = append(out, fmt.Sprintf("  %s: %d items", stock.StockLevel, stock.Count))
		}
	}

	return writeLines(path, out)
}

// WriteNutrition writes the meal nutrition analysis to path
func WriteNutrition(path string, stats *services.NutritionStats, runID string) error {
	var out []string

	out = append(out, "=== NUTRITION ANALYSIS ===")
	out = append(out, fmt.Sprintf("Run: %s", runID))
	out = append(out, "")
	out = append(out, fmt.Sprintf("Total meals analyzed: %d", stats.MealCount))

	out = append(out, "")
	out = append(out, "--- Average Nutrition by Cuisine ---")
	for _, cuisine := range stats.CuisineAverages {
		out = append(out, fmt.Sprintf("%s: Avg Calories: %.1f, Avg Protein: %.1fg, Avg Health Score: %.1f (%d meals)",
			cuisine.CuisineType, cuisine.AvgCalories, cuisine.AvgProtein, cuisine.AvgHealthScore, cuisine.Count))
	}

	out = append(out, "")
	out = append(out, "--- Health Category Distribution ---")
	for _, category := range []string{services.CategoryHealthy, services.CategoryModerate, services.CategoryLessHealthy} {
		count := stats.HealthCategories[category]
		pct := 0.0
		if stats.MealCount > 0 {
			pct = float64(count) / float64(stats.MealCount) * 100
		}
		out = append(out, fmt.Sprintf("%s: %d meals (%.1f%%)", titleCase(category), count, pct))
	}

	out = append(out, "")
	out = append(out, "--- Top 5 Meals by Nutrition Index ---")
	for i, meal := range stats.TopMeals {
		out = append(out, fmt.Sprintf("%d. %s (Score: %.2f)", i+1, meal.MealName, meal.NutritionIndex))
	}

	out = append(out, "")
	out = append(out, "--- Average Macronutrient Breakdown ---")
	out = append(out, fmt.Sprintf("Protein: %.1f%%", stats.AvgProteinPct))
	out = append(out, fmt.Sprintf("Fat: %.1f%%", stats.AvgFatPct))
	out = append(out, fmt.Sprintf("Carbs: %.1f%%", stats.AvgCarbsPct))

	return writeLines(path, out)
}

func writeLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// titleCase upper-cases the first letter of each word, e.g. "less healthy" -> "Less Healthy"
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
