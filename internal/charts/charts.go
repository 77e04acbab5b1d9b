/**
 * @description
 * Chart emitters.
 * Renders the aggregator's outputs as PNG images: price-per-unit histogram,
 * brand price bars, availability donut, cuisine calories, macronutrient
 * composition, and a calories vs protein density scatter.
 *
 * @dependencies
 * - github.com/wcharczuk/go-chart/v2: chart rendering
 * - backend/internal/services (aggregate types)
 */

package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/foodlens-project/backend/internal/logger"
	"github.com/foodlens-project/backend/internal/services"
	"github.com/foodlens-project/backend/internal/store"
	"github.com/wcharczuk/go-chart/v2"
)

const histogramBins = 15

// RenderGrocery writes the three grocery charts into dir.
// Charts that have no data to draw are skipped with a log line.
func RenderGrocery(dir string, stats *services.GroceryStats) error {
	if len(stats.PricePerUnit) > 0 {
		if err := ppuHistogram(filepath.Join(dir, "hist_PPU.png"), stats); err != nil {
			return err
		}
	} else {
		logger.Info("no price-per-unit data, skipping histogram")
	}

	if len(stats.BrandAverages) > 0 {
		if err := brandBars(filepath.Join(dir, "avgp_brand_bar.png"), stats.BrandAverages); err != nil {
			return err
		}
	}

	if len(stats.StockLevels) > 0 {
		if err := stockDonut(filepath.Join(dir, "inventory_pie.png"), stats.StockLevels); err != nil {
			return err
		}
	}

	return nil
}

// RenderNutrition writes the three meal charts into dir
func RenderNutrition(dir string, stats *services.NutritionStats) error {
	if len(stats.CuisineAverages) > 0 {
		if err := caloriesByCuisine(filepath.Join(dir, "calories_by_cuisine.png"), stats.CuisineAverages); err != nil {
			return err
		}
	}

	if len(stats.Meals) > 0 {
		if err := macroBreakdown(filepath.Join(dir, "macronutrient_breakdown.png"), stats.Meals); err != nil {
			return err
		}
		if err := proteinDensityScatter(filepath.Join(dir, "calories_vs_protein_density.png"), stats.Meals); err != nil {
			return err
		}
	}

	return nil
}

// ppuHistogram buckets the PPU set into fixed-width bins
func ppuHistogram(path string, stats *services.GroceryStats) error {
	values := make([]float64, len(stats.PricePerUnit))
	for i, e := range stats.PricePerUnit {
		values[i] = e.PricePerOunce
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / histogramBins
	if width == 0 {
		width = 1
	}

	counts := make([]int, histogramBins)
	for _, v := range values {
		bin := int((v - lo) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	bars := make([]chart.Value, histogramBins)
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%.2f", lo+width*(float64(i)+0.5)),
		}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Price Per Unit ($/oz), median $%.2f", stats.MedianPPU),
		Height:   512,
		BarWidth: 30,
		Bars:     bars,
	}
	return render(path, graph.Render)
}

func brandBars(path string, brands []store.BrandAverage) error {
	bars := make([]chart.Value, len(brands))
	for i, b := range brands {
		bars[i] = chart.Value{Value: b.AvgPrice, Label: b.Brand}
	}

	graph := chart.BarChart{
		Title:    "Average Price by Brand",
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}
	return render(path, graph.Render)
}

func stockDonut(path string, stocks []store.StockCount) error {
	values := make([]chart.Value, len(stocks))
	for i, s := range stocks {
		values[i] = chart.Value{Value: float64(s.Count), Label: s.StockLevel}
	}

	graph := chart.DonutChart{
		Title:  "Product Availability",
		Width:  512,
		Height: 512,
		Values: values,
	}
	return render(path, graph.Render)
}

// caloriesByCuisine charts cuisines with at least two meals; the catch-all
// "Unknown" bucket is left out.
func caloriesByCuisine(path string, cuisines []store.CuisineAverage) error {
	var bars []chart.Value
	for _, c := range cuisines {
		if c.CuisineType == "Unknown" || c.Count < 2 {
			continue
		}
		bars = append(bars, chart.Value{Value: c.AvgCalories, Label: c.CuisineType})
	}
	if len(bars) == 0 {
		logger.Info("no cuisine has two or more meals, skipping cuisine chart")
		return nil
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Value > bars[j].Value })

	graph := chart.BarChart{
		Title:    "Average Calories by Cuisine Type",
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}
	return render(path, graph.Render)
}

// macroBreakdown stacks macro shares for the ten highest-calorie meals
func macroBreakdown(path string, meals []services.MealNutrition) error {
	ranked := make([]services.MealNutrition, len(meals))
	copy(ranked, meals)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Calories > ranked[j].Calories })
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	bars := make([]chart.StackedBar, 0, len(ranked))
	for _, m := range ranked {
		if m.ProteinPct+m.FatPct+m.CarbsPct == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name: truncate(m.MealName, 25),
			Values: []chart.Value{
				{Value: m.ProteinPct, Label: "Protein"},
				{Value: m.FatPct, Label: "Fat"},
				{Value: m.CarbsPct, Label: "Carbs"},
			},
		})
	}
	if len(bars) == 0 {
		return nil
	}

	graph := chart.StackedBarChart{
		Title:  "Macronutrient Breakdown - Top Meals by Calories",
		Width:  1024,
		Height: 512,
		Bars:   bars,
	}
	return render(path, graph.Render)
}

func proteinDensityScatter(path string, meals []services.MealNutrition) error {
	xs := make([]float64, len(meals))
	ys := make([]float64, len(meals))
	for i, m := range meals {
		xs[i] = m.Calories
		ys[i] = m.ProteinDensity
	}

	graph := chart.Chart{
		Title:  "Nutrition Efficiency: Calories vs Protein Density",
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{Name: "Total Calories"},
		YAxis:  chart.YAxis{Name: "Protein Density (g/cal)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return render(path, graph.Render)
}

func render(path string, renderFn func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return renderFn(chart.PNG, f)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
