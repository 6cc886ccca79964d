package runner

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/slok/wellhub/internal/model"
)

// ResultBuilder knows how to create the result of a tool.
type ResultBuilder interface {
	Build(rnd *rand.Rand) model.ToolResult
}

// ResultBuilderFunc is a helper to use functions as ResultBuilders.
type ResultBuilderFunc func(rnd *rand.Rand) model.ToolResult

// Build satisfies ResultBuilder.
func (f ResultBuilderFunc) Build(rnd *rand.Rand) model.ToolResult { return f(rnd) }

// DefaultBuilders returns the builders of the default tools.
func DefaultBuilders() map[string]ResultBuilder {
	return map[string]ResultBuilder{
		model.ToolIDHealthAssessment: ResultBuilderFunc(buildHealthAssessment),
		model.ToolIDNutritionPlanner: ResultBuilderFunc(buildNutritionPlan),
		model.ToolIDStressAnalyzer:   ResultBuilderFunc(buildStressAnalysis),
		model.ToolIDSleepOptimizer:   ResultBuilderFunc(buildSleepOptimization),
	}
}

// GenericResultBuilder returns a builder for tools without a dedicated result.
func GenericResultBuilder(toolID string) ResultBuilder {
	return ResultBuilderFunc(func(rnd *rand.Rand) model.ToolResult {
		return model.GenericResult{
			Tool: toolID,
			Data: map[string]any{"score": between(rnd, 50, 95)},
		}
	})
}

// Health score weights.
const (
	weightPhysical  = 0.30
	weightMental    = 0.30
	weightNutrition = 0.20
	weightSleep     = 0.20
)

// HealthScore returns the overall score as the weighted average of the sub-scores.
func HealthScore(s model.HealthSubScores) int {
	score := float64(s.Physical)*weightPhysical +
		float64(s.Mental)*weightMental +
		float64(s.Nutrition)*weightNutrition +
		float64(s.Sleep)*weightSleep
	return int(math.Round(score))
}

var healthRecommendations = []string{
	"Add two strength training sessions per week",
	"Take a 10 minute walk after lunch",
	"Schedule a short mindfulness break every afternoon",
	"Drink at least 2 liters of water per day",
	"Keep a consistent sleep schedule, weekends included",
	"Add a portion of vegetables to every main meal",
	"Limit screens during the last hour before bed",
}

func buildHealthAssessment(rnd *rand.Rand) model.ToolResult {
	sub := model.HealthSubScores{
		Physical:  between(rnd, 55, 95),
		Mental:    between(rnd, 55, 95),
		Nutrition: between(rnd, 55, 95),
		Sleep:     between(rnd, 55, 95),
	}

	areas := []struct {
		name  string
		score int
	}{
		{"Physical activity", sub.Physical},
		{"Mental wellbeing", sub.Mental},
		{"Nutrition", sub.Nutrition},
		{"Sleep quality", sub.Sleep},
	}
	strengths := []string{}
	improvements := []string{}
	for _, a := range areas {
		switch {
		case a.score >= 80:
			strengths = append(strengths, a.name)
		case a.score < 70:
			improvements = append(improvements, a.name)
		}
	}

	return model.HealthAssessmentResult{
		OverallScore:    HealthScore(sub),
		SubScores:       sub,
		Strengths:       strengths,
		Improvements:    improvements,
		Recommendations: pick(rnd, healthRecommendations, 3),
	}
}

var (
	breakfastItems = []string{"Oatmeal with berries", "Greek yogurt", "Whole grain toast", "Scrambled eggs", "Banana"}
	lunchItems     = []string{"Grilled chicken salad", "Quinoa bowl", "Lentil soup", "Brown rice", "Steamed broccoli"}
	dinnerItems    = []string{"Baked salmon", "Sweet potato", "Roasted vegetables", "Tofu stir fry", "Mixed greens"}
	snackItems     = []string{"Almonds", "Apple", "Hummus with carrots", "Cottage cheese"}
)

func buildNutritionPlan(rnd *rand.Rand) model.ToolResult {
	calories := between(rnd, 36, 52) * 50 // 1800-2600 in steps of 50.

	meals := []struct {
		name  string
		time  string
		share float64
		items []string
	}{
		{"Breakfast", "08:00", 0.25, breakfastItems},
		{"Lunch", "13:00", 0.35, lunchItems},
		{"Dinner", "19:30", 0.30, dinnerItems},
		{"Snack", "16:30", 0.10, snackItems},
	}
	plan := make([]model.Meal, 0, len(meals))
	for _, m := range meals {
		plan = append(plan, model.Meal{
			Name:     m.name,
			Time:     m.time,
			Calories: int(math.Round(float64(calories) * m.share)),
			Items:    pick(rnd, m.items, 2),
		})
	}

	return model.NutritionPlanResult{
		DailyCalories: calories,
		Macros: model.Macros{
			ProteinGrams: int(math.Round(float64(calories) * 0.25 / 4)),
			CarbsGrams:   int(math.Round(float64(calories) * 0.50 / 4)),
			FatGrams:     int(math.Round(float64(calories) * 0.25 / 9)),
		},
		MealPlan: plan,
	}
}

// Stress levels.
const (
	StressLevelLow      = "low"
	StressLevelModerate = "moderate"
	StressLevelHigh     = "high"
)

// StressLevel classifies a 0-100 stress score.
func StressLevel(score int) string {
	switch {
	case score < 35:
		return StressLevelLow
	case score < 65:
		return StressLevelModerate
	}
	return StressLevelHigh
}

var (
	stressTriggers = []string{
		"Workload peaks",
		"Tight deadlines",
		"Long meetings",
		"Lack of breaks",
		"After hours notifications",
		"Unclear priorities",
	}
	stressTechniques = []string{
		"Box breathing for 4 minutes",
		"Time blocking focus hours",
		"Short walks between meetings",
		"Progressive muscle relaxation",
		"Journaling at the end of the day",
		"Muting notifications after work",
	}
)

func buildStressAnalysis(rnd *rand.Rand) model.ToolResult {
	score := between(rnd, 15, 85)
	return model.StressAnalysisResult{
		Score:      score,
		Level:      StressLevel(score),
		Triggers:   pick(rnd, stressTriggers, 3),
		Techniques: pick(rnd, stressTechniques, 3),
	}
}

var (
	wakeTimes = []int{6 * 60, 6*60 + 30, 7 * 60, 7*60 + 30}
	sleepTips = []string{
		"Keep the bedroom between 16 and 19 degrees",
		"Avoid caffeine after 14:00",
		"Dim the lights an hour before bedtime",
		"Get morning sunlight within 30 minutes of waking",
		"Avoid heavy meals late in the evening",
		"Use the bed only for sleep",
	}
)

func buildSleepOptimization(rnd *rand.Rand) model.ToolResult {
	target := float64(between(rnd, 14, 18)) / 2 // 7-9 hours in steps of 0.5.
	wake := wakeTimes[rnd.IntN(len(wakeTimes))]
	bed := wake - int(target*60)

	return model.SleepOptimizationResult{
		TargetHours: target,
		Bedtime:     clockTime(bed),
		WakeTime:    clockTime(wake),
		Tips:        pick(rnd, sleepTips, 4),
	}
}

// clockTime formats minutes from midnight as HH:MM, wrapping around the day.
func clockTime(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// between returns a random int in [lo, hi].
func between(rnd *rand.Rand, lo, hi int) int {
	return lo + rnd.IntN(hi-lo+1)
}

// pick returns n random distinct items of the pool.
func pick(rnd *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	res := make([]string, 0, n)
	for _, i := range rnd.Perm(len(pool))[:n] {
		res = append(res, pool[i])
	}
	return res
}
