package runner_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/runner"
)

func TestHealthScore(t *testing.T) {
	tests := map[string]struct {
		sub      model.HealthSubScores
		expScore int
	}{
		"Equal sub-scores": {
			sub:      model.HealthSubScores{Physical: 80, Mental: 80, Nutrition: 80, Sleep: 80},
			expScore: 80,
		},
		"Physical and mental weigh more": {
			sub:      model.HealthSubScores{Physical: 100, Mental: 100, Nutrition: 0, Sleep: 0},
			expScore: 60,
		},
		"Nutrition and sleep weigh less": {
			sub:      model.HealthSubScores{Physical: 0, Mental: 0, Nutrition: 100, Sleep: 100},
			expScore: 40,
		},
		"Rounded": {
			sub:      model.HealthSubScores{Physical: 71, Mental: 64, Nutrition: 90, Sleep: 77},
			expScore: 74, // 21.3 + 19.2 + 18 + 15.4 = 73.9
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expScore, runner.HealthScore(tt.sub))
		})
	}
}

func TestStressLevel(t *testing.T) {
	tests := map[string]struct {
		score    int
		expLevel string
	}{
		"Low":           {score: 10, expLevel: runner.StressLevelLow},
		"Moderate edge": {score: 35, expLevel: runner.StressLevelModerate},
		"Moderate":      {score: 64, expLevel: runner.StressLevelModerate},
		"High":          {score: 65, expLevel: runner.StressLevelHigh},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expLevel, runner.StressLevel(tt.score))
		})
	}
}

func TestDefaultBuilders(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))
	builders := runner.DefaultBuilders()

	// Results are random, check their shape on several draws.
	for i := 0; i < 50; i++ {
		health, ok := builders[model.ToolIDHealthAssessment].Build(rnd).(model.HealthAssessmentResult)
		require.True(t, ok)
		assert.Equal(t, runner.HealthScore(health.SubScores), health.OverallScore)
		assert.GreaterOrEqual(t, health.OverallScore, 55)
		assert.LessOrEqual(t, health.OverallScore, 95)
		assert.NotNil(t, health.Strengths)
		assert.NotNil(t, health.Improvements)

		nutrition, ok := builders[model.ToolIDNutritionPlanner].Build(rnd).(model.NutritionPlanResult)
		require.True(t, ok)
		assert.GreaterOrEqual(t, nutrition.DailyCalories, 1800)
		assert.LessOrEqual(t, nutrition.DailyCalories, 2600)
		assert.Len(t, nutrition.MealPlan, 4)
		total := 0
		for _, m := range nutrition.MealPlan {
			total += m.Calories
			assert.Len(t, m.Items, 2)
		}
		assert.InDelta(t, nutrition.DailyCalories, total, 4)

		stress, ok := builders[model.ToolIDStressAnalyzer].Build(rnd).(model.StressAnalysisResult)
		require.True(t, ok)
		assert.Equal(t, runner.StressLevel(stress.Score), stress.Level)
		assert.Len(t, stress.Triggers, 3)
		assert.Len(t, stress.Techniques, 3)

		sleep, ok := builders[model.ToolIDSleepOptimizer].Build(rnd).(model.SleepOptimizationResult)
		require.True(t, ok)
		assert.GreaterOrEqual(t, sleep.TargetHours, 7.0)
		assert.LessOrEqual(t, sleep.TargetHours, 9.0)
		assert.Len(t, sleep.Tips, 4)
		assert.Regexp(t, `^\d{2}:\d{2}$`, sleep.Bedtime)
	}
}

func TestDefaultBuildersDeterministic(t *testing.T) {
	b := runner.DefaultBuilders()[model.ToolIDStressAnalyzer]
	r1 := b.Build(rand.New(rand.NewPCG(7, 7)))
	r2 := b.Build(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, r1, r2)
}

func TestSleepBedtime(t *testing.T) {
	b := runner.DefaultBuilders()[model.ToolIDSleepOptimizer]
	res := b.Build(rand.New(rand.NewPCG(3, 9))).(model.SleepOptimizationResult)

	// Bedtime plus the target hours is the wake time.
	var bh, bm, wh, wm int
	_, err := fmt.Sscanf(res.Bedtime, "%d:%d", &bh, &bm)
	require.NoError(t, err)
	_, err = fmt.Sscanf(res.WakeTime, "%d:%d", &wh, &wm)
	require.NoError(t, err)
	sleepMin := ((wh*60 + wm) - (bh*60 + bm) + 1440) % 1440
	assert.Equal(t, int(res.TargetHours*60), sleepMin)
}
