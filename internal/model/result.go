package model

// Default smart tool IDs.
const (
	ToolIDHealthAssessment = "health-assessment"
	ToolIDNutritionPlanner = "nutrition-planner"
	ToolIDStressAnalyzer   = "stress-analyzer"
	ToolIDSleepOptimizer   = "sleep-optimizer"
)

// ToolResult is the payload produced by a completed tool run. Every tool ID
// has its own result shape.
type ToolResult interface {
	ToolID() string
}

// HealthSubScores are the 0-100 scores the overall health score is weighted from.
type HealthSubScores struct {
	Physical  int `json:"physical"`
	Mental    int `json:"mental"`
	Nutrition int `json:"nutrition"`
	Sleep     int `json:"sleep"`
}

// HealthAssessmentResult is the result of the health assessment tool.
type HealthAssessmentResult struct {
	OverallScore    int             `json:"overall_score"`
	SubScores       HealthSubScores `json:"sub_scores"`
	Strengths       []string        `json:"strengths"`
	Improvements    []string        `json:"improvements"`
	Recommendations []string        `json:"recommendations"`
}

func (HealthAssessmentResult) ToolID() string { return ToolIDHealthAssessment }

// Macros are the daily macronutrient targets in grams.
type Macros struct {
	ProteinGrams int `json:"protein_grams"`
	CarbsGrams   int `json:"carbs_grams"`
	FatGrams     int `json:"fat_grams"`
}

// Meal is a single entry of a meal plan.
type Meal struct {
	Name     string   `json:"name"`
	Time     string   `json:"time"`
	Calories int      `json:"calories"`
	Items    []string `json:"items"`
}

// NutritionPlanResult is the result of the nutrition planner tool.
type NutritionPlanResult struct {
	DailyCalories int    `json:"daily_calories"`
	Macros        Macros `json:"macros"`
	MealPlan      []Meal `json:"meal_plan"`
}

func (NutritionPlanResult) ToolID() string { return ToolIDNutritionPlanner }

// StressAnalysisResult is the result of the stress analyzer tool.
type StressAnalysisResult struct {
	Score      int      `json:"score"`
	Level      string   `json:"level"`
	Triggers   []string `json:"triggers"`
	Techniques []string `json:"techniques"`
}

func (StressAnalysisResult) ToolID() string { return ToolIDStressAnalyzer }

// SleepOptimizationResult is the result of the sleep optimizer tool.
type SleepOptimizationResult struct {
	TargetHours float64  `json:"target_hours"`
	Bedtime     string   `json:"bedtime"`
	WakeTime    string   `json:"wake_time"`
	Tips        []string `json:"tips"`
}

func (SleepOptimizationResult) ToolID() string { return ToolIDSleepOptimizer }

// GenericResult holds results of tools without a dedicated shape.
type GenericResult struct {
	Tool string         `json:"tool"`
	Data map[string]any `json:"data"`
}

func (g GenericResult) ToolID() string { return g.Tool }
