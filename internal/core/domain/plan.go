package domain

import "time"

// ExerciseEntry is one prescribed exercise inside a training session.
type ExerciseEntry struct {
	ExerciseID string  `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	LoadKg     float64 `json:"load_kg,omitempty"`
	RestSec    int     `json:"rest_sec,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// TrainingSession groups the exercises of one day of a plan.
type TrainingSession struct {
	Day       string          `json:"day"`
	Title     string          `json:"title,omitempty"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// TrainingPlan is a structured plan a trainer assigns to one of their athletes.
type TrainingPlan struct {
	ID          string            `json:"id"`
	TrainerID   string            `json:"trainer_id"`
	ClientID    string            `json:"client_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Sessions    []TrainingSession `json:"sessions"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MacroTargets are daily macro-nutrient targets in grams.
type MacroTargets struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// MealItem references a catalog food and an amount.
type MealItem struct {
	FoodID string  `json:"food_id"`
	Grams  float64 `json:"grams"`
}

// Meal is one meal of a nutrition plan.
type Meal struct {
	Name  string     `json:"name"`
	Items []MealItem `json:"items"`
}

// NutritionPlan is a daily nutrition prescription for an athlete.
type NutritionPlan struct {
	ID           string       `json:"id"`
	TrainerID    string       `json:"trainer_id"`
	ClientID     string       `json:"client_id"`
	Name         string       `json:"name"`
	CaloriesKcal float64      `json:"calories_kcal"`
	Macros       MacroTargets `json:"macros"`
	Meals        []Meal       `json:"meals"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
