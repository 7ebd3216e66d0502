package domain

import (
	"math"
	"time"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

// Client holds the business profile of an athlete. It is linked 1:1 to a User
// row carrying the login identity; historic data may predate that linkage, so
// UserID can be empty. Such legacy rows carry their own bcrypt hash in
// PasswordHash and authenticate directly against the profile.
type Client struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id,omitempty"`
	TrainerID    string     `json:"trainer_id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	BirthDate    time.Time  `json:"birth_date,omitempty"`
	Sex          string     `json:"sex,omitempty"`
	HeightCm     float64    `json:"height_cm,omitempty"`
	WeightKg     float64    `json:"weight_kg,omitempty"`
	Goals        string     `json:"goals,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BodyMetric is a point-in-time body composition record.
type BodyMetric struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	WeightKg   float64   `json:"weight_kg"`
	HeightCm   float64   `json:"height_cm"`
	BMI        float64   `json:"bmi"`
	BMR        float64   `json:"bmr"`
	RecordedAt time.Time `json:"recorded_at"`
}

// BMI computes body mass index from weight in kg and height in cm.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return round1(weightKg / (m * m))
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation:
// 10*weight + 6.25*height - 5*age, plus 5 for males or minus 161 for females.
func BMR(weightKg, heightCm float64, age int, sex string) float64 {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	return math.Round(bmr)
}

// Age returns full years between birth date and now.
func Age(birth, now time.Time) int {
	if birth.IsZero() || birth.After(now) {
		return 0
	}
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
