package domain

import (
	"testing"
	"time"
)

func TestBMI(t *testing.T) {
	cases := []struct {
		weightKg, heightCm, want float64
	}{
		{70, 175, 22.9},
		{90, 180, 27.8},
		{0, 175, 0},
		{70, 0, 0},
	}
	for _, tc := range cases {
		if got := BMI(tc.weightKg, tc.heightCm); got != tc.want {
			t.Errorf("BMI(%v, %v) = %v, want %v", tc.weightKg, tc.heightCm, got, tc.want)
		}
	}
}

func TestBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75 → 1649
	if got := BMR(70, 175, 30, SexMale); got != 1649 {
		t.Errorf("male BMR = %v, want 1649", got)
	}
	// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25 → 1345
	if got := BMR(60, 165, 25, SexFemale); got != 1345 {
		t.Errorf("female BMR = %v, want 1345", got)
	}
	if got := BMR(70, 175, 0, SexMale); got != 0 {
		t.Errorf("BMR without age = %v, want 0", got)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth time.Time
		want  int
	}{
		{time.Date(1996, 8, 31, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(1996, 9, 1, 0, 0, 0, 0, time.UTC), 29},
		{time.Time{}, 0},
		{now.AddDate(1, 0, 0), 0},
	}
	for _, tc := range cases {
		if got := Age(tc.birth, now); got != tc.want {
			t.Errorf("Age(%v) = %d, want %d", tc.birth, got, tc.want)
		}
	}
}
