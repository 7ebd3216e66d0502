package domain

import "time"

// Message is a direct message between two principals, fetched by polling.
type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// Notification is an in-app notice for a single user.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CheckIn is a periodic self-report an athlete submits to their trainer.
type CheckIn struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Date       time.Time `json:"date"`
	WeightKg   float64   `json:"weight_kg,omitempty"`
	BMI        float64   `json:"bmi,omitempty"`
	Mood       string    `json:"mood,omitempty"`
	SleepHours float64   `json:"sleep_hours,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Feedback is an athlete's rating of their coaching.
type Feedback struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	TrainerID string    `json:"trainer_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentItem is training/education material a trainer shares with athletes.
type ContentItem struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"` // video, article, pdf
	URL       string    `json:"url"`
	Audience  []string  `json:"audience,omitempty"` // client ids; empty means all clients of the trainer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
