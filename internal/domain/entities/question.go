package entities

import "time"

// Question is a public question asked on a service. Answer stays empty
// until the provider replies. The wire field for the question body is
// "question".
type Question struct {
	ID        string    `json:"id" db:"id"`
	ServiceID string    `json:"serviceId" db:"service_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"question" db:"question"`
	Answer    string    `json:"answer,omitempty" db:"answer"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// QuestionView is a question enriched with the asker's name and the
// service title for provider dashboards.
type QuestionView struct {
	Question
	UserName     string `json:"userName"`
	ServiceTitle string `json:"serviceTitle"`
}
