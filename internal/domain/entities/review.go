package entities

import "time"

// Review is a rating plus comment left by a user on a service. Rating is
// an integer from 1 to 5. The same author may review the same service more
// than once; there is no uniqueness constraint.
type Review struct {
	ID        string    `json:"id" db:"id"`
	ServiceID string    `json:"serviceId" db:"service_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
