package model

import "time"

// Suggestion is free-form customer feedback submitted through the public
// form. Name and contact may be the placeholder when anonymous submissions
// are allowed.
type Suggestion struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
