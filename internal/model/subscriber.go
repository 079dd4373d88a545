package model

import "time"

// Subscriber is a newsletter subscription. Email is unique across subscribers.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}
