package models

import "time"

type City struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Region    string     `json:"region"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
