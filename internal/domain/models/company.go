package models

import "time"

// Company owns documents and holds the API credential used both to call the
// signature provider on its behalf and to authenticate inbound automation
// requests.
type Company struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	APIToken      string    `json:"api_token" db:"api_token"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at" db:"last_updated_at"`
}
