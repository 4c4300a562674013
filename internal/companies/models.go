package companies

import "time"

// Company is an employer profile jobs are posted under.
type Company struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Industry    string `json:"industry,omitempty" bson:"industry,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	Website     string `json:"website,omitempty" bson:"website,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Active      bool   `json:"active" bson:"active"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
