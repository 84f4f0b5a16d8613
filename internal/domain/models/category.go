package models

import "time"

// Category is a global tag attached to prompts through prompt_categories.
type Category struct {
	ID          string    `json:"id" db:"id" yaml:"-"`
	Name        string    `json:"name" db:"name" yaml:"name"`
	Description *string   `json:"description,omitempty" db:"description" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" yaml:"-"`
}
