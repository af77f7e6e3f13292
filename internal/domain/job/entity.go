package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Type string

const (
	TypePermanent  Type = "permanent"
	TypeFixedTerm  Type = "fixed_term"
	TypeTemp       Type = "temp"
	TypeFreelance  Type = "freelance"
	TypeInternship Type = "internship"
)

type Company struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Salary is a closed range expressed in Currency (ISO 4217 code).
type Salary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type Posting struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        Company   `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Type           Type      `json:"type"`
	PostedAt       time.Time `json:"posted_at"`
	RequiredSkills []string  `json:"required_skills"`
	Salary         *Salary   `json:"salary,omitempty"`
}

// Filter is a catalog pre-filter hint. Providers may ignore any field.
type Filter struct {
	Query    string `json:"query,omitempty"`
	Location string `json:"location,omitempty"`
	Type     Type   `json:"type,omitempty"`
}
