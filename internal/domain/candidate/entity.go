package candidate

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("candidate not found")

// Profile is a worker known to the agency. Only Skills takes part in matching;
// the other fields are carried for display.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Skills     []string  `json:"skills"`
	Experience []string  `json:"experience"`
	Education  []string  `json:"education"`
	Summary    string    `json:"summary"`
}
