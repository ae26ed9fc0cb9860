package genre

import (
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

// Genre classifies games. A game may belong to any number of genres.
type Genre struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Status    lifecycle.Status `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName = "name"
)

// MaxNameLength bounds Genre.Name in characters.
const MaxNameLength = 100
