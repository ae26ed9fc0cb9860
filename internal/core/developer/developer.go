package developer

import (
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

// Developer is the studio credited with making a game.
type Developer struct {
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

// MaxNameLength bounds Developer.Name in characters.
const MaxNameLength = 100
