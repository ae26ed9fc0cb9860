package schema

// CoreGameTable represents the 'core.game' table
type CoreGameTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	DeveloperID string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// CoreGame is the schema definition for core.game
var CoreGame = CoreGameTable{
	Table:       "core.game",
	ID:          "id",
	Title:       "title",
	Description: "description",
	DeveloperID: "developerid",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreGameTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.DeveloperID, t.Status, t.CreatedAt, t.UpdatedAt}
}
