package schema

// CoreGenreTable represents the 'core.genre' table
type CoreGenreTable struct {
	Table     string
	ID        string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = CoreGenreTable{
	Table:     "core.genre",
	ID:        "id",
	Name:      "name",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Status, t.CreatedAt, t.UpdatedAt}
}
