package schema

// CoreDeveloperTable represents the 'core.developer' table
type CoreDeveloperTable struct {
	Table     string
	ID        string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// CoreDeveloper is the schema definition for core.developer
var CoreDeveloper = CoreDeveloperTable{
	Table:     "core.developer",
	ID:        "id",
	Name:      "name",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreDeveloperTable) Columns() []string {
	return []string{t.ID, t.Name, t.Status, t.CreatedAt, t.UpdatedAt}
}
