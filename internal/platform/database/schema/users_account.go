package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Status    string
	CreatedAt string
	UpdatedAt string

	// EmailKey is the unique constraint guarding email ownership.
	EmailKey string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	EmailKey:  "account_email_key",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.Status, t.CreatedAt, t.UpdatedAt}
}
