package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table   string
	UserID  string
	GameID  string
	AddedAt string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:   "library.entry",
	UserID:  "userid",
	GameID:  "gameid",
	AddedAt: "addedat",
}
