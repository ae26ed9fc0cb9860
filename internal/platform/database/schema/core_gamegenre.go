package schema

// CoreGameGenreTable represents the 'core.gamegenre' join table
type CoreGameGenreTable struct {
	Table   string
	GameID  string
	GenreID string
}

// CoreGameGenre is the schema definition for core.gamegenre
var CoreGameGenre = CoreGameGenreTable{
	Table:   "core.gamegenre",
	GameID:  "gameid",
	GenreID: "genreid",
}
