// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/platform/database/migrations"
)

func TestToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/games":   "pgx5://u:p@db:5432/games",
		"postgresql://u:p@db:5432/games": "pgx5://u:p@db:5432/games",
		"pgx5://u:p@db:5432/games":       "pgx5://u:p@db:5432/games",
	}

	for input, want := range tests {
		assert.Equal(t, want, toPgx5DSN(input))
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.Files, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.Files, "*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
