// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

func TestWrite_RollsBackOnError(t *testing.T) {
	db := New()

	require.NoError(t, db.Write(func(tables *Tables) error {
		id := tables.NextID(SeqDeveloper)
		tables.Developers[id] = NamedRow{ID: id, Name: "Nintendo", Status: lifecycle.Active}
		return nil
	}))

	failure := errors.New("genre missing")
	err := db.Write(func(tables *Tables) error {
		id := tables.NextID(SeqGame)
		tables.Games[id] = GameRow{ID: id, Title: "Zelda", DeveloperID: 1}
		delete(tables.Developers, 1)
		return failure
	})
	assert.ErrorIs(t, err, failure)

	require.NoError(t, db.Read(func(tables *Tables) error {
		assert.Empty(t, tables.Games)
		assert.Contains(t, tables.Developers, int64(1))
		return nil
	}))

	// The rolled back sequence value is handed out again.
	require.NoError(t, db.Write(func(tables *Tables) error {
		assert.Equal(t, int64(1), tables.NextID(SeqGame))
		return nil
	}))
}

func TestOrdered(t *testing.T) {
	rows := map[int64]NamedRow{
		3: {ID: 3, Name: "RPG"},
		1: {ID: 1, Name: "Adventure"},
		2: {ID: 2, Name: "Puzzle"},
	}

	ordered := Ordered(rows)
	require.Len(t, ordered, 3)
	assert.Equal(t, []string{"Adventure", "Puzzle", "RPG"}, []string{ordered[0].Name, ordered[1].Name, ordered[2].Name})
}
