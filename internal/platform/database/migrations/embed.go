// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the versioned SQL schema.
package migrations

import "embed"

// Files holds every NNNNNN_name.{up,down}.sql migration.
//
//go:embed *.sql
var Files embed.FS
