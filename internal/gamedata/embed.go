// Package gamedata provides the embedded dungeon floors and utilities for
// loading data files.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
