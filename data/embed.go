// Package data holds the embedded game content: spell, item, and enemy
// catalogs plus the balance tuning file.
package data

import "embed"

// contentFS embeds the content files from this directory at build time.
//
//go:embed *.json balance.yaml
var contentFS embed.FS

// FS returns the embedded filesystem containing game content.
func FS() embed.FS {
	return contentFS
}
