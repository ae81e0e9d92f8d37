// Package assets embeds the shaders and meshes the shadow demo ships with.
package assets

import "embed"

// FS holds shaders/ and mesh/. Paths are slash-separated and relative to this directory.
//
//go:embed shaders mesh
var FS embed.FS
