// Package web embeds the static welcome page served at the root path.
package web

import "embed"

//go:embed index.html public
var FS embed.FS
