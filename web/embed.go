// Package web embeds the static assets served under /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static is the embedded asset tree rooted at static/.
var Static, _ = fs.Sub(staticFS, "static")
