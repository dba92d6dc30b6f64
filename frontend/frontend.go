package frontend

import "embed"

// StaticFiles holds the dashboard served at the root path
//
//go:embed dist
var StaticFiles embed.FS
