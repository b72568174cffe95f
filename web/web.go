// Package web embeds the server-rendered report views.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS
