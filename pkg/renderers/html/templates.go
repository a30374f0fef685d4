package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle used by default.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
