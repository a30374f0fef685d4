package httpui

import "embed"

//go:embed templates/*.tmpl
var pageTemplates embed.FS

func pagesFS() embed.FS {
	return pageTemplates
}
