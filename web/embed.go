package web

import "embed"

// Templates embeds the PDF document templates.
//
//go:embed templates/reports/*.html
var Templates embed.FS
