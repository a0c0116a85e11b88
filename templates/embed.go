// Package templates embeds the HTML views rendered by the landing site.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
