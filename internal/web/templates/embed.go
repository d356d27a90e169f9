// Package templates contiene los HTML embebidos de la UI de adopción.
package templates

import "embed"

//go:embed *.html partials/*.html
var FS embed.FS
