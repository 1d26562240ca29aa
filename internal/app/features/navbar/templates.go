// internal/app/features/navbar/templates.go
package navbar

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "navbar",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
