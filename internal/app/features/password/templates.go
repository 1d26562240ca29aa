// internal/app/features/password/templates.go
package password

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "password",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
