// pkg/pack/templates.go
package pack

import (
	"embed"
	"encoding/json"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("pack").
		Funcs(template.FuncMap{"json": toJSON}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// entryData feeds the generated runtime entry module
type entryData struct {
	Library   string
	BakedPath *string // nil renders as null
	Available []string
	Supported []string
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
