package generate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"eqgen/common"
	"eqgen/config"
)

// Values holds variables available for output name template expansion.
type Values struct {
	Context    string
	Markup     string
	Index      int
	Format     string
	SourceFile string
	ID         string
}

func expandTemplate(e expression, id string, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Markup:     e.Markup,
		Index:      e.Index,
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(e.SourceFile), filepath.Ext(e.SourceFile)),
		ID:         id,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
