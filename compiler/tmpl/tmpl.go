// Package tmpl renders the Java scaffolding spliced into generated classes.
//
// Templates are embedded text/template files parsed once at init. A required
// placeholder is written {{.name}} and fails rendering when its parameter is
// missing; an optional section is written {{with index $ "doc"}}...{{end}}
// and is dropped when its parameter is absent or empty.
package tmpl

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Template names.
const (
	Fixed            = "fixed.tmpl"
	FixedNoNamespace = "fixed_nonamespace.tmpl"
	Enum             = "enum.tmpl"
	EnumNoNamespace  = "enum_nonamespace.tmpl"
)

//go:embed templates/*.tmpl
var files embed.FS

var templates = template.Must(
	template.New("tmpl").Option("missingkey=error").ParseFS(files, "templates/*.tmpl"),
)

// Params maps placeholder names to replacement text. An absent key, or an
// empty value, means "omit the optional section".
type Params map[string]string

// FixedTemplate returns the fixed class template for a class with or without
// a package.
func FixedTemplate(namespaced bool) string {
	if namespaced {
		return Fixed
	}
	return FixedNoNamespace
}

// EnumTemplate returns the enum class template for a class with or without a
// package.
func EnumTemplate(namespaced bool) string {
	if namespaced {
		return Enum
	}
	return EnumNoNamespace
}

// Fill renders the named template with params.
func Fill(name string, params Params) (string, error) {
	t := templates.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("tmpl: unknown template %q", name)
	}
	var b strings.Builder
	if err := t.Execute(&b, map[string]string(params)); err != nil {
		return "", fmt.Errorf("tmpl: fill %s: %w", name, err)
	}
	return b.String(), nil
}

// Names lists the loaded templates.
func Names() []string {
	var names []string
	for _, t := range templates.Templates() {
		if strings.HasSuffix(t.Name(), ".tmpl") {
			names = append(names, t.Name())
		}
	}
	return names
}
