package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"text/template"

	"github.com/Azhovan/hydrate"
)

// Template executes a text/template with params as data.
//
// The data is a map of dotted keys, so values are read with index or the helpers:
//
//	url={{ key "jira.url" }}
//	port={{ key "jira.db.port" | default "5432" }}
//	<password>{{ key "jira.db.password" | xml }}</password>
//	{{ range keys }}{{ . }}={{ key . }}
//	{{ end }}
//
// A key that was never hydrated renders as "".
func Template(w io.Writer, text string, params *hydrate.Params) error {
	if params == nil {
		return fmt.Errorf("params is nil")
	}

	tmpl, err := template.New("hydrate").
		Option("missingkey=zero").
		Funcs(funcs(params)).
		Parse(text)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	if err := tmpl.Execute(w, params.Map()); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}

func funcs(params *hydrate.Params) template.FuncMap {
	return template.FuncMap{
		"key": func(k string) string {
			v, _ := params.Get(k)
			return v
		},
		"keys": params.Keys,
		"default": func(def, v string) string {
			if v == "" {
				return def
			}
			return v
		},
		"xml": escapeXML,
	}
}

// escapeXML escapes s for use in XML character data and quoted attributes.
func escapeXML(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
