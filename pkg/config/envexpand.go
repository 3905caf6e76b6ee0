package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	// default returns def when v is empty: {{.HTTP_PORT | default "8080"}}
	"default": func(def, v string) string {
		if v == "" {
			return def
		}
		return v
	},
}

// ExpandEnv replaces {{.VAR}} references in YAML content with environment
// values. Literal $ characters are left alone, so values such as p@ss$word
// survive untouched.
//
// Unset variables expand to "". Content that fails to parse or execute as a
// template is returned unchanged.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New(FileName).
		Option("missingkey=zero").
		Funcs(expandFuncs).
		Parse(string(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, environ()); err != nil {
		return data
	}
	return buf.Bytes()
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}
