/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// KeyMap is the x-dynamodb-keymap vendor extension attached to a schema.
type KeyMap struct {
	Table        string `yaml:"table"`
	HashKeyAttr  string `yaml:"hashKeyAttr"`
	RangeKeyAttr string `yaml:"rangeKeyAttr"`
	HashKey      string `yaml:"hashKey"`
	RangeKey     string `yaml:"rangeKey"`
}

type schema struct {
	KeyMap *KeyMap `yaml:"x-dynamodb-keymap"`
}

type modelSpec struct {
	Components struct {
		Schemas map[string]schema `yaml:"schemas"`
	} `yaml:"components"`
}

// model is the template input for one generated registration.
type model struct {
	Name         string
	Table        string
	HashKeyAttr  string
	RangeKeyAttr string
	HashKeyExpr  string
	RangeKeyExpr string
	UsesFields   bool
}

type templateData struct {
	Package  string
	Models   []model
	NeedsFmt bool
}

// macroPattern matches {FieldName} placeholders in key templates.
var macroPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

const fileTemplate = `// Code generated by keymapgen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsFmt}}
	"fmt"
{{end}}
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/keys"
	"github.com/suparena/entityrepo/registry"
)

func init() {
{{- range .Models}}
	registry.RegisterTableMapping[{{.Name}}](registry.TableMapping{
		TableName:   {{printf "%q" .Table}},
		HashKeyAttr: {{printf "%q" .HashKeyAttr}},
{{- if .RangeKeyAttr}}
		RangeKeyAttr: {{printf "%q" .RangeKeyAttr}},
{{- end}}
		TypeName: {{printf "%q" .Name}},
		EntityKey: func(e any) keys.Key {
{{- if .UsesFields}}
			m := e.(*{{.Name}})
{{- end}}
{{- if .RangeKeyExpr}}
			return keys.Composite({{.HashKeyExpr}}, {{.RangeKeyExpr}})
{{- else}}
			return keys.HashOnly({{.HashKeyExpr}})
{{- end}}
		},
	})
	registry.RegisterType[{{.Name}}]({{printf "%q" .Name}}, func(item map[string]types.AttributeValue) (interface{}, error) {
		v := &{{.Name}}{}
		if err := attributevalue.UnmarshalMap(item, v); err != nil {
			return nil, err
		}
		return v, nil
	})
{{- end}}
}
`

// Generate produces the registration source for every schema in the YAML
// model spec that carries the x-dynamodb-keymap extension. Schemas without
// the extension are skipped.
func Generate(input []byte, pkg string) (string, error) {
	var spec modelSpec
	if err := yaml.Unmarshal(input, &spec); err != nil {
		return "", fmt.Errorf("failed to parse model spec: %w", err)
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name, s := range spec.Components.Schemas {
		if s.KeyMap != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no schemas with an x-dynamodb-keymap extension found")
	}
	sort.Strings(names)

	data := templateData{Package: pkg}
	for _, name := range names {
		m, err := buildModel(name, spec.Components.Schemas[name].KeyMap)
		if err != nil {
			return "", err
		}
		data.Models = append(data.Models, m)
		if m.UsesFields {
			data.NeedsFmt = true
		}
	}

	tmpl := template.Must(template.New("keymap").Parse(fileTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render registration code: %w", err)
	}
	return buf.String(), nil
}

func buildModel(name string, km *KeyMap) (model, error) {
	if km.Table == "" {
		return model{}, fmt.Errorf("schema %s: keymap is missing a table", name)
	}
	if km.HashKeyAttr == "" {
		return model{}, fmt.Errorf("schema %s: keymap is missing hashKeyAttr", name)
	}
	if km.HashKey == "" {
		return model{}, fmt.Errorf("schema %s: keymap is missing hashKey", name)
	}
	if (km.RangeKey == "") != (km.RangeKeyAttr == "") {
		return model{}, fmt.Errorf("schema %s: rangeKey and rangeKeyAttr must be set together", name)
	}

	m := model{
		Name:         name,
		Table:        km.Table,
		HashKeyAttr:  km.HashKeyAttr,
		RangeKeyAttr: km.RangeKeyAttr,
	}

	var usesFields bool
	m.HashKeyExpr, usesFields = keyExpr(km.HashKey)
	m.UsesFields = m.UsesFields || usesFields
	if km.RangeKey != "" {
		m.RangeKeyExpr, usesFields = keyExpr(km.RangeKey)
		m.UsesFields = m.UsesFields || usesFields
	}
	return m, nil
}

// keyExpr turns a key template like "PLAYER#{ID}" into a Go expression over
// the receiver m, e.g. fmt.Sprintf("PLAYER#%v", m.ID). Templates without
// placeholders become plain string literals.
func keyExpr(tmpl string) (string, bool) {
	matches := macroPattern.FindAllStringSubmatch(tmpl, -1)
	if len(matches) == 0 {
		return fmt.Sprintf("%q", tmpl), false
	}

	format := macroPattern.ReplaceAllString(tmpl, "%v")
	args := make([]string, 0, len(matches))
	for _, match := range matches {
		args = append(args, "m."+match[1])
	}
	return fmt.Sprintf("fmt.Sprintf(%q, %s)", format, strings.Join(args, ", ")), true
}

// Flags are registered at init so callers that parse before Main still see them.
var (
	input  = flag.String("input", "", "Path to the YAML model spec")
	output = flag.String("output", "", "Path of the generated Go file")
	pkg    = flag.String("package", "models", "Package name for the generated file")
)

// Main is the entry point used by the keymapgen command.
func Main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "keymapgen: -input and -output are required")
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymapgen: %v\n", err)
		os.Exit(1)
	}

	code, err := Generate(data, *pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymapgen: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "keymapgen: %v\n", err)
		os.Exit(1)
	}
}
