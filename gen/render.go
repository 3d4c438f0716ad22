// Copyright 2018 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

package gen

import (
	"bytes"
	"go/format"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by polycollection-gen. DO NOT EDIT.

//go:build !polycollectionAnalysis
// +build !polycollectionAnalysis

package {{.Package}}

import (
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
)

// {{.TypeName}}Types lists every concrete struct type in this package
// implementing {{.TypeName}}, sorted by type name.
var {{.TypeName}}Types = []reflect.Type{
{{- range .Implementors}}
	reflect.TypeOf({{if .ByPtr}}&{{end}}{{.Name}}{}),
{{- end}}
}

// New{{.TypeName}}Collection builds an empty poly.Collection[{{.TypeName}}]
// with every type in {{.TypeName}}Types pre-registered.
func New{{.TypeName}}Collection() (*poly.Collection[{{.TypeName}}], error) {
	c := poly.New[{{.TypeName}}](model.Base[{{.TypeName}}]{})
	if err := c.RegisterTypes({{.TypeName}}Types...); err != nil {
		return nil, err
	}
	return c, nil
}
`))

type renderData struct {
	Package      string
	TypeName     string
	Implementors []implementor
}

// render executes the registry template against g's findings and writes
// the formatted result via g.writeCloser.
func (g *generation) render() error {
	var buf bytes.Buffer
	data := renderData{
		Package:      g.pkg.Name(),
		TypeName:     g.cfg.typeName,
		Implementors: g.found,
	}
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return errors.Wrap(err, "executing registry template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.Wrapf(err, "formatting generated source:\n%s", buf.String())
	}

	outName := g.cfg.outFile
	if outName == "" {
		outName = filepath.Join(g.cfg.dir, strings.ToLower(g.cfg.typeName)+"_registry.g.go")
	}

	out, err := g.writeCloser(outName)
	if err != nil {
		return err
	}
	_, err = out.Write(formatted)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
