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

// Package gen implements polycollection-gen, a code generator that scans
// a package for a named interface and emits a registry of every concrete
// struct type in that package implementing it, ready to seed a
// poly.Collection's base model.
package gen

import (
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// generation represents one run of the generator.
type generation struct {
	cfg      config
	astFiles []*ast.File
	// extraTestSource allows additional files to be injected into the
	// parse phase for testing.
	extraTestSource map[string][]byte
	fileSet         *token.FileSet
	// fullCheck enables complete type-checking of the input, used by
	// tests to validate that generated output actually compiles.
	fullCheck bool
	pkg       *types.Package
	source    *build.Package

	// found is populated by findImplementors: every struct type in the
	// package implementing cfg.typeName, in name-sorted order.
	found []implementor

	writeCloser func(name string) (io.WriteCloser, error)
}

// implementor describes one struct type accepted into the registry.
type implementor struct {
	Name   string
	ByPtr  bool // true if only *T implements the interface, not T
	Object *types.TypeName
}

// newGeneration constructs a generation that will scan cfg.dir for
// cfg.typeName.
func newGeneration(cfg config) *generation {
	return &generation{
		cfg:     cfg,
		fileSet: token.NewFileSet(),
		writeCloser: func(name string) (io.WriteCloser, error) {
			return os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		},
	}
}

// Execute runs the complete generation cycle: import, parse, type-check,
// scan for implementors, and render the registry source file.
func (g *generation) Execute() error {
	if err := g.importSources(); err != nil {
		return err
	}

	files := append(g.source.GoFiles, g.source.TestGoFiles...)
	if len(g.extraTestSource) > 0 {
		if err := g.addSource(g.extraTestSource); err != nil {
			return err
		}
		filtered := files[:0]
		for _, file := range files {
			if g.extraTestSource[file] == nil {
				filtered = append(filtered, file)
			}
		}
		files = filtered
	}

	if err := g.parseFiles(files); err != nil {
		return err
	}
	if err := g.typeCheck(); err != nil {
		return err
	}
	if err := g.findImplementors(); err != nil {
		return err
	}
	return g.render()
}

func (g *generation) addSource(source map[string][]byte) error {
	for name, data := range source {
		astFile, err := parser.ParseFile(g.fileSet, name, string(data), 0 /* Mode */)
		if err != nil {
			return err
		}
		g.astFiles = append(g.astFiles, astFile)
	}
	return nil
}

// importSources finds files on disk that we want to read. The generated
// code carries a build tag so that re-running the generator never trips
// over its own, possibly out-of-date, output.
func (g *generation) importSources() error {
	ctx := build.Default
	ctx.BuildTags = append(ctx.BuildTags, "polycollectionAnalysis")

	pkg, err := ctx.ImportDir(g.cfg.dir, 0)
	if err != nil {
		return err
	}
	g.source = pkg
	return nil
}

// parseFiles runs the go parser to produce AST elements.
func (g *generation) parseFiles(files []string) error {
	for _, path := range files {
		astFile, err := parser.ParseFile(g.fileSet, filepath.Join(g.cfg.dir, path), nil, 0 /* Mode */)
		if err != nil {
			return err
		}
		g.astFiles = append(g.astFiles, astFile)
	}
	return nil
}

// typeCheck runs the go/types checker over the parsed files. It is
// lenient unless fullCheck is set, since the package being scanned may
// itself depend on not-yet-(re)generated code.
func (g *generation) typeCheck() error {
	cfg := &types.Config{
		Importer: importer.For("source", nil),
	}
	if !g.fullCheck {
		cfg.DisableUnusedImportCheck = true
		cfg.Error = func(err error) {}
		cfg.IgnoreFuncBodies = true
	}
	var err error
	g.pkg, err = cfg.Check(g.cfg.dir, g.fileSet, g.astFiles, nil /* info */)
	if err != nil && g.fullCheck {
		return err
	}
	return nil
}

// findImplementors looks up cfg.typeName as a package-scope interface and
// records every exported struct type in the package implementing it, by
// value or by pointer.
func (g *generation) findImplementors() error {
	scope := g.pkg.Scope()

	named, ok := scope.Lookup(g.cfg.typeName).(*types.TypeName)
	if !ok {
		return errors.Errorf("polycollection-gen: %s is not a type in %s", g.cfg.typeName, g.cfg.dir)
	}
	intf, ok := named.Type().Underlying().(*types.Interface)
	if !ok {
		return errors.Errorf("polycollection-gen: %s is not an interface", g.cfg.typeName)
	}

	names := scope.Names()
	sort.Strings(names)
	for _, name := range names {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn == named {
			continue
		}
		if _, ok := tn.Type().Underlying().(*types.Struct); !ok {
			continue
		}
		switch {
		case types.Implements(tn.Type(), intf):
			g.found = append(g.found, implementor{Name: name, Object: tn})
		case types.Implements(types.NewPointer(tn.Type()), intf):
			g.found = append(g.found, implementor{Name: name, ByPtr: true, Object: tn})
		}
	}
	return nil
}
