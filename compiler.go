// Package compiler is the public entry point: it turns one component
// source into the executable output program, or the first diagnostic
// encountered.
package compiler

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/svelte-go/compiler/internal/analyze"
	"github.com/svelte-go/compiler/internal/loc"
	"github.com/svelte-go/compiler/internal/lower"
	"github.com/svelte-go/compiler/internal/parser"
	"github.com/svelte-go/compiler/internal/transform"
)

type Options struct {
	// ComponentName overrides the emitted component function name.
	// Defaults to App, or to a name derived from Filename.
	ComponentName string
	Filename      string
}

type Result struct {
	JS   string
	Hash string
}

// Compile compiles one source buffer with default options.
func Compile(source string) (Result, *loc.Diagnostic) {
	return CompileWithOptions(source, Options{})
}

// CompileWithOptions runs the full pipeline: scan and parse, lower to HIR,
// analyze, emit.
func CompileWithOptions(source string, opts Options) (Result, *loc.Diagnostic) {
	tree, d := parser.Parse(source)
	if d != nil {
		return Result{}, d
	}

	store := lower.Lower(tree)
	analyses := analyze.Analyze(store)

	name := opts.ComponentName
	if name == "" && opts.Filename != "" {
		name = ComponentName(opts.Filename)
	}

	out := transform.PrintToJS(store, analyses, transform.Options{
		ComponentName: name,
		Filename:      opts.Filename,
	})

	return Result{JS: string(out.Output), Hash: HashFromSource(source)}, nil
}

// ComponentName derives a component function name from a filename.
func ComponentName(filename string) string {
	if filename == "" || filename == "<stdin>" {
		return transform.DefaultComponentName
	}
	parts := strings.Split(filename, "/")
	part := parts[len(parts)-1]
	if part == "" {
		return transform.DefaultComponentName
	}
	basename := strcase.ToCamel(strings.Split(part, ".")[0])
	if !isIdentifier(basename) {
		return transform.DefaultComponentName
	}
	return basename
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		isAlpha := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
		isDigit := ch >= '0' && ch <= '9'
		if !isAlpha && !(i > 0 && isDigit) {
			return false
		}
	}
	return true
}
