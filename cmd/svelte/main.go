package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/viant/afs"
	"golang.org/x/xerrors"

	compiler "github.com/svelte-go/compiler"
	"github.com/svelte-go/compiler/internal/ast"
	"github.com/svelte-go/compiler/internal/handler"
	"github.com/svelte-go/compiler/internal/loc"
	"github.com/svelte-go/compiler/internal/parser"
)

func main() {
	output := flag.String("o", "", "write output to file instead of stdout")
	dumpAST := flag.Bool("ast", false, "dump the parsed AST as JSON instead of compiling")
	name := flag.String("name", "", "component function name (default derived from filename)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: svelte [-o out.js] [-ast] [-name App] <file.svelte>")
		os.Exit(2)
	}
	filename := flag.Arg(0)

	if err := run(filename, *output, *name, *dumpAST); err != nil {
		stderr := colorable.NewColorableStderr()
		color.New(color.FgRed).Fprint(stderr, "error: ")
		fmt.Fprintln(stderr, err)
		os.Exit(1)
	}
}

func run(filename, output, componentName string, dumpAST bool) error {
	ctx := context.Background()
	fs := afs.New()

	data, err := fs.DownloadWithURL(ctx, filename)
	if err != nil {
		return xerrors.Errorf("read %s: %w", filename, err)
	}
	source := string(data)

	var out []byte
	if dumpAST {
		tree, d := parser.Parse(source)
		if d != nil {
			printDiagnostic(source, filename, d)
			os.Exit(1)
		}
		out, err = ast.ToJSON(tree)
		if err != nil {
			return xerrors.Errorf("encode ast: %w", err)
		}
	} else {
		result, d := compiler.CompileWithOptions(source, compiler.Options{
			ComponentName: componentName,
			Filename:      filename,
		})
		if d != nil {
			printDiagnostic(source, filename, d)
			os.Exit(1)
		}
		out = []byte(result.JS)
	}

	if output == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			return xerrors.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fs.Upload(ctx, output, 0o644, bytes.NewReader(out)); err != nil {
		return xerrors.Errorf("write %s: %w", output, err)
	}
	return nil
}

func printDiagnostic(source, filename string, d *loc.Diagnostic) {
	h := handler.NewHandler(source, filename)
	h.Print(colorable.NewColorableStderr(), d)
}
