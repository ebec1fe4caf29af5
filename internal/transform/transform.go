// Package transform emits the output program from the HIR store and the
// analyses. Statements are assembled as text through a printer; embedded
// expressions are rewritten on the host parser's tree and printed by the
// host printer.
package transform

import (
	"fmt"
	"strings"

	"github.com/svelte-go/compiler/internal/analyze"
	"github.com/svelte-go/compiler/internal/hir"
)

// InternalModule is the runtime module the emitted program imports as $.
const InternalModule = "svelte/internal/client"

const DefaultComponentName = "App"

type Options struct {
	ComponentName string
	Filename      string
}

type PrintResult struct {
	Output []byte
}

type printer struct {
	output []byte
}

func (p *printer) print(text string) {
	p.output = append(p.output, text...)
}

func (p *printer) printf(format string, a ...interface{}) {
	p.print(fmt.Sprintf(format, a...))
}

func (p *printer) println(text string) {
	p.print(text + "\n")
}

type transformer struct {
	store    *hir.Store
	analyses *analyze.Analyses
	hoisted  []string
	imports  []string
}

// PrintToJS assembles the whole output program: the runtime import,
// hoisted script imports, hoisted template statics, and the component
// function wrapping the script body and the root fragment.
func PrintToJS(store *hir.Store, analyses *analyze.Analyses, opts Options) PrintResult {
	t := &transformer{store: store, analyses: analyses}

	scriptBody := t.transformScript()

	content := analyses.ContentOf(hir.TemplateOwnerID).Common
	var fragmentBody []string
	if !content.Empty() {
		fragmentBody = t.fragmentStatements(store.Template().Nodes, hir.TemplateOwnerID, content)
	}

	var componentBody []string
	if analyses.NeedsBindingGroup() {
		componentBody = append(componentBody, "const binding_group = [];")
	}
	componentBody = append(componentBody, scriptBody...)
	componentBody = append(componentBody, fragmentBody...)

	name := opts.ComponentName
	if name == "" {
		name = DefaultComponentName
	}

	p := &printer{}
	p.printf("import * as $ from %q;\n", InternalModule)
	for _, imp := range t.imports {
		p.println(imp)
	}
	p.print("\n")

	if len(t.hoisted) > 0 {
		for _, stmt := range t.hoisted {
			p.println(stmt)
		}
		p.print("\n")
	}

	if len(componentBody) == 0 {
		p.printf("export default function %s($$anchor) {}\n", name)
	} else {
		p.printf("export default function %s($$anchor) {\n", name)
		for _, stmt := range componentBody {
			p.println(indentLines(stmt, "\t"))
		}
		p.println("}")
	}

	return PrintResult{Output: p.output}
}

// indentLines prefixes every non-empty line of a possibly multi-line
// statement.
func indentLines(stmt, prefix string) string {
	lines := strings.Split(stmt, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// blockLines renders a brace-delimited block with its body indented one
// level.
func blockLines(header string, body []string, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, stmt := range body {
		b.WriteString(indentLines(stmt, "\t"))
		b.WriteString("\n")
	}
	b.WriteString(footer)
	return b.String()
}

func escapeTemplateString(src string) string {
	src = strings.ReplaceAll(src, `\`, `\\`)
	src = strings.ReplaceAll(src, "`", "\\`")
	src = strings.ReplaceAll(src, "${", "\\${")
	return src
}

func quoteString(src string) string {
	return fmt.Sprintf("%q", src)
}
