package transform

import (
	"strings"

	"github.com/svelte-go/compiler/internal/analyze"
	"github.com/svelte-go/compiler/internal/hir"
)

// fragmentStatements compiles one fragment into its statement sequence:
// optional cursor advance, the anchor instantiation, the four buckets, and
// the closing append. The static template string is hoisted to module
// scope.
func (t *transformer) fragmentStatements(nodes []hir.NodeID, owner hir.OwnerID, content analyze.ContentType) []string {
	if content.Empty() {
		return nil
	}

	// An alternate made of a single `else if` block compiles to just the
	// nested $.if against the incoming anchor: no template, no append.
	if len(nodes) == 1 && t.store.GetNode(nodes[0]).IsElseIfBlock() {
		f := newFragmentContext()
		ctx := newOwnerContext(f, "$$anchor", accessDirect, owner)
		t.transformIfBlock(t.store.GetNode(nodes[0]), ctx)
		return collectBuckets(f)
	}

	templateName := t.analyses.HoistedGen.Generate("root")
	f := newFragmentContext()

	single := len(nodes) == 1
	first := t.store.GetNode(nodes[0])

	var body []string
	if single && first.IsTextLike() {
		body = append(body, "$.next();")
	}

	var anchorID string
	mode := accessFirstChild
	flags := ", 1"

	switch {
	case content.AnyTextLike():
		anchorID = f.gen.Generate("text")
		mode = accessDirect
	case content.OnlyElement() && single:
		anchorID = f.gen.Generate(first.Element.Name)
		mode = accessDirect
		flags = ""
	default:
		anchorID = f.gen.Generate("fragment")
	}

	ctx := newOwnerContext(f, anchorID, mode, owner)
	t.transformNodes(nodes, ctx)

	if content.AnyTextLike() {
		if first.Kind == hir.TextNode {
			body = append(body, "var "+anchorID+" = $.text("+quoteString(first.Value)+");")
		} else {
			body = append(body, "var "+anchorID+" = $.text();")
		}
	} else {
		body = append(body, "var "+anchorID+" = "+templateName+"();")
	}

	t.hoistTemplate(templateName, f, flags)

	body = append(body, collectBuckets(f)...)
	body = append(body, "$.append($$anchor, "+anchorID+");")
	return body
}

// collectBuckets flattens a fragment's buckets in emission order, folding
// a non-empty update bucket into one template effect.
func collectBuckets(f *fragmentContext) []string {
	var out []string
	out = append(out, f.beforeInit...)
	out = append(out, f.init...)
	if len(f.update) > 0 {
		out = append(out, templateEffect(f.update))
	}
	out = append(out, f.afterUpdate...)
	return out
}

func templateEffect(update []string) string {
	if len(update) == 1 && !strings.Contains(update[0], "\n") {
		return "$.template_effect(() => " + strings.TrimSuffix(update[0], ";") + ");"
	}
	return blockLines("$.template_effect(() => {", update, "});")
}

func (t *transformer) hoistTemplate(name string, f *fragmentContext, flags string) {
	payload := escapeTemplateString(strings.Join(f.template, ""))
	t.hoisted = append(t.hoisted, "var "+name+" = $.template(`"+payload+"`"+flags+");")
}
