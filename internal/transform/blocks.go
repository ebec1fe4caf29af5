package transform

import (
	"strings"

	"github.com/svelte-go/compiler/internal/hir"
	"github.com/svelte-go/compiler/internal/js"
)

const commentNodeAnchor = "<!>"

// transformIfBlock emits the block anchor and the $.if call whose render
// callback chooses between the branch closures. An `else if` alternate
// threads $$elseif through to the nested call.
func (t *transformer) transformIfBlock(node *hir.Node, ctx *ownerContext) {
	block := node.If
	ctx.pushTemplate(commentNodeAnchor)

	content := t.analyses.ContentOf(block.OwnerID)
	test := js.Print(t.transformExpression(block.Test, ctx.owner))

	var stmts []string

	consequentID := ctx.fragment.gen.Generate("consequent")
	consequentBody := t.fragmentStatements(block.Consequent, block.OwnerID, content.Consequent)
	stmts = append(stmts, blockLines("var "+consequentID+" = ($$anchor) => {", consequentBody, "};"))

	renderLine := "if (" + test + ") $$render(" + consequentID + ");"

	if block.HasAlternate {
		alternateID := ctx.fragment.gen.Generate("alternate")
		params := "($$anchor)"
		if len(block.Alternate) == 1 && t.store.GetNode(block.Alternate[0]).IsElseIfBlock() {
			params = "($$anchor, $$elseif)"
		}
		alternateBody := t.fragmentStatements(block.Alternate, block.OwnerID, content.Alternate)
		stmts = append(stmts, blockLines("var "+alternateID+" = "+params+" => {", alternateBody, "};"))

		renderLine = "if (" + test + ") $$render(" + consequentID + "); else $$render(" + alternateID + ", false);"
	}

	anchor := ctx.anchor()
	tail := ");"
	if block.IsElseIf {
		anchor = "$$anchor"
		tail = ", $$elseif);"
	}

	stmts = append(stmts, blockLines("$.if("+anchor+", ($$render) => {", []string{renderLine}, "}"+tail))

	ctx.pushInit(blockLines("{", stmts, "}"))
}

// transformEachBlock emits the block anchor and the $.each call over the
// collection closure; the body closure compiles the block's own fragment.
func (t *transformer) transformEachBlock(node *hir.Node, ctx *ownerContext) {
	block := node.Each
	ctx.pushTemplate(commentNodeAnchor)

	collection := js.Print(t.transformExpression(block.Collection, block.OwnerID))

	params := "($$anchor, " + strings.TrimSpace(block.ItemRaw)
	if block.IndexRaw != "" {
		params += ", " + strings.TrimSpace(block.IndexRaw)
	}
	params += ")"

	content := t.analyses.ContentOf(block.OwnerID).Common
	body := t.fragmentStatements(block.Nodes, block.OwnerID, content)

	stmt := blockLines(
		"$.each("+ctx.anchor()+", 16, () => "+collection+", $.index, "+params+" => {",
		body,
		"});",
	)
	ctx.pushInit(stmt)
}
