package transform

import (
	"strconv"

	"github.com/svelte-go/compiler/internal/analyze"
	"github.com/svelte-go/compiler/internal/hir"
)

// A fragmentContext accumulates one fragment's four statement buckets and
// its static template pieces. Each fragment gets its own identifier
// namespace.
type fragmentContext struct {
	beforeInit  []string
	init        []string
	update      []string
	afterUpdate []string
	template    []string
	gen         *analyze.IdentifierGen
}

func newFragmentContext() *fragmentContext {
	return &fragmentContext{gen: analyze.NewIdentifierGen()}
}

type accessMode uint32

const (
	// accessDirect hands the base identifier out as the first anchor.
	accessDirect accessMode = iota
	// accessFirstChild reaches the first anchor via $.first_child(base).
	accessFirstChild
	// accessChild reaches the first anchor via $.child(base).
	accessChild
)

// An ownerContext walks one owner's child list, maintaining the previous
// anchor and the sibling offset of static nodes skipped since the last
// materialized variable.
type ownerContext struct {
	fragment *fragmentContext

	base          string
	mode          accessMode
	used          bool
	prev          string
	siblingOffset int

	// owner scopes the expressions evaluated while walking this fragment.
	owner hir.OwnerID
}

func newOwnerContext(fragment *fragmentContext, base string, mode accessMode, owner hir.OwnerID) *ownerContext {
	return &ownerContext{fragment: fragment, base: base, mode: mode, owner: owner}
}

func (c *ownerContext) anchor() string {
	return c.prev
}

func (c *ownerContext) nextSibling() {
	c.siblingOffset++
}

func (c *ownerContext) pushBeforeInit(stmt string) {
	c.fragment.beforeInit = append(c.fragment.beforeInit, stmt)
}

func (c *ownerContext) pushInit(stmt string) {
	c.fragment.init = append(c.fragment.init, stmt)
}

func (c *ownerContext) pushUpdate(stmt string) {
	c.fragment.update = append(c.fragment.update, stmt)
}

func (c *ownerContext) pushAfterUpdate(stmt string) {
	c.fragment.afterUpdate = append(c.fragment.afterUpdate, stmt)
}

func (c *ownerContext) pushTemplate(text string) {
	c.fragment.template = append(c.fragment.template, text)
}

// flushNode materializes the anchor for a node that needs its own
// variable: the accumulated sibling offset folds into one access
// expression, a named variable captures it, and the offset resets.
// Text-anchored nodes pass isText so hydration can create the missing
// text node.
func (c *ownerContext) flushNode(isText bool, preferred string) {
	var expr string
	direct := false

	if !c.used {
		c.used = true
		switch c.mode {
		case accessDirect:
			expr = c.base
			direct = true
		case accessFirstChild:
			expr = "$.first_child(" + c.base + ")"
		case accessChild:
			expr = "$.child(" + c.base + ")"
		}
		if !direct {
			if c.siblingOffset > 0 {
				expr = siblingCall(expr, c.siblingOffset, isText)
			} else if isText {
				// The access call itself asks hydration to create the
				// text node.
				expr = expr[:len(expr)-1] + ", true)"
			}
		}
	} else {
		expr = siblingCall(c.prev, c.siblingOffset, isText)
	}

	c.siblingOffset = 1

	if direct {
		c.prev = expr
		return
	}

	name := c.fragment.gen.Generate(preferred)
	c.pushInit("var " + name + " = " + expr + ";")
	c.prev = name
}

func siblingCall(prev string, offset int, isText bool) string {
	args := prev
	if isText || offset != 1 {
		args += ", " + strconv.Itoa(offset)
	}
	if isText {
		args += ", true"
	}
	return "$.sibling(" + args + ")"
}
