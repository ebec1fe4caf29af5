package analyze

import (
	"github.com/svelte-go/compiler/internal/hir"
)

// ContentType is the bitmask of direct-child categories of an owner's
// fragment.
type ContentType uint32

const (
	ContentText ContentType = 1 << (iota + 1)
	ContentInterpolation
	ContentConcatenation
	ContentElement
	ContentIfBlock
	ContentEachBlock
)

const contentTextLike = ContentText | ContentInterpolation | ContentConcatenation
const contentFragmentOwner = ContentIfBlock | ContentEachBlock

func (c ContentType) Empty() bool {
	return c == 0
}

func (c ContentType) OnlyText() bool {
	return c == ContentText
}

func (c ContentType) OnlyElement() bool {
	return c == ContentElement
}

// AnyTextLike reports a non-empty subset of text, interpolation and
// concatenation.
func (c ContentType) AnyTextLike() bool {
	return c != 0 && c&^contentTextLike == 0
}

// OnlyFragmentOwner reports a fragment made of blocks alone.
func (c ContentType) OnlyFragmentOwner() bool {
	return c != 0 && c&^contentFragmentOwner == 0
}

func (c ContentType) set(node *hir.Node) ContentType {
	switch node.Kind {
	case hir.TextNode:
		return c | ContentText
	case hir.InterpolationNode:
		return c | ContentInterpolation
	case hir.ConcatenationNode:
		return c | ContentConcatenation
	case hir.ElementNode:
		return c | ContentElement
	case hir.IfBlockNode:
		return c | ContentIfBlock
	case hir.EachBlockNode:
		return c | ContentEachBlock
	}
	return c
}

// OwnerContent carries one flag set per owner; if-blocks get one per
// branch.
type OwnerContent struct {
	IsIf       bool
	Common     ContentType
	Consequent ContentType
	Alternate  ContentType
}

func (a *Analyses) contentTypePass() {
	for _, owner := range a.store.Owners {
		switch owner.Kind {
		case hir.IfBlockOwner:
			a.content[owner.ID] = &OwnerContent{
				IsIf:       true,
				Consequent: a.fragmentFlags(owner.If.Consequent),
				Alternate:  a.fragmentFlags(owner.If.Alternate),
			}
		default:
			a.content[owner.ID] = &OwnerContent{Common: a.fragmentFlags(owner.Nodes())}
		}
	}
}

func (a *Analyses) fragmentFlags(nodes []hir.NodeID) ContentType {
	flags := ContentType(0)
	for _, id := range nodes {
		flags = flags.set(a.store.GetNode(id))
	}
	return flags
}

func (a *Analyses) ContentOf(owner hir.OwnerID) *OwnerContent {
	return a.content[owner]
}
