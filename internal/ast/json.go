package ast

import (
	"github.com/go-json-experiment/json"
)

// JSONNode is the structural dump of a parsed node for tooling.
type JSONNode struct {
	Type       string       `json:"type"`
	Name       string       `json:"name,omitempty"`
	Value      string       `json:"value,omitempty"`
	Kind       string       `json:"kind,omitempty"`
	Expression string       `json:"expression,omitempty"`
	Attributes []JSONNode   `json:"attributes,omitempty"`
	Children   []JSONNode   `json:"children,omitempty"`
	Alternate  []JSONNode   `json:"alternate,omitempty"`
	Position   JSONPosition `json:"position"`
}

type JSONPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ToJSON serializes the whole tree, script first when present.
func ToJSON(a *Ast) ([]byte, error) {
	root := JSONNode{Type: "root"}
	if a.Script != nil {
		root.Children = append(root.Children, toJSONNode(a.Script))
	}
	for _, n := range a.Template {
		root.Children = append(root.Children, toJSONNode(n))
	}
	return json.Marshal(root)
}

func toJSONNode(n *Node) JSONNode {
	out := JSONNode{
		Type:     nodeTypeName(n.Type),
		Position: JSONPosition{Start: n.Loc.Start, End: n.Loc.End},
	}

	switch n.Type {
	case TextNode, CommentNode, ScriptNode:
		out.Value = n.Data
	case ElementNode:
		out.Name = n.Name
	case InterpolationNode, IfBlockNode, EachBlockNode:
		out.Expression = n.RawExpression
	}

	for _, attr := range n.Attributes {
		out.Attributes = append(out.Attributes, toJSONAttribute(attr))
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toJSONNode(child))
	}
	for _, child := range n.Alternate {
		out.Alternate = append(out.Alternate, toJSONNode(child))
	}
	return out
}

func toJSONAttribute(a *Attribute) JSONNode {
	out := JSONNode{
		Type:     "attribute",
		Kind:     a.Kind.String(),
		Name:     a.Name,
		Position: JSONPosition{Start: a.KeyLoc.Start, End: a.KeyLoc.End},
	}
	switch a.Kind {
	case StringAttribute:
		out.Value = a.Value
	case ExpressionAttribute, SpreadAttribute, ClassDirective, BindDirective:
		out.Expression = a.RawExpression
	case ConcatenationAttribute:
		for _, part := range a.Parts {
			child := JSONNode{Position: JSONPosition{Start: part.Loc.Start, End: part.Loc.End}}
			if part.IsExpression() {
				child.Type = "expression"
				child.Expression = part.Raw
			} else {
				child.Type = "text"
				child.Value = part.Text
			}
			out.Children = append(out.Children, child)
		}
	}
	return out
}

func nodeTypeName(t NodeType) string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case InterpolationNode:
		return "interpolation"
	case IfBlockNode:
		return "if-block"
	case EachBlockNode:
		return "each-block"
	case CommentNode:
		return "comment"
	case ScriptNode:
		return "script"
	}
	return "unknown"
}
