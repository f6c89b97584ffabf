// traverse.go provides tree walking, rendering and detaching for Node trees.
package wikitext

import "strings"

// ExpandFunc renders a template invocation into out. It decides, per
// template name, whether the template contributes any text.
type ExpandFunc func(name string, args []TemplateArgument, out *strings.Builder)

// Walk visits every node in pre-order: each node first, then for templates
// the value of every argument, in argument order.
func Walk(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		n.Walk(visit)
	}
}

// Walk visits n and its descendants in pre-order.
func (n Node) Walk(visit func(Node)) {
	visit(n)
	if n.Type != NodeTemplate {
		return
	}
	for _, arg := range n.Arguments {
		Walk(arg.Value, visit)
	}
}

// FindTemplates returns every template named name, at any depth, in
// pre-order.
func FindTemplates(nodes []Node, name string) []Node {
	var found []Node
	Walk(nodes, func(n Node) {
		if n.IsTemplate(name) {
			found = append(found, n)
		}
	})
	return found
}

// CountNodes returns the number of nodes in the tree, descendants included.
func CountNodes(nodes []Node) int {
	count := 0
	Walk(nodes, func(Node) { count++ })
	return count
}

// Render reconstructs flat text from nodes. Text nodes are copied verbatim,
// templates are passed to expand, error nodes produce nothing. A nil expand
// drops every template.
func Render(nodes []Node, expand ExpandFunc) string {
	var sb strings.Builder
	RenderTo(&sb, nodes, expand)
	return sb.String()
}

// Render reconstructs flat text from a single node.
func (n Node) Render(expand ExpandFunc) string {
	var sb strings.Builder
	n.renderTo(&sb, expand)
	return sb.String()
}

// RenderTo appends the rendering of nodes to sb. Expand functions use it to
// render argument values into the output they were handed.
func RenderTo(sb *strings.Builder, nodes []Node, expand ExpandFunc) {
	for _, n := range nodes {
		n.renderTo(sb, expand)
	}
}

func (n Node) renderTo(sb *strings.Builder, expand ExpandFunc) {
	switch n.Type {
	case NodeText:
		sb.WriteString(n.Text)
	case NodeTemplate:
		if expand != nil {
			expand(n.Name, n.Arguments, sb)
		}
	}
}

// Normalize returns a deep copy of nodes in which every string is an
// independent copy, so the result does not keep the parsed input alive.
// The copy is value-equal to the source.
func Normalize(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Normalize()
	}
	return out
}

// Normalize returns a detached deep copy of n.
func (n Node) Normalize() Node {
	switch n.Type {
	case NodeText:
		return TextNode(strings.Clone(n.Text))
	case NodeTemplate:
		out := Node{Type: NodeTemplate, Name: strings.Clone(n.Name)}
		if n.Arguments != nil {
			out.Arguments = make([]TemplateArgument, len(n.Arguments))
			for i, arg := range n.Arguments {
				out.Arguments[i] = TemplateArgument{
					Name:  strings.Clone(arg.Name),
					Named: arg.Named,
					Value: Normalize(arg.Value),
				}
			}
		}
		return out
	default:
		return n
	}
}
