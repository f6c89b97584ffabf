// node.go defines the node tree produced by the template parser.
package wikitext

// NodeType indicates which variant a Node holds.
type NodeType int

const (
	NodeText     NodeType = iota // literal content
	NodeTemplate                 // {{name|arguments...}}
	NodeError                    // template invocation without a usable name
)

// String returns a short name for the node type.
func (t NodeType) String() string {
	switch t {
	case NodeText:
		return "text"
	case NodeTemplate:
		return "template"
	case NodeError:
		return "error"
	default:
		return "unknown"
	}
}

// Node is one element of a parsed document: literal text, a template
// invocation, or an error sentinel.
//
// Nodes returned by the parser hold substrings of the parsed input. Use
// Normalize to detach a tree from the input before retaining it.
type Node struct {
	Type      NodeType
	Text      string             // set when Type == NodeText
	Name      string             // set when Type == NodeTemplate, trimmed
	Arguments []TemplateArgument // set when Type == NodeTemplate, source order
}

// TemplateArgument is one argument of a template invocation.
type TemplateArgument struct {
	Name  string // argument key, trimmed; empty for positional arguments
	Named bool   // true when written as key=value
	Value []Node
}

// TextNode returns a text node.
func TextNode(text string) Node {
	return Node{Type: NodeText, Text: text}
}

// TemplateNode returns a template node with the given arguments.
func TemplateNode(name string, args ...TemplateArgument) Node {
	return Node{Type: NodeTemplate, Name: name, Arguments: args}
}

// ErrorNode returns the error sentinel.
func ErrorNode() Node {
	return Node{Type: NodeError}
}

// NamedArgument returns a key=value argument.
func NamedArgument(name string, value ...Node) TemplateArgument {
	return TemplateArgument{Name: name, Named: true, Value: value}
}

// PositionalArgument returns an unnamed argument.
func PositionalArgument(value ...Node) TemplateArgument {
	return TemplateArgument{Value: value}
}

// IsTemplate reports whether n is a template invocation named name.
func (n Node) IsTemplate(name string) bool {
	return n.Type == NodeTemplate && n.Name == name
}

// Argument returns the first named argument called name.
func (n Node) Argument(name string) (TemplateArgument, bool) {
	for _, arg := range n.Arguments {
		if arg.Named && arg.Name == name {
			return arg, true
		}
	}
	return TemplateArgument{}, false
}

// Positional returns the unnamed arguments in source order.
func (n Node) Positional() []TemplateArgument {
	var args []TemplateArgument
	for _, arg := range n.Arguments {
		if !arg.Named {
			args = append(args, arg)
		}
	}
	return args
}
