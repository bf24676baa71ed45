package printer

import (
	"strings"

	"github.com/go-json-experiment/json"
	eml "github.com/sesh22/eml/internal"
)

// An ASTNode is the JSON-facing shape of one compiled tree node.
type ASTNode struct {
	Type       string    `json:"type"`
	Name       string    `json:"name,omitempty"`
	Value      string    `json:"value,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Attributes []ASTNode `json:"attributes,omitempty"`
	Children   []ASTNode `json:"children,omitempty"`
}

// PrintToJSON serializes compiled content as a JSON AST rooted at a node
// carrying the template name.
func PrintToJSON(content []eml.Content, name string) ([]byte, error) {
	return json.Marshal(ContentToAST(content, name))
}

// ContentToAST builds the JSON-facing tree for compiled content.
func ContentToAST(content []eml.Content, name string) ASTNode {
	root := ASTNode{Type: "root", Name: name}
	for _, c := range content {
		root.Children = append(root.Children, contentNode(c))
	}
	return root
}

func contentNode(c eml.Content) ASTNode {
	switch v := c.(type) {
	case eml.Text:
		return ASTNode{Type: "text", Value: string(v)}
	case eml.RawText:
		return ASTNode{Type: "raw-text", Value: string(v)}
	case eml.Param:
		return ASTNode{Type: "param", Name: string(v)}
	case *eml.Element:
		n := ASTNode{Type: "element", Name: v.Data}
		for _, attr := range v.Attr {
			n.Attributes = append(n.Attributes, attrNode(attr))
		}
		for _, child := range v.Children {
			n.Children = append(n.Children, contentNode(child))
		}
		return n
	}
	return ASTNode{Type: "invalid"}
}

func attrNode(attr eml.Attribute) ASTNode {
	n := ASTNode{Type: "attribute", Name: attr.Key}
	switch v := attr.Val.(type) {
	case eml.AttrText:
		if v == "" {
			n.Kind = "empty"
		} else {
			n.Kind = "quoted"
			n.Value = string(v)
		}
	case eml.AttrList:
		n.Kind = "list"
		n.Value = strings.Join(v, " ")
	case eml.AttrMixed:
		n.Kind = "mixed"
		for _, part := range v {
			switch p := part.(type) {
			case eml.AttrText:
				n.Children = append(n.Children, ASTNode{Type: "text", Value: string(p)})
			case eml.AttrParam:
				n.Children = append(n.Children, ASTNode{Type: "param", Name: string(p)})
			}
		}
	}
	return n
}
