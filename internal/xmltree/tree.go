package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is a generic XML element: name, attributes, text and ordered children.
// Repeated sibling elements of the same name are kept as separate children and
// read back as a sequence with All.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Parse decodes an XML document and returns its document element.
// CDATA sections are unwrapped into plain text and surrounding whitespace is
// trimmed. Documents declaring a non-UTF-8 encoding are transcoded.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
		text  [][]byte
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, attr := range t.Attr {
				if node.Attrs == nil {
					node.Attrs = make(map[string]string, len(t.Attr))
				}
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, nil)
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1] = append(text[len(text)-1], t...)
			}
		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = strings.TrimSpace(string(text[len(text)-1]))
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing xml: document has no root element")
	}
	return root, nil
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// All returns every child with the given name, in document order. A single
// element and a repeated element both come back as a slice; a missing element
// yields an empty slice.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range n.Children {
		if child.Name == name {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// Has reports whether a child with the given name exists.
func (n *Node) Has(name string) bool {
	return n.Child(name) != nil
}

// Find walks the given child names and returns the node at the end, or nil.
func (n *Node) Find(names ...string) *Node {
	current := n
	for _, name := range names {
		current = current.Child(name)
		if current == nil {
			return nil
		}
	}
	return current
}

// Path returns the text of the node reached by names, or "" if any step is missing.
func (n *Node) Path(names ...string) string {
	node := n.Find(names...)
	if node == nil {
		return ""
	}
	return node.Text
}

// Attr returns the named attribute value, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Texts returns the text of every child with the given name.
func (n *Node) Texts(name string) []string {
	nodes := n.All(name)
	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		texts = append(texts, node.Text)
	}
	return texts
}

// IsEmpty reports whether the node carries no children, text or attributes.
func (n *Node) IsEmpty() bool {
	return n == nil || (len(n.Children) == 0 && n.Text == "" && len(n.Attrs) == 0)
}
