// Package hierarchy provides the in-memory scene graph that an imported
// Cubism model materializes into: named nodes carrying components, with a
// distinguished model root holding the three reserved subtrees
// (Parameters, Parts, Drawables).
//
// The package is deliberately host-agnostic. Component payloads are opaque
// typed structs resolved through a Registry, never through runtime
// reflection over host types.
package hierarchy

// Node is a named entity in the hierarchy. Children and components keep
// their discovery order; lookups by name return the first match.
type Node struct {
	Name       string
	Children   []*Node
	Components []*Component
}

// NewNode creates a node with the given name and no children or components.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// FindChild returns the first direct child with the given name, or nil.
// Duplicate names resolve to the first occurrence.
func (n *Node) FindChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// AddChild appends a child node and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Child returns the direct child with the given name, creating it if absent.
func (n *Node) Child(name string) *Node {
	if child := n.FindChild(name); child != nil {
		return child
	}
	return n.AddChild(NewNode(name))
}

// FindComponent returns the first component of the given kind, or nil.
func (n *Node) FindComponent(kind Kind) *Component {
	for _, c := range n.Components {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// AddComponent appends a component and returns it.
func (n *Node) AddComponent(c *Component) *Component {
	n.Components = append(n.Components, c)
	return c
}

// ChildNames returns the names of the direct children in order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		names = append(names, child.Name)
	}
	return names
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
