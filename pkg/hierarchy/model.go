package hierarchy

// Names of the three reserved subtrees under a model root. Their
// structure (which leaf items exist, and in what order) is owned by
// fresh generation from the model source; reconciliation only enriches
// existing leaf items.
const (
	ParametersName = "Parameters"
	PartsName      = "Parts"
	DrawablesName  = "Drawables"
)

// ReservedNames lists the reserved subtree names in canonical order.
var ReservedNames = []string{ParametersName, PartsName, DrawablesName}

// IsReserved reports whether name is one of the reserved subtree names.
func IsReserved(name string) bool {
	for _, reserved := range ReservedNames {
		if name == reserved {
			return true
		}
	}
	return false
}

// Model is a distinguished root node for an imported Cubism model,
// holding the three reserved subtrees plus any user-added siblings.
type Model struct {
	Name string
	Root *Node
}

// NewModel creates a model whose root carries empty reserved subtrees.
func NewModel(name string) *Model {
	root := NewNode(name)
	for _, reserved := range ReservedNames {
		root.AddChild(NewNode(reserved))
	}
	return &Model{Name: name, Root: root}
}

// Parameters returns the reserved Parameters subtree, or nil if absent.
func (m *Model) Parameters() *Node {
	return m.Root.FindChild(ParametersName)
}

// Parts returns the reserved Parts subtree, or nil if absent.
func (m *Model) Parts() *Node {
	return m.Root.FindChild(PartsName)
}

// Drawables returns the reserved Drawables subtree, or nil if absent.
func (m *Model) Drawables() *Node {
	return m.Root.FindChild(DrawablesName)
}
