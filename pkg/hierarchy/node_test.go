package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindChildFirstMatchWins(t *testing.T) {
	n := NewNode("root")
	first := n.AddChild(NewNode("dup"))
	n.AddChild(NewNode("dup"))

	assert.Same(t, first, n.FindChild("dup"))
	assert.Nil(t, n.FindChild("missing"))
}

func TestChildCreatesWhenAbsent(t *testing.T) {
	n := NewNode("root")
	created := n.Child("a")
	assert.Same(t, created, n.Child("a"))
	assert.Len(t, n.Children, 1)
}

func TestFindComponent(t *testing.T) {
	n := NewNode("item")
	assert.Nil(t, n.FindComponent(KindParameter))

	added := n.AddComponent(NewComponent(KindParameter, &Parameter{Value: 1}))
	assert.Same(t, added, n.FindComponent(KindParameter))
}

func TestWalkAndCount(t *testing.T) {
	n := NewNode("root")
	a := n.AddChild(NewNode("a"))
	a.AddChild(NewNode("a1"))
	n.AddChild(NewNode("b"))

	var visited []string
	n.Walk(func(node *Node) { visited = append(visited, node.Name) })

	assert.Equal(t, []string{"root", "a", "a1", "b"}, visited)
	assert.Equal(t, 4, n.Count())
}

func TestModelReservedSubtrees(t *testing.T) {
	m := NewModel("hiyori")

	require.NotNil(t, m.Parameters())
	require.NotNil(t, m.Parts())
	require.NotNil(t, m.Drawables())
	assert.Equal(t, ReservedNames, m.Root.ChildNames())

	assert.True(t, IsReserved("Parameters"))
	assert.True(t, IsReserved("Drawables"))
	assert.False(t, IsReserved("Background"))
}
